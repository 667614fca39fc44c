package facesHandler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"FaceReporter/internal/api/faces"
	"FaceReporter/internal/entity"
	"FaceReporter/internal/middleware"
	"FaceReporter/pkg/response"
	"FaceReporter/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type stubService struct {
	result *faces.ProcessResult
	err    error
	got    *entity.FileJob
	// waitForDeadline blocks until the request context expires.
	waitForDeadline bool
}

func (s *stubService) ProcessFile(ctx context.Context, job entity.FileJob) (*faces.ProcessResult, error) {
	s.got = &job
	if s.waitForDeadline {
		<-ctx.Done()
	}
	return s.result, s.err
}

func newApp(svc *stubService) *fiber.App {
	return newAppWithTimeout(svc, 0)
}

func newAppWithTimeout(svc *stubService, timeout time.Duration) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	mw := middleware.New(log, middleware.Options{})
	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	New(log, validator.New(), mw, svc, utils.New(1000), timeout).Start(app.Group("/api/v1"))
	return app
}

const validJob = `{"channel":"C1","ts":"1700000000.000100","file":{"id":"F1","title":"team","mimetype":"image/png","filetype":"png","url_private":"https://files.slack.com/F1"}}`

func TestProcessFile(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *stubService
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: validJob,
			svc: &stubService{result: &faces.ProcessResult{
				FaceCount:  1,
				Thumbnails: []entity.FaceThumbnail{{FaceIndex: 0, Key: "F1-0.png", URL: "https://s3.amazonaws.com/thumbs/F1-0.png"}},
			}},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"face_count":1,"thumbnails":[{"face_index":0,"key":"F1-0.png","url":"https://s3.amazonaws.com/thumbs/F1-0.png"}]}}`,
		},
		{
			name:       "missing file fields",
			body:       `{"channel":"C1","ts":"1","file":{"id":"F1"}}`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"channel":`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"bad request"}`,
		},
		{
			name:       "not an image",
			body:       strings.Replace(validJob, `"mimetype":"image/png"`, `"mimetype":"application/pdf"`, 1),
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid file type. Only images are allowed.","code":"INVALID_FILE_TYPE"}`,
		},
		{
			name:       "file over the size limit",
			body:       strings.Replace(validJob, `"id":"F1"`, `"id":"F1","size":1001`, 1),
			svc:        &stubService{},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   `{"error":"File too large","code":"FILE_TOO_LARGE"}`,
		},
		{
			name:       "storage failure",
			body:       validJob,
			svc:        &stubService{err: response.Wrap(faces.ErrStorage, errors.New("AccessDenied"))},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"failed to store thumbnail"}`,
		},
		{
			name:       "image too large",
			body:       validJob,
			svc:        &stubService{err: response.Wrap(faces.ErrImageTooLarge, errors.New("budget"))},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   `{"error":"image exceeds size budget"}`,
		},
		{
			name:       "unexpected error",
			body:       validJob,
			svc:        &stubService{err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"An unexpected error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/faces/process", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := newApp(tt.svc).Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.wantStatus, body)
			}
			if tt.wantBody != "" && string(body) != tt.wantBody {
				t.Errorf("body = %s, want %s", body, tt.wantBody)
			}
		})
	}
}

func TestProcessFileTimeouts(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deadline in the cause", response.Wrap(faces.ErrFetch, context.DeadlineExceeded), http.StatusRequestTimeout},
		{"unrelated failure after the deadline", response.Wrap(faces.ErrStorage, errors.New("AccessDenied")), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err, waitForDeadline: true}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/faces/process", strings.NewReader(validJob))
			req.Header.Set("Content-Type", "application/json")

			resp, err := newAppWithTimeout(svc, 20*time.Millisecond).Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestProcessFileForwardsJob(t *testing.T) {
	svc := &stubService{result: &faces.ProcessResult{}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/faces/process", strings.NewReader(validJob))
	req.Header.Set("Content-Type", "application/json")

	if _, err := newApp(svc).Test(req); err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if svc.got == nil || svc.got.File.URLPrivate != "https://files.slack.com/F1" || svc.got.TS != "1700000000.000100" {
		t.Fatalf("service got %+v", svc.got)
	}
}
