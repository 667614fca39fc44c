package eventsHandler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	eventsService "FaceReporter/internal/api/events/service"
	"FaceReporter/internal/entity"
	"FaceReporter/internal/middleware"
	"FaceReporter/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type countingDispatcher struct {
	jobs []entity.FileJob
}

func (c *countingDispatcher) Dispatch(ctx context.Context, job entity.FileJob) {
	c.jobs = append(c.jobs, job)
}

func (c *countingDispatcher) Wait() {}

func newApp(d *countingDispatcher) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	mw := middleware.New(log, middleware.Options{})
	svc := eventsService.NewEventsService(log, d, nil, utils.New(0), eventsService.Config{VerificationToken: "verify-me"})

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	New(log, mw, svc).Start(app.Group("/api/v1"))
	return app
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
		wantJobs   int
	}{
		{
			name:       "challenge",
			body:       `{"token":"verify-me","type":"url_verification","challenge":"3eZbrw1a"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"challenge":"3eZbrw1a"}`,
		},
		{
			name:       "wrong token",
			body:       `{"token":"nope","type":"url_verification","challenge":"3eZbrw1a"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"ok":false}`,
		},
		{
			name:       "not an object",
			body:       `["token"]`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"ok":false}`,
		},
		{
			name:       "other message subtype",
			body:       `{"token":"verify-me","type":"event_callback","event":{"type":"message","subtype":"bot_message","channel":"C1","ts":"1"}}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
		},
		{
			name: "file share",
			body: `{"token":"verify-me","type":"event_callback","event_id":"Ev1","event":{"type":"message","subtype":"file_share","channel":"C1","ts":"1",` +
				`"files":[{"id":"F1","title":"team","mimetype":"image/png","filetype":"png","url_private":"https://files.slack.com/F1"}]}}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
			wantJobs:   1,
		},
		{
			name:       "unsupported envelope",
			body:       `{"token":"verify-me","type":"app_uninstalled"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"ok":false}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &countingDispatcher{}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/slack/events", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := newApp(d).Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %s, want %s", body, tt.wantBody)
			}
			if len(d.jobs) != tt.wantJobs {
				t.Errorf("dispatched %d jobs, want %d", len(d.jobs), tt.wantJobs)
			}
		})
	}
}

