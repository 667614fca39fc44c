package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"FaceReporter/internal/api/faces"
	"FaceReporter/internal/entity"
	"FaceReporter/pkg/response"
)

type stubService struct {
	result *faces.ProcessResult
	err    error
	job    entity.FileJob
}

func (s *stubService) ProcessFile(ctx context.Context, job entity.FileJob) (*faces.ProcessResult, error) {
	s.job = job
	return s.result, s.err
}

const payload = `{"channel":"C1","ts":"1700000000.000100","file":{"id":"F1","title":"team","mimetype":"image/png","filetype":"png","url_private":"https://files.slack.com/F1"}}`

func TestRunProcess(t *testing.T) {
	svc := &stubService{result: &faces.ProcessResult{
		FaceCount:  1,
		Thumbnails: []entity.FaceThumbnail{{FaceIndex: 0, Key: "F1-0.png", URL: "https://s3.amazonaws.com/thumbs/F1-0.png"}},
	}}

	var out bytes.Buffer
	if err := runProcess(context.Background(), svc, []byte(payload), &out); err != nil {
		t.Fatalf("runProcess() error = %v", err)
	}

	if svc.job.File.ID != "F1" || svc.job.Channel != "C1" {
		t.Errorf("service got %+v", svc.job)
	}
	if !strings.Contains(out.String(), `"key": "F1-0.png"`) {
		t.Errorf("output = %s", out.String())
	}
}

func TestRunProcessErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
		want    error
	}{
		{name: "not json", payload: "nope"},
		{name: "missing ts", payload: `{"channel":"C1","file":{"id":"F1","mimetype":"image/png","filetype":"png","url_private":"https://x/F1"}}`},
		{name: "pipeline fails", payload: payload, err: response.Wrap(faces.ErrDetection, errors.New("throttled")), want: faces.ErrDetection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runProcess(context.Background(), &stubService{err: tt.err}, []byte(tt.payload), &bytes.Buffer{})
			if err == nil {
				t.Fatal("runProcess() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("runProcess() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := readPayload(path, nil)
	if err != nil || string(got) != payload {
		t.Fatalf("readPayload(file) = %q, %v", got, err)
	}

	got, err = readPayload("-", strings.NewReader("stdin"))
	if err != nil || string(got) != "stdin" {
		t.Fatalf("readPayload(-) = %q, %v", got, err)
	}
}
