package utils

import (
	"errors"
	"testing"
	"time"

	"FaceReporter/internal/entity"
)

func TestValidateImageFile(t *testing.T) {
	u := New(1000)

	tests := []struct {
		name    string
		file    entity.SlackFile
		wantErr error
	}{
		{"jpeg", entity.SlackFile{Mimetype: "image/jpeg", Size: 10}, nil},
		{"unknown size", entity.SlackFile{Mimetype: "image/png"}, nil},
		{"pdf", entity.SlackFile{Mimetype: "application/pdf", Size: 10}, ErrNotAnImage},
		{"uppercase mimetype", entity.SlackFile{Mimetype: "IMAGE/PNG", Size: 10}, nil},
		{"too large", entity.SlackFile{Mimetype: "image/png", Size: 1001}, ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := u.ValidateImageFile(tt.file); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateImageFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New(0)
	now := time.Now()

	a, err := u.NewULIDFromTimestamp(now)
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp() error = %v", err)
	}
	b, _ := u.NewULIDFromTimestamp(now)

	if len(a) != 26 {
		t.Errorf("ULID length = %d, want 26", len(a))
	}
	if a == b {
		t.Error("ULIDs should be unique")
	}
}
