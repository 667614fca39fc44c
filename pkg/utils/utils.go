package utils

import (
	"crypto/rand"
	"errors"
	"time"

	"FaceReporter/internal/entity"

	"github.com/oklog/ulid/v2"
)

var (
	ErrNotAnImage   = errors.New("file is not an image")
	ErrFileTooLarge = errors.New("file size exceeds limit")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file entity.SlackFile) error
}

type utils struct {
	maxFileSize int64
}

// New returns utils that reject uploads above maxFileSize bytes; zero
// disables the size check.
func New(maxFileSize int64) IUtils {
	return &utils{
		maxFileSize: maxFileSize,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file entity.SlackFile) error {
	if !file.IsImage() {
		return ErrNotAnImage
	}

	if u.maxFileSize > 0 && file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	return nil
}
