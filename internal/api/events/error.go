package events

import (
	"FaceReporter/pkg/response"
	"net/http"
)

var (
	ErrInvalidToken     = response.NewError(http.StatusBadRequest, "invalid verification token")
	ErrUnsupportedEvent = response.NewError(http.StatusBadRequest, "unsupported event")
	ErrMalformedEvent   = response.NewError(http.StatusBadRequest, "malformed event")
)
