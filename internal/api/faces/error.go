package faces

import (
	"FaceReporter/pkg/response"
	"net/http"
)

var (
	ErrFetch         = response.NewError(http.StatusBadGateway, "failed to fetch file")
	ErrInvalidImage  = response.NewError(http.StatusUnprocessableEntity, "invalid image")
	ErrImageTooLarge = response.NewError(http.StatusRequestEntityTooLarge, "image exceeds size budget")
	ErrDetection     = response.NewError(http.StatusBadGateway, "face detection failed")
	ErrStorage       = response.NewError(http.StatusBadGateway, "failed to store thumbnail")
	ErrNotify        = response.NewError(http.StatusBadGateway, "failed to post notification")
	ErrBadRequest    = response.NewError(http.StatusBadRequest, "bad request")
)
