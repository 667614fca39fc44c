package faces

import "FaceReporter/internal/entity"

type ProcessRequest = entity.FileJob

type ProcessResult struct {
	FaceCount  int                    `json:"face_count"`
	Thumbnails []entity.FaceThumbnail `json:"thumbnails"`
}

type ProcessResponse struct {
	Data  *ProcessResult `json:"data,omitempty"`
	Error string         `json:"error,omitempty"`
}
