package facesService

import (
	"context"
	"fmt"

	"FaceReporter/internal/api/faces"
	"FaceReporter/internal/entity"
	"FaceReporter/internal/metrics"
	"FaceReporter/pkg/response"
)

// ThumbnailKey is deterministic so re-running a file overwrites its objects.
func ThumbnailKey(fileID string, faceIndex int, fileType string) string {
	return fmt.Sprintf("%s-%d.%s", fileID, faceIndex, fileType)
}

func (s *facesService) publishThumbnail(ctx context.Context, file entity.SlackFile, faceIndex int, data []byte) (*entity.FaceThumbnail, error) {
	key := ThumbnailKey(file.ID, faceIndex, file.Filetype)

	err := s.s3.PutPublicObject(ctx, key, data, file.Mimetype)
	metrics.ThumbnailsPublishedTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, response.Wrap(faces.ErrStorage, err)
	}

	return &entity.FaceThumbnail{
		FaceIndex: faceIndex,
		Key:       key,
		URL:       s.s3.PublicURL(key),
	}, nil
}
