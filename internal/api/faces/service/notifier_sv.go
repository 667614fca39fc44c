package facesService

import (
	"context"
	"fmt"

	"FaceReporter/internal/api/faces"
	"FaceReporter/internal/entity"
	"FaceReporter/internal/metrics"
	"FaceReporter/pkg/response"
)

func BuildFaceMessage(job entity.FileJob, faceIndex int, fields []entity.AttachmentField, thumbURL string) entity.ChatMessage {
	return entity.ChatMessage{
		Channel:  job.Channel,
		Text:     fmt.Sprintf("Face #%d in %s", faceIndex, job.File.Title),
		ThreadTS: job.TS,
		Attachments: []entity.Attachment{
			{
				Fields:   fields,
				ThumbURL: thumbURL,
			},
		},
	}
}

func (s *facesService) notifyFace(ctx context.Context, job entity.FileJob, faceIndex int, fields []entity.AttachmentField, thumbURL string) error {
	err := s.slack.PostMessage(ctx, BuildFaceMessage(job, faceIndex, fields, thumbURL))
	metrics.NotificationsSentTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return response.Wrap(faces.ErrNotify, err)
	}
	return nil
}
