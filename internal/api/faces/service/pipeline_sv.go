package facesService

import (
	"context"
	"errors"
	"time"

	"FaceReporter/internal/api/faces"
	"FaceReporter/internal/entity"
	"FaceReporter/internal/metrics"
	contextPkg "FaceReporter/pkg/context"
	"FaceReporter/pkg/imageproc"
	"FaceReporter/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ProcessFile fetches the uploaded image, shrinks it under the detector's
// payload limit, detects faces, and for every face publishes a thumbnail and
// posts one reply in the upload's thread.
//
// Faces are handled concurrently and all of them run to completion. If any
// face fails the whole run fails, but thumbnails and messages already
// committed by the other faces are kept: there is no rollback.
func (s *facesService) ProcessFile(ctx context.Context, job entity.FileJob) (*faces.ProcessResult, error) {
	start := time.Now()

	result, err := s.processFile(ctx, job)

	outcome := metrics.Outcome(err)
	metrics.PipelineRunsTotal.WithLabelValues(outcome).Inc()
	metrics.PipelineDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return result, err
}

func (s *facesService) processFile(ctx context.Context, job entity.FileJob) (*faces.ProcessResult, error) {
	fields := logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"file_id":    job.File.ID,
		"channel":    job.Channel,
	}

	raw, err := s.slack.DownloadFile(ctx, job.File.URLPrivate)
	if err != nil {
		s.log.WithFields(fields).WithField("error", err.Error()).Error("Failed to fetch file")
		return nil, response.Wrap(faces.ErrFetch, err)
	}

	src, err := imageproc.Decode(raw, job.File.Mimetype)
	if err != nil {
		s.log.WithFields(fields).WithField("error", err.Error()).Warn("Failed to decode image")
		return nil, imageError(err)
	}

	reduced, err := s.reducer.Reduce(src)
	if err != nil {
		s.log.WithFields(fields).WithFields(logrus.Fields{
			"error":  err.Error(),
			"bytes":  len(src.Data),
			"budget": s.reducer.Budget(),
		}).Warn("Failed to reduce image")
		return nil, imageError(err)
	}
	if reduced != src {
		s.log.WithFields(fields).WithFields(logrus.Fields{
			"from":   len(src.Data),
			"to":     len(reduced.Data),
			"width":  reduced.Width,
			"height": reduced.Height,
		}).Debug("Reduced image")
	}

	detections, err := s.detector.DetectFaces(ctx, reduced.Data)
	if err != nil {
		s.log.WithFields(fields).WithField("error", err.Error()).Error("Face detection failed")
		return nil, response.Wrap(faces.ErrDetection, err)
	}
	metrics.FacesDetectedTotal.Add(float64(len(detections)))

	result := &faces.ProcessResult{
		FaceCount:  len(detections),
		Thumbnails: make([]entity.FaceThumbnail, len(detections)),
	}
	if len(detections) == 0 {
		s.log.WithFields(fields).Info("No faces detected")
		return result, nil
	}

	// A plain Group: a failing face must not cancel its siblings.
	var eg errgroup.Group
	if s.fanOutLimit > 0 {
		eg.SetLimit(s.fanOutLimit)
	}

	for i, face := range detections {
		eg.Go(func() error {
			thumb, err := s.processFace(ctx, job, reduced, i, face)
			if err != nil {
				s.log.WithFields(fields).WithFields(logrus.Fields{
					"face_index": i,
					"error":      err.Error(),
				}).Error("Failed to process face")
				return err
			}
			result.Thumbnails[i] = *thumb
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	s.log.WithFields(fields).WithField("faces", len(detections)).Info("Processed file")
	return result, nil
}

func (s *facesService) processFace(ctx context.Context, job entity.FileJob, src *imageproc.SourceImage, index int, face entity.FaceDetection) (*entity.FaceThumbnail, error) {
	data, err := s.extractor.Extract(src, face.BoundingBox)
	if err != nil {
		return nil, imageError(err)
	}

	thumb, err := s.publishThumbnail(ctx, job.File, index, data)
	if err != nil {
		return nil, err
	}

	if err := s.notifyFace(ctx, job, index, FormatAttributes(face), thumb.URL); err != nil {
		return nil, err
	}

	return thumb, nil
}

func imageError(err error) error {
	if errors.Is(err, imageproc.ErrImageTooLarge) {
		return response.Wrap(faces.ErrImageTooLarge, err)
	}
	return response.Wrap(faces.ErrInvalidImage, err)
}
