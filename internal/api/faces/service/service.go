package facesService

import (
	"context"

	"FaceReporter/internal/api/faces"
	"FaceReporter/internal/entity"
	"FaceReporter/pkg/imageproc"
	"FaceReporter/pkg/rekognition"
	"FaceReporter/pkg/s3"
	"FaceReporter/pkg/slack"

	"github.com/sirupsen/logrus"
)

type IFacesService interface {
	ProcessFile(ctx context.Context, job entity.FileJob) (*faces.ProcessResult, error)
}

type Config struct {
	MaxImageSize        int
	MaxReduceIterations int
	ThumbnailSize       int
	JPEGQuality         int
	// FanOutLimit caps concurrent per-face branches; zero runs all at once.
	FanOutLimit int
}

type facesService struct {
	log         *logrus.Logger
	slack       slack.ISlack
	detector    rekognition.IRekognition
	s3          s3.ItfS3
	reducer     *imageproc.Reducer
	extractor   *imageproc.Extractor
	fanOutLimit int
}

func NewFacesService(
	log *logrus.Logger,
	slackClient slack.ISlack,
	detector rekognition.IRekognition,
	s3Client s3.ItfS3,
	cfg Config,
) IFacesService {
	if cfg.MaxImageSize == 0 {
		cfg.MaxImageSize = imageproc.DefaultMaxImageSize
	}

	return &facesService{
		log:         log,
		slack:       slackClient,
		detector:    detector,
		s3:          s3Client,
		reducer:     imageproc.NewReducer(cfg.MaxImageSize, cfg.MaxReduceIterations, cfg.JPEGQuality),
		extractor:   imageproc.NewExtractor(cfg.ThumbnailSize, cfg.JPEGQuality),
		fanOutLimit: cfg.FanOutLimit,
	}
}
