package eventsService

import (
	"context"
	"time"

	"FaceReporter/internal/api/events"
	facesService "FaceReporter/internal/api/faces/service"
	"FaceReporter/pkg/redis"
	"FaceReporter/pkg/utils"

	"github.com/sirupsen/logrus"
)

const DefaultDedupeTTL = time.Hour

type IEventsService interface {
	HandleEnvelope(ctx context.Context, env events.Envelope) (*events.Outcome, error)
}

type Config struct {
	VerificationToken string
	DedupeTTL         time.Duration
}

type eventsService struct {
	log        *logrus.Logger
	dispatcher facesService.IDispatcher
	dedupe     redis.IRedis
	utils      utils.IUtils
	token      string
	dedupeTTL  time.Duration
}

// NewEventsService builds the webhook service. dedupe may be nil, in which
// case retried deliveries are processed again.
func NewEventsService(
	log *logrus.Logger,
	dispatcher facesService.IDispatcher,
	dedupe redis.IRedis,
	utils utils.IUtils,
	cfg Config,
) IEventsService {
	if cfg.DedupeTTL <= 0 {
		cfg.DedupeTTL = DefaultDedupeTTL
	}

	return &eventsService{
		log:        log,
		dispatcher: dispatcher,
		dedupe:     dedupe,
		utils:      utils,
		token:      cfg.VerificationToken,
		dedupeTTL:  cfg.DedupeTTL,
	}
}
