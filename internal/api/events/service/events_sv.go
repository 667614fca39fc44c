package eventsService

import (
	"context"

	"FaceReporter/internal/api/events"
	"FaceReporter/internal/entity"
	"FaceReporter/internal/metrics"
	contextPkg "FaceReporter/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *eventsService) HandleEnvelope(ctx context.Context, env events.Envelope) (*events.Outcome, error) {
	if env.Token == "" || env.Token != s.token {
		metrics.EventsReceivedTotal.WithLabelValues("rejected").Inc()
		return nil, events.ErrInvalidToken
	}

	switch env.Type {
	case events.TypeURLVerification:
		metrics.EventsReceivedTotal.WithLabelValues(env.Type).Inc()
		return &events.Outcome{Challenge: env.Challenge}, nil

	case events.TypeEventCallback:
		if env.Event == nil || env.Event.Type != events.EventTypeMessage {
			metrics.EventsReceivedTotal.WithLabelValues("unsupported").Inc()
			return nil, events.ErrUnsupportedEvent
		}
		metrics.EventsReceivedTotal.WithLabelValues(env.Type).Inc()
		return s.handleMessage(ctx, env)

	default:
		metrics.EventsReceivedTotal.WithLabelValues("unsupported").Inc()
		return nil, events.ErrUnsupportedEvent
	}
}

func (s *eventsService) handleMessage(ctx context.Context, env events.Envelope) (*events.Outcome, error) {
	msg := env.Event
	fields := logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"event_id":   env.EventID,
		"channel":    msg.Channel,
	}

	if msg.Subtype != events.SubtypeFileShare {
		s.log.WithFields(fields).WithField("subtype", msg.Subtype).Debug("Ignoring message")
		return &events.Outcome{}, nil
	}

	if s.dedupe != nil && env.EventID != "" {
		fresh, err := s.dedupe.MarkEventSeen(ctx, env.EventID, s.dedupeTTL)
		if err != nil {
			// an unreachable store must not drop uploads
			s.log.WithFields(fields).WithField("error", err.Error()).Warn("Event dedupe unavailable")
		} else if !fresh {
			s.log.WithFields(fields).Info("Dropping duplicate event delivery")
			return &events.Outcome{Duplicate: true}, nil
		}
	}

	outcome := &events.Outcome{}
	for _, file := range msg.Files {
		if err := s.utils.ValidateImageFile(file); err != nil {
			s.log.WithFields(fields).WithFields(logrus.Fields{
				"file_id":  file.ID,
				"mimetype": file.Mimetype,
				"error":    err.Error(),
			}).Debug("Skipping file")
			continue
		}

		s.dispatcher.Dispatch(ctx, entity.FileJob{
			Channel: msg.Channel,
			TS:      msg.TS,
			File:    file,
		})
		outcome.Dispatched++
	}

	s.log.WithFields(fields).WithField("dispatched", outcome.Dispatched).Info("Handled file share")
	return outcome, nil
}
