package eventsHandler

import (
	eventsService "FaceReporter/internal/api/events/service"
	"FaceReporter/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type EventsHandler struct {
	log           *logrus.Logger
	middleware    middleware.Middleware
	eventsService eventsService.IEventsService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	es eventsService.IEventsService,
) *EventsHandler {
	return &EventsHandler{
		log:           log,
		middleware:    middleware,
		eventsService: es,
	}
}

func (h *EventsHandler) Start(srv fiber.Router) {
	slack := srv.Group("/slack")
	slack.Post("/events",
		h.middleware.NewRateLimiter,
		h.middleware.NewSlackSignatureMiddleware,
		h.HandleEvent,
	)
}
