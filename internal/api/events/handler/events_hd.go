package eventsHandler

import (
	"FaceReporter/internal/api/events"
	contextPkg "FaceReporter/pkg/context"
	"FaceReporter/pkg/log"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

// HandleEvent acknowledges Slack quickly; file processing continues in the
// background after the response is sent.
func (h *EventsHandler) HandleEvent(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c := contextPkg.FromFiberCtx(ctx)

	var env events.Envelope
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(ctx.Body(), &env); err != nil {
		return h.reject(ctx, requestID, events.ErrMalformedEvent)
	}

	outcome, err := h.eventsService.HandleEnvelope(c, env)
	if err != nil {
		return h.reject(ctx, requestID, err)
	}

	if env.Type == events.TypeURLVerification {
		return ctx.Status(fiber.StatusOK).JSON(events.ChallengeResponse{
			Challenge: outcome.Challenge,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(events.AckResponse{OK: true})
}

func (h *EventsHandler) reject(ctx *fiber.Ctx, requestID string, err error) error {
	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"error":      err.Error(),
		"operation":  "handle_event",
	}).Warn("Rejected Slack event")

	return ctx.Status(fiber.StatusBadRequest).JSON(events.AckResponse{OK: false})
}
