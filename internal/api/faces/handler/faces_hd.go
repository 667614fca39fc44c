package facesHandler

import (
	"context"
	"errors"

	"FaceReporter/internal/api/faces"
	contextPkg "FaceReporter/pkg/context"
	"FaceReporter/pkg/handlerUtil"
	"FaceReporter/pkg/log"

	"github.com/gofiber/fiber/v2"
)

func (h *FacesHandler) ProcessFile(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c := contextPkg.FromFiberCtx(ctx)
	if h.timeout > 0 {
		var cancel context.CancelFunc
		c, cancel = context.WithTimeout(c, h.timeout)
		defer cancel()
	}

	errHandler := handlerUtil.New(h.log)

	var req faces.ProcessRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, faces.ErrBadRequest, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.utils.ValidateImageFile(req.File); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_id":    req.File.ID,
		"channel":    req.Channel,
	}).Debug("Processing file")

	result, err := h.facesService.ProcessFile(c, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_file")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, faces.ProcessResponse{
		Data: result,
	})
}
