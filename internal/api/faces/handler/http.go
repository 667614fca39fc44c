package facesHandler

import (
	facesService "FaceReporter/internal/api/faces/service"
	"FaceReporter/internal/middleware"
	"FaceReporter/pkg/utils"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type FacesHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	facesService facesService.IFacesService
	utils        utils.IUtils
	timeout      time.Duration
}

// New builds the handler for the synchronous pipeline endpoint. A zero
// timeout lets a run take as long as it needs.
func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	fs facesService.IFacesService,
	utils utils.IUtils,
	timeout time.Duration,
) *FacesHandler {
	return &FacesHandler{
		log:          log,
		validator:    validator,
		middleware:   middleware,
		facesService: fs,
		utils:        utils,
		timeout:      timeout,
	}
}

func (h *FacesHandler) Start(srv fiber.Router) {
	faces := srv.Group("/faces")
	faces.Post("/process", h.middleware.NewRateLimiter, h.ProcessFile)
}
