package config

import (
	"context"
	"fmt"
	"time"

	eventsHandler "FaceReporter/internal/api/events/handler"
	eventsService "FaceReporter/internal/api/events/service"
	facesHandler "FaceReporter/internal/api/faces/handler"
	facesService "FaceReporter/internal/api/faces/service"
	"FaceReporter/internal/middleware"
	"FaceReporter/pkg/awssession"
	"FaceReporter/pkg/redis"
	"FaceReporter/pkg/rekognition"
	"FaceReporter/pkg/s3"
	"FaceReporter/pkg/slack"
	"FaceReporter/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	cfg         *AppConfig
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	slackClient slack.ISlack
	detector    rekognition.IRekognition
	s3Client    s3.ItfS3
	dispatcher  facesService.IDispatcher
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if server.cfg.Slack.VerificationToken == "" {
		return nil, fmt.Errorf("slack verification token is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithConfig(cfg *AppConfig) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSlackClient(client slack.ISlack) ServerOption {
	return func(s *Server) error {
		s.slackClient = client
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil || s.cfg == nil {
			return fmt.Errorf("logger and config must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.Options{
			SigningSecret: s.cfg.Slack.SigningSecret,
			RateLimit:     rate.Limit(s.cfg.App.RateLimit),
			RateBurst:     s.cfg.App.RateBurst,
		})
		return nil
	}
}

// WithAWSClients builds the S3 and Rekognition clients from one session.
func WithAWSClients() ServerOption {
	return func(s *Server) error {
		if s.cfg == nil {
			return fmt.Errorf("config must be initialized before AWS clients")
		}

		sess, err := awssession.New(awssession.Config{
			Region:          s.cfg.AWS.Region,
			AccessKeyID:     s.cfg.AWS.AccessKeyID,
			SecretAccessKey: s.cfg.AWS.SecretAccessKey,
		})
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create AWS session: %v", err)
			}
			return fmt.Errorf("failed to create AWS session: %w", err)
		}

		client, err := s3.New(sess, s.cfg.AWS.BucketName)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		s.detector = rekognition.New(sess)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		if s.cfg == nil {
			return fmt.Errorf("config must be initialized before utils")
		}
		s.utils = utils.New(s.cfg.Pipeline.MaxFileSize)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Faces Domain
	facesServices := facesService.NewFacesService(s.log, s.slackClient, s.detector, s.s3Client, PipelineConfig(s.cfg))
	facesHandlers := facesHandler.New(s.log, s.validator, s.middleware, facesServices, s.utils, s.cfg.Pipeline.Timeout)
	s.dispatcher = facesService.NewDispatcher(facesServices, s.cfg.Pipeline.DispatchConcurrency, s.cfg.Pipeline.Timeout)

	// Slack Events Domain
	eventsServices := eventsService.NewEventsService(s.log, s.dispatcher, s.redisServer, s.utils, eventsService.Config{
		VerificationToken: s.cfg.Slack.VerificationToken,
		DedupeTTL:         s.cfg.Redis.DedupeTTL,
	})
	eventsHandlers := eventsHandler.New(s.log, s.middleware, eventsServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, facesHandlers, eventsHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	s.log.Infof("Listening on :%s", s.cfg.App.Port)
	if err := s.engine.Listen(fmt.Sprintf(":%s", s.cfg.App.Port)); err != nil {
		return err
	}

	return nil
}

// Shutdown stops accepting requests, then waits for dispatched pipelines
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.engine.ShutdownWithContext(ctx); err != nil {
		return err
	}

	if s.dispatcher != nil {
		done := make(chan struct{})
		go func() {
			s.dispatcher.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			return fmt.Errorf("pipelines still running: %w", ctx.Err())
		}
	}

	if s.redisServer != nil {
		return s.redisServer.Close()
	}
	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	s.engine.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	s.engine.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
}

// PipelineConfig maps the pipeline settings onto the faces service.
func PipelineConfig(cfg *AppConfig) facesService.Config {
	return facesService.Config{
		MaxImageSize:        cfg.Pipeline.MaxImageSize,
		MaxReduceIterations: cfg.Pipeline.MaxReduceIterations,
		ThumbnailSize:       cfg.Pipeline.ThumbnailSize,
		JPEGQuality:         cfg.Pipeline.JPEGQuality,
		FanOutLimit:         cfg.Pipeline.FanOutLimit,
	}
}
