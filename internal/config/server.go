package config

import (
	"ProjectPlacas/database/postgres"
	authHandler "ProjectPlacas/internal/api/auth/handler"
	authRepository "ProjectPlacas/internal/api/auth/repository"
	authService "ProjectPlacas/internal/api/auth/service"
	incidentHandler "ProjectPlacas/internal/api/incident/handler"
	incidentRepository "ProjectPlacas/internal/api/incident/repository"
	incidentService "ProjectPlacas/internal/api/incident/service"
	plateHandler "ProjectPlacas/internal/api/plate/handler"
	plateService "ProjectPlacas/internal/api/plate/service"
	vehicleHandler "ProjectPlacas/internal/api/vehicle/handler"
	vehicleRepository "ProjectPlacas/internal/api/vehicle/repository"
	vehicleService "ProjectPlacas/internal/api/vehicle/service"
	"ProjectPlacas/internal/middleware"
	"ProjectPlacas/pkg/bcrypt"
	"ProjectPlacas/pkg/s3"
	"ProjectPlacas/pkg/smtp"
	"ProjectPlacas/pkg/utils"
	"ProjectPlacas/pkg/vision"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	smtpMailer  smtp.ItfSmtp
	s3Client    s3.ItfS3
	detector    vision.Detector
	recognizer  vision.Recognizer
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

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
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

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithSMTPMailer() ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtp.New()
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

// WithVision loads the detection and recognition networks once at startup
// and wraps both with the configured inference timeout.
func WithVision() ServerOption {
	return func(s *Server) error {
		detector, err := vision.NewDetector()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to load detection model: %v", err)
			}
			return fmt.Errorf("failed to create detector: %w", err)
		}

		recognizer, err := vision.NewRecognizer()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to load recognition model: %v", err)
			}
			return fmt.Errorf("failed to create recognizer: %w", err)
		}

		timeout := vision.InferenceTimeout()
		s.detector = vision.NewTimeoutDetector(detector, timeout)
		s.recognizer = vision.NewTimeoutRecognizer(recognizer, timeout)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	vehicleRepo := vehicleRepository.New(s.db, s.log)
	authServices := authService.NewAuthService(s.log, authRepo, vehicleRepo, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	// Vehicle Domain
	vehicleServices := vehicleService.NewVehicleService(s.log, vehicleRepo, s.utils)
	vehicleHandlers := vehicleHandler.New(s.log, s.validator, s.middleware, vehicleServices)

	// Plate Detection
	plateServices := plateService.NewPlateService(s.log, s.detector, s.recognizer, s.utils)
	plateHandlers := plateHandler.New(s.log, s.validator, s.middleware, plateServices, s.utils)

	// Incident Domain
	incidentRepo := incidentRepository.New(s.db, s.log)
	incidentServices := incidentService.NewIncidentService(s.log, incidentRepo, vehicleRepo, authRepo, s.s3Client, s.smtpMailer, s.utils)
	incidentHandlers := incidentHandler.New(s.log, s.validator, s.middleware, incidentServices, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, vehicleHandlers, plateHandlers, incidentHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
