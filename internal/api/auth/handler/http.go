package authHandler

import (
	authService "ProjectPlacas/internal/api/auth/service"
	"ProjectPlacas/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	authService authService.IAuthService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as authService.IAuthService,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		validator:   validator,
		middleware:  middleware,
		authService: as,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Post("/login", h.middleware.NewRateLimiter, h.Login)
	auth.Post("/users", h.middleware.NewRateLimiter, h.CreateUser)
	auth.Get("/users", h.middleware.NewTokenMiddleware, h.ListUsers)
}
