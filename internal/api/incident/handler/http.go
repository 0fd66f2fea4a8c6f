package incidentHandler

import (
	incidentService "ProjectPlacas/internal/api/incident/service"
	"ProjectPlacas/internal/middleware"
	"ProjectPlacas/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type IncidentHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	incidentService incidentService.IIncidentService
	utils           utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	is incidentService.IIncidentService,
	utils utils.IUtils,
) *IncidentHandler {
	return &IncidentHandler{
		log:             log,
		validator:       validator,
		middleware:      middleware,
		incidentService: is,
		utils:           utils,
	}
}

func (h *IncidentHandler) Start(srv fiber.Router) {
	incidents := srv.Group("/incidents")
	incidents.Post("/", h.middleware.NewRateLimiter, h.CreateIncident)
	incidents.Get("/", h.ListIncidents)
}
