package vehicleHandler

import (
	vehicleService "ProjectPlacas/internal/api/vehicle/service"
	"ProjectPlacas/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VehicleHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	vehicleService vehicleService.IVehicleService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	vs vehicleService.IVehicleService,
) *VehicleHandler {
	return &VehicleHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		vehicleService: vs,
	}
}

func (h *VehicleHandler) Start(srv fiber.Router) {
	vehicles := srv.Group("/vehicles")
	vehicles.Post("/", h.middleware.NewRateLimiter, h.CreateVehicle)
	vehicles.Get("/", h.ListVehicles)
}
