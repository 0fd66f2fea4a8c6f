package plateHandler

import (
	plateService "ProjectPlacas/internal/api/plate/service"
	"ProjectPlacas/internal/middleware"
	"ProjectPlacas/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PlateHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	plateService plateService.IPlateService
	utils        utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ps plateService.IPlateService,
	utils utils.IUtils,
) *PlateHandler {
	return &PlateHandler{
		log:          log,
		validator:    validator,
		middleware:   middleware,
		plateService: ps,
		utils:        utils,
	}
}

func (h *PlateHandler) Start(srv fiber.Router) {
	plates := srv.Group("/plates")
	plates.Post("/detect", h.middleware.NewRateLimiter, h.DetectPlate)
}
