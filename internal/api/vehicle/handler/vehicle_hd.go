package vehicleHandler

import (
	"ProjectPlacas/internal/api/vehicle"
	contextPkg "ProjectPlacas/pkg/context"
	"ProjectPlacas/pkg/handlerUtil"
	"ProjectPlacas/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *VehicleHandler) CreateVehicle(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req vehicle.CreateVehicleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.vehicleService.CreateVehicle(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_vehicle")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"placa":      req.Placa,
		}).Info("Vehicle created")
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, fiber.Map{
			"success": true,
		})
	}
}

func (h *VehicleHandler) ListVehicles(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	vehicles, err := h.vehicleService.ListVehicles(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_vehicles")
	}

	responses := make([]vehicle.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, vehicle.VehicleResponse{
			ID:        v.ID,
			Placa:     v.Placa,
			Marca:     v.Marca,
			Modelo:    v.Modelo,
			Color:     v.Color,
			UserID:    v.UserID,
			OwnerName: v.OwnerName,
			CreatedAt: v.CreatedAt,
		})
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, responses)
	}
}
