package plateHandler

import (
	"ProjectPlacas/internal/api/plate"
	contextPkg "ProjectPlacas/pkg/context"
	"ProjectPlacas/pkg/handlerUtil"
	"ProjectPlacas/pkg/log"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *PlateHandler) DetectPlate(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing plate detection request")

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, plate.ErrBadRequest, ctx.Path(), "get_image_file")
	}

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image_file")
	}

	fileContent, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
	}
	defer fileContent.Close()

	imageBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
	}

	result, err := h.plateService.DetectPlate(c, imageBytes)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "detect_plate")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"success":    result.Success,
			"plates":     result.Plates,
		}).Info("Plate detection request completed")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
