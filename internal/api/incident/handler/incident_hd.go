package incidentHandler

import (
	"ProjectPlacas/internal/api/incident"
	contextPkg "ProjectPlacas/pkg/context"
	"ProjectPlacas/pkg/handlerUtil"
	"ProjectPlacas/pkg/log"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *IncidentHandler) CreateIncident(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req incident.CreateIncidentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	mainFile, err := ctx.FormFile("imagen_principal")
	if err != nil {
		return errHandler.Handle(ctx, requestID, incident.ErrBadRequest, ctx.Path(), "get_main_image")
	}

	mainImage, err := h.readImageFile(mainFile)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_main_image")
	}

	var evidence [][]byte
	if form, err := ctx.MultipartForm(); err == nil {
		for _, file := range form.File["evidencias"] {
			img, err := h.readImageFile(file)
			if err != nil {
				return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_evidence_image")
			}
			evidence = append(evidence, img)
		}
	}

	resp, err := h.incidentService.CreateIncident(c, req, mainImage, evidence)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_incident")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":    requestID,
			"id_incidencia": resp.ID,
			"placa":         resp.PlacaVehiculo,
		}).Info("Incident created")
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, resp)
	}
}

func (h *IncidentHandler) ListIncidents(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	incidents, err := h.incidentService.ListIncidents(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_incidents")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, incidents)
	}
}

func (h *IncidentHandler) readImageFile(file *multipart.FileHeader) ([]byte, error) {
	if err := h.utils.ValidateImageFile(file); err != nil {
		return nil, err
	}

	content, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer content.Close()

	return io.ReadAll(content)
}
