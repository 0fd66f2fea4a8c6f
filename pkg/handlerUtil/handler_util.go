package handlerUtil

import (
	"ProjectPlacas/internal/api/auth"
	"ProjectPlacas/internal/api/incident"
	"ProjectPlacas/internal/api/plate"
	"ProjectPlacas/internal/api/vehicle"
	"ProjectPlacas/pkg/log"
	"ProjectPlacas/pkg/response"
	"ProjectPlacas/pkg/vision"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Plate domain errors
	if errors.Is(err, plate.ErrInvalidImage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid image")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Uploaded file is not a valid image",
			"code":  "INVALID_IMAGE",
		})
	}

	if errors.Is(err, plate.ErrDetectionFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Detection backend failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Plate detection backend failed",
			"code":  "DETECTION_FAILED",
		})
	}

	if errors.Is(err, plate.ErrRecognitionFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Recognition backend failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Plate recognition backend failed",
			"code":  "RECOGNITION_FAILED",
		})
	}

	if errors.Is(err, vision.ErrInferenceTimeout) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Inference timed out")
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "Image analysis timed out",
			"code":  "INFERENCE_TIMEOUT",
		})
	}

	// Auth domain errors
	if errors.Is(err, auth.ErrUserNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("User not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
			"code":  "USER_NOT_FOUND",
		})
	}

	if errors.Is(err, auth.ErrInvalidEmailOrPassword) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid email or password")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email or password",
			"code":  "INVALID_CREDENTIALS",
		})
	}

	if errors.Is(err, auth.ErrEmailAlreadyInUse) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Email already in use")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already in use by another user",
			"code":  "EMAIL_ALREADY_IN_USE",
		})
	}

	// Vehicle domain errors
	if errors.Is(err, vehicle.ErrPlateInvalid) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid plate")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Plate is not a valid plate number",
			"code":  "INVALID_PLATE",
		})
	}

	if errors.Is(err, vehicle.ErrPlateAlreadyRegistered) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Plate already registered")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Plate already registered to another vehicle",
			"code":  "PLATE_ALREADY_REGISTERED",
		})
	}

	if errors.Is(err, vehicle.ErrVehicleNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Vehicle not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Vehicle not found",
			"code":  "VEHICLE_NOT_FOUND",
		})
	}

	if errors.Is(err, vehicle.ErrOwnerNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Owner not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Owner user does not exist",
			"code":  "OWNER_NOT_FOUND",
		})
	}

	// Incident domain errors
	if errors.Is(err, incident.ErrVehicleNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No vehicle registered for reported plate")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No vehicle registered for that plate",
			"code":  "VEHICLE_NOT_FOUND",
		})
	}

	if errors.Is(err, incident.ErrCreateIncident) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Failed to create incident")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create incident",
			"code":  "CREATE_INCIDENT_FAILED",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
