package authHandler

import (
	"ProjectPlacas/internal/api/auth"
	contextPkg "ProjectPlacas/pkg/context"
	"ProjectPlacas/pkg/handlerUtil"
	"ProjectPlacas/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.LoginUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.authService.Login(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "login")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"email":      req.Email,
		}).Info("User logged in")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
	}
}

func (h *AuthHandler) CreateUser(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.authService.CreateUser(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_user")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"id_usuario": resp.ID,
		}).Info("User created")
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, resp)
	}
}

func (h *AuthHandler) ListUsers(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	users, err := h.authService.ListUsers(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_users")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, users)
	}
}
