package middleware

import (
	"ProjectPlacas/internal/entity"
	jwtPkg "ProjectPlacas/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

type tokenMiddleware struct {
}

func newTokenMiddleware() *tokenMiddleware {
	return &tokenMiddleware{}
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"path":   ctx.Path(),
			"method": ctx.Method(),
		}).Warn("Missing or malformed Authorization header")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	id, idOK := claims["id"].(string)
	email, emailOK := claims["email"].(string)
	rol, rolOK := claims["rol"].(string)
	if !idOK || !emailOK || !rolOK {
		m.log.WithFields(logrus.Fields{
			"error": "Token claims are missing required fields",
		}).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	user := entity.UserLoginData{
		ID:    id,
		Email: email,
		Rol:   rol,
	}
	ctx.Locals("user", user)

	return ctx.Next()
}
