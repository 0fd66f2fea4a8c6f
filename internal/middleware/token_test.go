package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func newTokenTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := New(logger)

	app := fiber.New()
	app.Get("/protected", m.NewTokenMiddleware, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	claims["exp"] = time.Now().Add(time.Hour).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return signed
}

func TestTokenMiddlewareAcceptsValidClaims(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	app := newTokenTestApp(t)
	token := signToken(t, jwt.MapClaims{"id": "user-1", "email": "ana@example.com", "rol": "USUARIO"})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}

func TestTokenMiddlewareRejectsNonStringClaims(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	app := newTokenTestApp(t)
	// validly signed, but id is a number instead of a string
	token := signToken(t, jwt.MapClaims{"id": 123, "email": "ana@example.com", "rol": "USUARIO"})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}

func TestTokenMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	app := newTokenTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}
