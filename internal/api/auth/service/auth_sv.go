package authService

import (
	"ProjectPlacas/internal/api/auth"
	"ProjectPlacas/internal/entity"
	contextPkg "ProjectPlacas/pkg/context"
	jwtPkg "ProjectPlacas/pkg/jwt"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const accessTokenTTL = 24 * time.Hour

func (s *authService) Login(ctx context.Context, req auth.LoginUserRequest) (*auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	user, err := repo.Users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrInvalidEmailOrPassword
		}
		return nil, err
	}

	if err := s.bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Password mismatch on login")
		return nil, auth.ErrInvalidEmailOrPassword
	}

	accessToken, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"rol":   user.Rol,
	}, accessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return nil, err
	}

	return &auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        makeUserResponse(user, nil),
	}, nil
}

// CreateUser registers an account. When the request carries no password a
// random one is generated so the record is never stored without a hash.
func (s *authService) CreateUser(ctx context.Context, req auth.CreateUserRequest) (*auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	password := req.Password
	if password == "" {
		password = uuid.NewString()
	}

	hashed, err := s.bcrypt.HashPassword(password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return nil, err
	}

	rol := req.Rol
	if rol == "" {
		rol = entity.RolUsuario
	}

	newUser := entity.User{
		ID:        ULID,
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
		Email:     strings.ToLower(req.Email),
		Password:  hashed,
		Rol:       rol,
		CreatedAt: time.Now(),
	}

	if err := repo.Users.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}

	resp := makeUserResponse(newUser, nil)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	users, err := repo.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	vehicleRepo, err := s.vehicleRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create vehicle client")
		return nil, err
	}

	responses := make([]auth.UserResponse, 0, len(users))
	for _, user := range users {
		vehicles, err := vehicleRepo.Vehicles.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		summaries := make([]auth.VehicleSummary, 0, len(vehicles))
		for _, v := range vehicles {
			summaries = append(summaries, auth.VehicleSummary{
				ID:     v.ID,
				Placa:  v.Placa,
				Marca:  v.Marca,
				Modelo: v.Modelo,
				Color:  v.Color,
			})
		}

		responses = append(responses, makeUserResponse(user, summaries))
	}

	return responses, nil
}

func makeUserResponse(user entity.User, vehicles []auth.VehicleSummary) auth.UserResponse {
	return auth.UserResponse{
		ID:        user.ID,
		Nombre:    user.Nombre,
		Apellidos: user.Apellidos,
		Email:     user.Email,
		Rol:       user.Rol,
		Vehicles:  vehicles,
		CreatedAt: user.CreatedAt,
	}
}
