package authService

import (
	"ProjectPlacas/internal/api/auth"
	authRepository "ProjectPlacas/internal/api/auth/repository"
	vehicleRepository "ProjectPlacas/internal/api/vehicle/repository"
	"ProjectPlacas/internal/entity"
	"ProjectPlacas/pkg/bcrypt"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type stubUsers struct {
	byEmail map[string]entity.User
	created []entity.User
}

func (s *stubUsers) CreateUser(_ context.Context, user entity.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return auth.ErrEmailAlreadyInUse
	}
	s.created = append(s.created, user)
	return nil
}
func (s *stubUsers) GetByID(context.Context, string) (entity.User, error) {
	return entity.User{}, auth.ErrUserNotFound
}
func (s *stubUsers) GetByEmail(_ context.Context, email string) (entity.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return u, nil
}
func (s *stubUsers) ListUsers(context.Context) ([]entity.User, error) {
	var users []entity.User
	for _, u := range s.byEmail {
		users = append(users, u)
	}
	return users, nil
}

type stubAuthRepo struct{ users *stubUsers }

func (s *stubAuthRepo) NewClient(bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    s.users,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubVehicles struct{ byUser map[string][]entity.Vehicle }

func (s *stubVehicles) CreateVehicle(context.Context, entity.Vehicle) error { return nil }
func (s *stubVehicles) GetByPlate(context.Context, string) (entity.Vehicle, error) {
	return entity.Vehicle{}, nil
}
func (s *stubVehicles) ListVehicles(context.Context) ([]entity.Vehicle, error) { return nil, nil }
func (s *stubVehicles) ListByUser(_ context.Context, userID string) ([]entity.Vehicle, error) {
	return s.byUser[userID], nil
}

type stubVehicleRepo struct{ vehicles *stubVehicles }

func (s *stubVehicleRepo) NewClient(bool) (vehicleRepository.Client, error) {
	return vehicleRepository.Client{
		Vehicles: s.vehicles,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubUtils struct{ n int }

func (s *stubUtils) NewULIDFromTimestamp(time.Time) (string, error) {
	s.n++
	return fmt.Sprintf("01TEST%020d", s.n), nil
}
func (s *stubUtils) ValidateImageFile(*multipart.FileHeader) error { return nil }
func (s *stubUtils) UniqueImageName(time.Time) (string, error)    { return "img.jpg", nil }

func newTestService(t *testing.T, users *stubUsers, vehicles *stubVehicles) IAuthService {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if vehicles == nil {
		vehicles = &stubVehicles{}
	}

	return &authService{
		log:               logger,
		authRepository:    &stubAuthRepo{users: users},
		vehicleRepository: &stubVehicleRepo{vehicles: vehicles},
		bcrypt:            bcrypt.NewWithCost(4),
		utils:             &stubUtils{},
	}
}

func seededUsers(t *testing.T, password string) *stubUsers {
	t.Helper()

	hashed, err := bcrypt.NewWithCost(4).HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}

	return &stubUsers{byEmail: map[string]entity.User{
		"ana@example.com": {
			ID:       "user-1",
			Nombre:   "Ana",
			Email:    "ana@example.com",
			Password: hashed,
			Rol:      entity.RolUsuario,
		},
	}}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	svc := newTestService(t, seededUsers(t, "hunter22"), nil)

	resp, err := svc.Login(context.Background(), auth.LoginUserRequest{
		Email:    "Ana@Example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a signed access token")
	}
	if resp.User.ID != "user-1" {
		t.Errorf("expected user-1, got %q", resp.User.ID)
	}
	if resp.ExpiresAt <= time.Now().Unix() {
		t.Error("expected expiry in the future")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, seededUsers(t, "hunter22"), nil)

	_, err := svc.Login(context.Background(), auth.LoginUserRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, auth.ErrInvalidEmailOrPassword) {
		t.Fatalf("expected ErrInvalidEmailOrPassword, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, seededUsers(t, "hunter22"), nil)

	_, err := svc.Login(context.Background(), auth.LoginUserRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	if !errors.Is(err, auth.ErrInvalidEmailOrPassword) {
		t.Fatalf("unknown email must not be distinguishable, got %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	users := &stubUsers{byEmail: map[string]entity.User{}}
	svc := newTestService(t, users, nil)

	resp, err := svc.CreateUser(context.Background(), auth.CreateUserRequest{
		Nombre:    "Luis",
		Apellidos: "Pérez",
		Email:     "Luis@Example.com",
		Password:  "secreto123",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if len(users.created) != 1 {
		t.Fatalf("expected 1 created user, got %d", len(users.created))
	}
	created := users.created[0]
	if created.Email != "luis@example.com" {
		t.Errorf("expected lowercased email, got %q", created.Email)
	}
	if created.Password == "secreto123" {
		t.Error("password must be stored hashed")
	}
	if created.Rol != entity.RolUsuario {
		t.Errorf("expected default rol %q, got %q", entity.RolUsuario, created.Rol)
	}
	if resp.ID == "" {
		t.Error("expected generated user id")
	}
}

func TestCreateUserGeneratesPassword(t *testing.T) {
	users := &stubUsers{byEmail: map[string]entity.User{}}
	svc := newTestService(t, users, nil)

	if _, err := svc.CreateUser(context.Background(), auth.CreateUserRequest{
		Nombre:    "Luis",
		Apellidos: "Pérez",
		Email:     "luis@example.com",
	}); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if users.created[0].Password == "" {
		t.Error("expected a generated password hash when none supplied")
	}
}

func TestListUsersEmbedsVehicles(t *testing.T) {
	users := seededUsers(t, "hunter22")
	vehicles := &stubVehicles{byUser: map[string][]entity.Vehicle{
		"user-1": {{ID: "veh-1", Placa: "ABC1234", Marca: "Nissan"}},
	}}
	svc := newTestService(t, users, vehicles)

	resp, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 user, got %d", len(resp))
	}
	if len(resp[0].Vehicles) != 1 || resp[0].Vehicles[0].Placa != "ABC1234" {
		t.Errorf("expected embedded vehicle ABC1234, got %+v", resp[0].Vehicles)
	}
}
