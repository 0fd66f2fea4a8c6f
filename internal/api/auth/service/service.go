package authService

import (
	"ProjectPlacas/internal/api/auth"
	authRepository "ProjectPlacas/internal/api/auth/repository"
	vehicleRepository "ProjectPlacas/internal/api/vehicle/repository"
	"ProjectPlacas/pkg/bcrypt"
	"ProjectPlacas/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAuthService interface {
	Login(ctx context.Context, req auth.LoginUserRequest) (*auth.LoginResponse, error)
	CreateUser(ctx context.Context, req auth.CreateUserRequest) (*auth.UserResponse, error)
	ListUsers(ctx context.Context) ([]auth.UserResponse, error)
}

type authService struct {
	log               *logrus.Logger
	authRepository    authRepository.Repository
	vehicleRepository vehicleRepository.Repository
	bcrypt            bcrypt.IBcrypt
	utils             utils.IUtils
}

func NewAuthService(
	log *logrus.Logger,
	authRepository authRepository.Repository,
	vehicleRepository vehicleRepository.Repository,
	bcrypt bcrypt.IBcrypt,
	utils utils.IUtils,
) IAuthService {
	return &authService{
		log:               log,
		authRepository:    authRepository,
		vehicleRepository: vehicleRepository,
		bcrypt:            bcrypt,
		utils:             utils,
	}
}
