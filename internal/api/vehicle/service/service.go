package vehicleService

import (
	"ProjectPlacas/internal/api/vehicle"
	vehicleRepository "ProjectPlacas/internal/api/vehicle/repository"
	"ProjectPlacas/internal/entity"
	"ProjectPlacas/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IVehicleService interface {
	CreateVehicle(ctx context.Context, req vehicle.CreateVehicleRequest) error
	ListVehicles(ctx context.Context) ([]entity.Vehicle, error)
}

type vehicleService struct {
	log               *logrus.Logger
	vehicleRepository vehicleRepository.Repository
	utils             utils.IUtils
}

func NewVehicleService(
	log *logrus.Logger,
	vehicleRepository vehicleRepository.Repository,
	utils utils.IUtils,
) IVehicleService {
	return &vehicleService{
		log:               log,
		vehicleRepository: vehicleRepository,
		utils:             utils,
	}
}
