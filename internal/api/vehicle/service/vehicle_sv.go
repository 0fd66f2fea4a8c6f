package vehicleService

import (
	"ProjectPlacas/internal/api/plate"
	"ProjectPlacas/internal/api/vehicle"
	"ProjectPlacas/internal/entity"
	contextPkg "ProjectPlacas/pkg/context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// CreateVehicle stores a vehicle after normalizing its plate through the
// same rules the extraction pipeline applies, so future incident lookups
// match on the exact canonical string.
func (s *vehicleService) CreateVehicle(ctx context.Context, req vehicle.CreateVehicleRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	placa := plate.Normalize(req.Placa)
	if !plate.IsValid(placa) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"placa":      req.Placa,
		}).Warn("Rejected vehicle with invalid plate")
		return vehicle.ErrPlateInvalid
	}

	repo, err := s.vehicleRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return err
	}

	newVehicle := entity.Vehicle{
		ID:     ULID,
		Placa:  placa,
		Marca:  req.Marca,
		Modelo: req.Modelo,
		Color:  req.Color,
		UserID: req.UserID,
	}

	if err := repo.Vehicles.CreateVehicle(ctx, newVehicle); err != nil {
		return err
	}

	return nil
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]entity.Vehicle, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.vehicleRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Vehicles.ListVehicles(ctx)
}
