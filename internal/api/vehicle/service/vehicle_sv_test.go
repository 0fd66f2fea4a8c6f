package vehicleService

import (
	"ProjectPlacas/internal/api/vehicle"
	vehicleRepository "ProjectPlacas/internal/api/vehicle/repository"
	"ProjectPlacas/internal/entity"
	"ProjectPlacas/pkg/utils"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

type stubVehicles struct {
	created []entity.Vehicle
	listed  []entity.Vehicle
}

func (s *stubVehicles) CreateVehicle(_ context.Context, v entity.Vehicle) error {
	s.created = append(s.created, v)
	return nil
}
func (s *stubVehicles) GetByPlate(context.Context, string) (entity.Vehicle, error) {
	return entity.Vehicle{}, vehicle.ErrVehicleNotFound
}
func (s *stubVehicles) ListVehicles(context.Context) ([]entity.Vehicle, error) {
	return s.listed, nil
}
func (s *stubVehicles) ListByUser(context.Context, string) ([]entity.Vehicle, error) {
	return nil, nil
}

type stubVehicleRepo struct{ vehicles *stubVehicles }

func (s *stubVehicleRepo) NewClient(bool) (vehicleRepository.Client, error) {
	return vehicleRepository.Client{
		Vehicles: s.vehicles,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newTestService(t *testing.T, vehicles *stubVehicles) IVehicleService {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &vehicleService{
		log:               logger,
		vehicleRepository: &stubVehicleRepo{vehicles: vehicles},
		utils:             utils.New(),
	}
}

func TestCreateVehicleNormalizesPlate(t *testing.T) {
	vehicles := &stubVehicles{}
	svc := newTestService(t, vehicles)

	err := svc.CreateVehicle(context.Background(), vehicle.CreateVehicleRequest{
		Placa:  "abc-1234",
		Marca:  "Nissan",
		Modelo: "Versa",
		Color:  "Rojo",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("CreateVehicle returned error: %v", err)
	}

	if len(vehicles.created) != 1 {
		t.Fatalf("expected 1 created vehicle, got %d", len(vehicles.created))
	}
	created := vehicles.created[0]
	if created.Placa != "ABC1234" {
		t.Errorf("expected normalized plate ABC1234, got %q", created.Placa)
	}
	if created.ID == "" {
		t.Error("expected a generated vehicle id")
	}
}

func TestCreateVehicleRejectsInvalidPlate(t *testing.T) {
	cases := []struct {
		name  string
		placa string
	}{
		{"too short after normalization", "ab-1"},
		{"too long", "ABCD123456"},
		{"dealer branding", "venta99"},
		{"only punctuation", "--- .."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vehicles := &stubVehicles{}
			svc := newTestService(t, vehicles)

			err := svc.CreateVehicle(context.Background(), vehicle.CreateVehicleRequest{
				Placa:  tc.placa,
				Marca:  "Nissan",
				UserID: "user-1",
			})
			if !errors.Is(err, vehicle.ErrPlateInvalid) {
				t.Fatalf("err = %v, want ErrPlateInvalid", err)
			}
			if len(vehicles.created) != 0 {
				t.Errorf("expected nothing persisted, got %d", len(vehicles.created))
			}
		})
	}
}

func TestListVehicles(t *testing.T) {
	vehicles := &stubVehicles{listed: []entity.Vehicle{
		{ID: "veh-1", Placa: "ABC1234"},
		{ID: "veh-2", Placa: "XYZ9876"},
	}}
	svc := newTestService(t, vehicles)

	got, err := svc.ListVehicles(context.Background())
	if err != nil {
		t.Fatalf("ListVehicles returned error: %v", err)
	}
	if len(got) != 2 || got[0].Placa != "ABC1234" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}
