package vehicleRepository

import (
	"ProjectPlacas/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Vehicles: &vehicleRepository{q: db, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Vehicles interface {
		CreateVehicle(ctx context.Context, vehicle entity.Vehicle) error
		GetByPlate(ctx context.Context, placa string) (entity.Vehicle, error)
		ListVehicles(ctx context.Context) ([]entity.Vehicle, error)
		ListByUser(ctx context.Context, userID string) ([]entity.Vehicle, error)
	}

	Commit   func() error
	Rollback func() error
}

type vehicleRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
