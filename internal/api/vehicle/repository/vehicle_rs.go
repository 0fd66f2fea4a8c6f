package vehicleRepository

import (
	"ProjectPlacas/internal/api/vehicle"
	"ProjectPlacas/internal/entity"
	contextPkg "ProjectPlacas/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type VehicleDB struct {
	ID        sql.NullString `db:"id_vehiculo"`
	Placa     sql.NullString `db:"placa"`
	Marca     sql.NullString `db:"marca"`
	Modelo    sql.NullString `db:"modelo"`
	Color     sql.NullString `db:"color"`
	UserID    sql.NullString `db:"id_usuario"`
	OwnerName sql.NullString `db:"propietario_nombre"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

func (r *vehicleRepository) CreateVehicle(c context.Context, v entity.Vehicle) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id_vehiculo": v.ID,
		"placa":       v.Placa,
		"marca":       v.Marca,
		"modelo":      v.Modelo,
		"color":       v.Color,
		"id_usuario":  v.UserID,
		"created_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateVehicle, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateVehicle")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				r.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"placa":      v.Placa,
				}).Warn("Plate already registered")
				return vehicle.ErrPlateAlreadyRegistered
			case "23503":
				r.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"id_usuario": v.UserID,
				}).Warn("Owner user does not exist")
				return vehicle.ErrOwnerNotFound
			}
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating vehicle")
		return err
	}

	return nil
}

func (r *vehicleRepository) GetByPlate(c context.Context, placa string) (entity.Vehicle, error) {
	requestID := contextPkg.GetRequestID(c)
	var row VehicleDB

	query, args, err := sqlx.Named(queryGetByPlate, map[string]interface{}{"placa": placa})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByPlate named query preparation err")
		return entity.Vehicle{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Vehicle{}, vehicle.ErrVehicleNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByPlate execution err")
		return entity.Vehicle{}, err
	}

	return makeVehicle(row), nil
}

func (r *vehicleRepository) ListVehicles(c context.Context) ([]entity.Vehicle, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.q.QueryxContext(c, r.q.Rebind(queryListVehicles))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListVehicles execution err")
		return nil, err
	}
	defer rows.Close()

	var vehicles []entity.Vehicle
	for rows.Next() {
		var row VehicleDB
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, makeVehicle(row))
	}

	return vehicles, rows.Err()
}

func (r *vehicleRepository) ListByUser(c context.Context, userID string) ([]entity.Vehicle, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryListByUser, map[string]interface{}{"id_usuario": userID})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	rows, err := r.q.QueryxContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListByUser execution err")
		return nil, err
	}
	defer rows.Close()

	var vehicles []entity.Vehicle
	for rows.Next() {
		var row VehicleDB
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, makeVehicle(row))
	}

	return vehicles, rows.Err()
}

func makeVehicle(row VehicleDB) entity.Vehicle {
	return entity.Vehicle{
		ID:        row.ID.String,
		Placa:     row.Placa.String,
		Marca:     row.Marca.String,
		Modelo:    row.Modelo.String,
		Color:     row.Color.String,
		UserID:    row.UserID.String,
		OwnerName: row.OwnerName.String,
		CreatedAt: row.CreatedAt.Time,
	}
}
