package incidentRepository

import (
	"ProjectPlacas/internal/entity"
	contextPkg "ProjectPlacas/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type IncidentDB struct {
	ID            sql.NullString  `db:"id_incidencia"`
	VehicleID     sql.NullString  `db:"id_vehiculo"`
	PlacaVehiculo sql.NullString  `db:"placa_vehiculo"`
	ReporterID    sql.NullString  `db:"id_usuario_reporta"`
	ReporterName  sql.NullString  `db:"reporta_nombre"`
	Descripcion   sql.NullString  `db:"descripcion"`
	Lat           sql.NullFloat64 `db:"lat"`
	Lng           sql.NullFloat64 `db:"lng"`
	Fecha         sql.NullTime    `db:"fecha"`
	MainImageURL  sql.NullString  `db:"imagen_principal"`
	Evidence      pq.StringArray  `db:"evidencias"`
	CreatedAt     sql.NullTime    `db:"created_at"`
}

func (r *incidentRepository) CreateIncident(c context.Context, incident entity.Incident) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id_incidencia":      incident.ID,
		"id_vehiculo":        incident.VehicleID,
		"id_usuario_reporta": incident.ReporterID,
		"descripcion":        incident.Descripcion,
		"lat":                incident.Lat,
		"lng":                incident.Lng,
		"fecha":              incident.Fecha,
		"imagen_principal":   incident.MainImageURL,
		"evidencias":         pq.Array(incident.Evidence),
		"created_at":         time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateIncident, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateIncident")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating incident")
		return err
	}

	return nil
}

func (r *incidentRepository) ListIncidents(c context.Context) ([]entity.Incident, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.q.QueryxContext(c, r.q.Rebind(queryListIncidents))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListIncidents execution err")
		return nil, err
	}
	defer rows.Close()

	var incidents []entity.Incident
	for rows.Next() {
		var row IncidentDB
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		incidents = append(incidents, makeIncident(row))
	}

	return incidents, rows.Err()
}

func makeIncident(row IncidentDB) entity.Incident {
	return entity.Incident{
		ID:            row.ID.String,
		VehicleID:     row.VehicleID.String,
		PlacaVehiculo: row.PlacaVehiculo.String,
		ReporterID:    row.ReporterID.String,
		ReporterName:  row.ReporterName.String,
		Descripcion:   row.Descripcion.String,
		Lat:           row.Lat.Float64,
		Lng:           row.Lng.Float64,
		Fecha:         row.Fecha.Time,
		MainImageURL:  row.MainImageURL.String,
		Evidence:      row.Evidence,
		CreatedAt:     row.CreatedAt.Time,
	}
}
