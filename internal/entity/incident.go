package entity

import "time"

// Incident maps the incidencias table. Evidence image URLs are stored as a
// Postgres text array.
type Incident struct {
	ID            string    `db:"id_incidencia"`
	VehicleID     string    `db:"id_vehiculo"`
	PlacaVehiculo string    `db:"placa_vehiculo"`
	ReporterID    string    `db:"id_usuario_reporta"`
	Descripcion   string    `db:"descripcion"`
	Lat           float64   `db:"lat"`
	Lng           float64   `db:"lng"`
	Fecha         time.Time `db:"fecha"`
	MainImageURL  string    `db:"imagen_principal"`
	Evidence      []string  `db:"evidencias"`
	CreatedAt     time.Time `db:"created_at"`

	ReporterName string `db:"reporta_nombre"`
}
