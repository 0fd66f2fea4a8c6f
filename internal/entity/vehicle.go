package entity

import "time"

// Vehicle maps the vehiculos table. Placa is stored normalized (uppercase
// alphanumeric) so incident lookups can match on the exact string the
// extraction pipeline produces.
type Vehicle struct {
	ID        string    `db:"id_vehiculo"`
	Placa     string    `db:"placa"`
	Marca     string    `db:"marca"`
	Modelo    string    `db:"modelo"`
	Color     string    `db:"color"`
	UserID    string    `db:"id_usuario"`
	OwnerName string    `db:"propietario_nombre"`
	CreatedAt time.Time `db:"created_at"`
}
