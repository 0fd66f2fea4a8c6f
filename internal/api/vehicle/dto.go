package vehicle

import "time"

type CreateVehicleRequest struct {
	Placa  string `json:"placa" validate:"required,min=5,max=10"`
	Marca  string `json:"marca" validate:"required,max=100"`
	Modelo string `json:"modelo" validate:"max=100"`
	Color  string `json:"color" validate:"max=50"`
	UserID string `json:"id_usuario" validate:"required"`
}

type VehicleResponse struct {
	ID        string    `json:"id_vehiculo"`
	Placa     string    `json:"placa"`
	Marca     string    `json:"marca"`
	Modelo    string    `json:"modelo"`
	Color     string    `json:"color"`
	UserID    string    `json:"id_usuario"`
	OwnerName string    `json:"propietario_nombre,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
