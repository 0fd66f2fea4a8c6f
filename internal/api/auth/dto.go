package auth

import "time"

type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contrasena" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   int64        `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=2,max=100"`
	Apellidos string `json:"apellidos" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Rol       string `json:"rol" validate:"omitempty,oneof=USUARIO ADMIN"`
	Password  string `json:"contrasena" validate:"omitempty,min=8,max=64"`
}

type VehicleSummary struct {
	ID     string `json:"id_vehiculo"`
	Placa  string `json:"placa"`
	Marca  string `json:"marca"`
	Modelo string `json:"modelo"`
	Color  string `json:"color"`
}

type UserResponse struct {
	ID        string           `json:"id_usuario"`
	Nombre    string           `json:"nombre"`
	Apellidos string           `json:"apellidos"`
	Email     string           `json:"email"`
	Rol       string           `json:"rol"`
	Vehicles  []VehicleSummary `json:"vehiculos,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
