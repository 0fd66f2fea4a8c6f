package entity

import "time"

// User maps the usuarios table.
type User struct {
	ID        string    `db:"id_usuario"`
	Nombre    string    `db:"nombre"`
	Apellidos string    `db:"apellidos"`
	Email     string    `db:"email"`
	Password  string    `db:"contrasena"`
	Rol       string    `db:"rol"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID    string
	Email string
	Rol   string
}

const (
	RolUsuario = "USUARIO"
	RolAdmin   = "ADMIN"
)
