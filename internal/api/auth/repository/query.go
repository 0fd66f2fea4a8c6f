package authRepository

const (
	queryCreateUser = `
INSERT INTO usuarios (id_usuario, nombre, apellidos, email, contrasena, rol, created_at)
VALUES (:id_usuario, :nombre, :apellidos, :email, :contrasena, :rol, :created_at)`

	queryGetByID = `
SELECT id_usuario, nombre, apellidos, email, contrasena, rol, created_at, updated_at
FROM usuarios
    WHERE id_usuario = :id_usuario`

	queryGetByEmail = `
SELECT id_usuario, nombre, apellidos, email, contrasena, rol, created_at, updated_at
FROM usuarios
    WHERE email = :email`

	queryListUsers = `
SELECT id_usuario, nombre, apellidos, email, rol, created_at, updated_at
FROM usuarios
ORDER BY created_at DESC`
)
