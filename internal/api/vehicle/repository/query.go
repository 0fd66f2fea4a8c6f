package vehicleRepository

const (
	queryCreateVehicle = `
INSERT INTO vehiculos (id_vehiculo, placa, marca, modelo, color, id_usuario, created_at)
VALUES (:id_vehiculo, :placa, :marca, :modelo, :color, :id_usuario, :created_at)`

	queryGetByPlate = `
SELECT v.id_vehiculo, v.placa, v.marca, v.modelo, v.color, v.id_usuario, v.created_at
FROM vehiculos v
    WHERE v.placa = :placa`

	queryListVehicles = `
SELECT v.id_vehiculo, v.placa, v.marca, v.modelo, v.color, v.id_usuario, v.created_at,
       u.nombre || ' ' || u.apellidos AS propietario_nombre
FROM vehiculos v
    JOIN usuarios u ON u.id_usuario = v.id_usuario
ORDER BY v.created_at DESC`

	queryListByUser = `
SELECT v.id_vehiculo, v.placa, v.marca, v.modelo, v.color, v.id_usuario, v.created_at
FROM vehiculos v
    WHERE v.id_usuario = :id_usuario
ORDER BY v.created_at DESC`
)
