package incidentRepository

const (
	queryCreateIncident = `
INSERT INTO incidencias (id_incidencia, id_vehiculo, id_usuario_reporta, descripcion,
                         lat, lng, fecha, imagen_principal, evidencias, created_at)
VALUES (:id_incidencia, :id_vehiculo, :id_usuario_reporta, :descripcion,
        :lat, :lng, :fecha, :imagen_principal, :evidencias, :created_at)`

	queryListIncidents = `
SELECT i.id_incidencia, i.id_vehiculo, v.placa AS placa_vehiculo,
       i.id_usuario_reporta, u.nombre || ' ' || u.apellidos AS reporta_nombre,
       i.descripcion, i.lat, i.lng, i.fecha,
       i.imagen_principal, i.evidencias, i.created_at
FROM incidencias i
         JOIN vehiculos v ON v.id_vehiculo = i.id_vehiculo
         JOIN usuarios u ON u.id_usuario = i.id_usuario_reporta
ORDER BY i.fecha DESC`
)
