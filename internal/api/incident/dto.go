package incident

import "time"

type CreateIncidentRequest struct {
	Placa       string  `form:"placa" validate:"required"`
	Descripcion string  `form:"descripcion" validate:"required,min=5,max=1000"`
	Lat         float64 `form:"lat" validate:"required,latitude"`
	Lng         float64 `form:"lng" validate:"required,longitude"`
	ReporterID  string  `form:"id_usuario_reporta" validate:"required"`
}

type IncidentResponse struct {
	ID            string    `json:"id_incidencia"`
	VehicleID     string    `json:"id_vehiculo"`
	PlacaVehiculo string    `json:"placa"`
	ReporterID    string    `json:"id_usuario_reporta"`
	ReporterName  string    `json:"reporta_nombre,omitempty"`
	Descripcion   string    `json:"descripcion"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	Fecha         time.Time `json:"fecha"`
	MainImageURL  string    `json:"imagen_principal"`
	Evidence      []string  `json:"evidencias"`
	CreatedAt     time.Time `json:"created_at"`
}
