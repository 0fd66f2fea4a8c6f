package plate

type DetectPlateResponse struct {
	Success    bool     `json:"success"`
	Plates     []string `json:"placas"`
	SavedImage string   `json:"imagen_guardada,omitempty"`
	Detail     string   `json:"detalle,omitempty"`
}
