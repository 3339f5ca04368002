package dto

// ProcessResponse respuesta de GET /process que consume la página de carga.
type ProcessResponse struct {
	Success   bool   `json:"success"`
	Redirect  string `json:"redirect,omitempty"`
	Error     string `json:"error,omitempty"`
	Retryable bool   `json:"retryable,omitempty"` // fallo de conexión: se puede volver a consultar el lote
}

// SessionResponse estado del lote en la sesión del navegador.
type SessionResponse struct {
	Stage       string          `json:"stage"`
	Lote        string          `json:"lote,omitempty"`
	LoteID      string          `json:"lote_id,omitempty"`
	Clients     []string        `json:"clients"`
	Individuals int             `json:"individuals"`
	Decomisos   *DecomisosCount `json:"decomisos,omitempty"`
	Files       []string        `json:"files"`
}

// DecomisosCount filas extraídas del reporte de despacho.
type DecomisosCount struct {
	Cantidades int `json:"cantidades"`
	Motivos    int `json:"motivos"`
}

// BatchesResponse lotes de la ventana de búsqueda (código -> id interno).
type BatchesResponse struct {
	Lotes map[string]string `json:"lotes"`
	Total int               `json:"total"`
}
