package entity

// DecomisoCantidad fila de la hoja "cantidades": qué se decomisó y cuánto.
type DecomisoCantidad struct {
	Individuo string `json:"individuo"`
	Organo    string `json:"organo"`
	Cantidad  string `json:"cantidad"`
	Unidad    string `json:"unidad"`
	Seccion   string `json:"seccion"`
}

// DecomisoMotivo fila de la hoja "motivos": por qué se decomisó.
type DecomisoMotivo struct {
	Individuo     string `json:"individuo"`
	Organo        string `json:"organo"`
	Patologia     string `json:"patologia"`
	DecomisoTotal bool   `json:"decomiso_total"`
}

// Decomisos resultado del análisis del reporte de despacho.
type Decomisos struct {
	Cantidades []DecomisoCantidad `json:"cantidades"`
	Motivos    []DecomisoMotivo   `json:"motivos"`
}

// Empty indica que no se extrajo ninguna fila.
func (d *Decomisos) Empty() bool {
	return d == nil || (len(d.Cantidades) == 0 && len(d.Motivos) == 0)
}
