package entity

// Individual un animal del lote (body de GET /monitoring/individuals/{id}).
type Individual struct {
	Batch       string  `json:"batch"`
	Consecutive Ref     `json:"consecutive"`
	Destination Label   `json:"destination"`
	Property    Label   `json:"property"`
	PPE         Measure `json:"ppe"`
	PCC         Measure `json:"pcc"`
	PCR         Measure `json:"pcr"`
	GD          Measure `json:"gd"`
	ML          Measure `json:"ml"`
	SEUROP      string  `json:"seurop"`
	MC          Measure `json:"mc"`
	MCKG        Measure `json:"mckg"`
	IndexPSE    Measure `json:"indexpse"`
}
