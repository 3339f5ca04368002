package entity

import "strings"

// Lote detalle de un lote de beneficio (body de GET /batch/{id}).
// Batch es el código que maneja el usuario; el id numérico de la API se guarda aparte.
type Lote struct {
	Batch             string            `json:"batch"`
	CreatedAt         string            `json:"createdAt"`
	Total             Measure           `json:"total"`
	TotalWeight       Measure           `json:"totalweight"`
	AverageWeight     Measure           `json:"averageweight"`
	BenefitDate       string            `json:"benefitdate"`
	Register          Stamp             `json:"register"`
	Disembark         Stamp             `json:"disembark"`
	CustomerPlant     Label             `json:"customerplant"`
	CustomerInvoice   Label             `json:"customerinvoice"`
	Property          Label             `json:"property"`
	IndividualSummary IndividualSummary `json:"individualssumary"`
	DataBenefit       DataBenefit       `json:"databenefit"`
	Weights           []Weighing        `json:"weights"`
	Dispatched        []Dispatch        `json:"dispatched"`
}

// Stamp sub-objeto que solo aporta su fecha de creación.
type Stamp struct {
	CreatedAt string `json:"createdAt"`
}

// IndividualSummary totales por individuo del lote.
type IndividualSummary struct {
	Weighted      Measure `json:"weigthed"` // así lo escribe la API
	Beneficiaries Measure `json:"beneficiaries"`
	AvgBackfat    Measure `json:"avgbackfat"`
}

// DataBenefit rendimientos y fecha de beneficio.
type DataBenefit struct {
	RCC         Measure `json:"rcc"`
	RCR         Measure `json:"rcr"`
	PCC         Measure `json:"pcc"`
	PCR         Measure `json:"pcr"`
	ML          Measure `json:"ml"`
	MCKG        Measure `json:"mckg"`
	DateBenefit string  `json:"datebenefit"`
}

// Weighing registro de pesaje.
type Weighing struct {
	WeightDate string `json:"weightdate"`
}

// Suffix devuelve la parte del código posterior al primer guion ("2025-1432" -> "1432").
func (l *Lote) Suffix() string {
	return BatchSuffix(l.Batch)
}

// FirstWeightDate fecha del primer pesaje o "" si no hay pesajes.
func (l *Lote) FirstWeightDate() string {
	if len(l.Weights) == 0 {
		return ""
	}
	return l.Weights[0].WeightDate
}

// BatchSuffix ver Lote.Suffix.
func BatchSuffix(batch string) string {
	if _, after, ok := strings.Cut(batch, "-"); ok {
		return after
	}
	return batch
}
