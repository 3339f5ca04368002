package report

import (
	"fmt"
	"strings"

	"github.com/jeronimo114/comcer2/internal/domain/dispatch"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

// Coordenadas fijas de la plantilla.
const (
	infoDispatchFirstRow = 18
	infoDispatchClear    = "A18:J25"

	despachoFirstRow = 2
	despachoClear    = "A2:R90"

	// SheetConsec y SheetDecomisos son hojas de la plantilla referidas por nombre.
	SheetConsec    = "Consec"
	SheetDecomisos = "Decomisos"

	decomisosFirstRow = 2
	decomisosClear    = "A2:J500"
)

// Índices de las hojas referidas por posición.
const (
	SheetInfo        = 0
	SheetDespacho    = 1
	SheetLiquidacion = 2
)

// Cell una celda de la plantilla.
type Cell struct {
	Addr  string
	Value any
}

// InfoCells celdas del encabezado del lote en la hoja de información.
func InfoCells(l *entity.Lote) []Cell {
	return []Cell{
		{"A2", l.Batch},
		{"B2", l.CreatedAt},
		{"C2", l.Register.CreatedAt},
		{"D2", l.Disembark.CreatedAt},
		{"E2", l.Total.Cell()},
		{"F2", l.IndividualSummary.Weighted.Cell()},
		{"G2", l.TotalWeight.Cell()},
		{"H2", l.AverageWeight.Cell()},
		{"I2", l.CustomerPlant.Label},
		{"J2", l.CustomerInvoice.Label},
		{"A10", l.Batch},
		{"B10", l.IndividualSummary.Beneficiaries.Cell()},
		{"C10", l.BenefitDate},
		{"D10", l.DataBenefit.RCC.Cell()},
		{"E10", l.DataBenefit.RCR.Cell()},
		{"F10", l.DataBenefit.PCC.Cell()},
		{"G10", l.DataBenefit.PCR.Cell()},
		{"H10", l.DataBenefit.ML.Cell()},
		{"I10", l.DataBenefit.MCKG.Cell()},
		{"J10", l.IndividualSummary.AvgBackfat.Cell()},
		{"K10", l.CustomerPlant.Label},
		{"L10", l.CustomerInvoice.Label},
		{"M10", l.Property.Label},
	}
}

// DispatchRows una fila A:J por despacho, desde la fila 18 de la hoja de información.
func DispatchRows(l *entity.Lote) [][]any {
	rows := make([][]any, 0, len(l.Dispatched))
	for _, d := range l.Dispatched {
		rows = append(rows, []any{
			l.Batch,
			0,
			0,
			d.QuantityProcessed.Cell(),
			d.QuantityVisceras.Cell(),
			0,
			0,
			d.NameDestination,
			l.CustomerPlant.Label,
			l.CustomerInvoice.Label,
		})
	}
	return rows
}

// DespachoRows filas A:R de la hoja de despacho para los individuos del cliente.
// Un individuo sin destino lleva ceros en fechas, destino, placa y código.
func DespachoRows(individuals []entity.Individual, client, suffix string, idx *dispatch.Index) [][]any {
	var rows [][]any
	for _, ind := range individuals {
		if ind.Destination.Label != client {
			continue
		}
		dest := ind.Destination.Value.String()

		var start, end, label, plate, code any = 0, 0, 0, 0, 0
		if dest != "" {
			window := dispatch.LoadWindow{Start: dispatch.Unknown, End: dispatch.Unknown}
			detail, ok := idx.ByDestination(dest)
			if ok {
				window = idx.LoadDatesByPlate(detail.Plate)
			}
			start, end = window.Start, window.End
			label, plate, code = ind.Destination.Label, detail.Plate, detail.Code
		}

		// A-R: cargue (inicio, fin), consecutivo, -, finca, ppe, pcc, -, pcr, gd, ml, seurop, mc,
		// mckg, índice pse, destino, placa, código de despacho.
		rows = append(rows, []any{
			start,
			end,
			fmt.Sprintf("%s-%s", suffix, ind.Consecutive),
			"",
			ind.Property.Label,
			ind.PPE.Cell(),
			ind.PCC.Cell(),
			"",
			ind.PCR.Cell(),
			ind.GD.Cell(),
			ind.ML.Cell(),
			ind.SEUROP,
			ind.MC.Cell(),
			ind.MCKG.Cell(),
			ind.IndexPSE.Cell(),
			label,
			plate,
			code,
		})
	}
	return rows
}

// LiquidacionCells fechas de llegada, pesaje, beneficio y cargue del cliente.
func LiquidacionCells(l *entity.Lote, client string, idx *dispatch.Index) []Cell {
	window := idx.LoadDatesByClient(client)
	return []Cell{
		{"L4", l.Register.CreatedAt},
		{"L5", l.FirstWeightDate()},
		{"L6", l.DataBenefit.DateBenefit},
		{"O3", l.Suffix()},
		{"L7", window.Start},
		{"L8", window.End},
	}
}

// DecomisosRanges cantidades en A:E y motivos en G:J desde la fila 2 de la hoja Decomisos.
func DecomisosRanges(title string, d *entity.Decomisos) []ValueRange {
	var out []ValueRange
	if len(d.Cantidades) > 0 {
		rows := make([][]any, 0, len(d.Cantidades))
		for _, c := range d.Cantidades {
			rows = append(rows, []any{c.Individuo, c.Organo, c.Cantidad, c.Unidad, c.Seccion})
		}
		last := decomisosFirstRow + len(rows) - 1
		out = append(out, ValueRange{Range: A1(title, fmt.Sprintf("A%d:E%d", decomisosFirstRow, last)), Values: rows})
	}
	if len(d.Motivos) > 0 {
		rows := make([][]any, 0, len(d.Motivos))
		for _, m := range d.Motivos {
			total := "NO"
			if m.DecomisoTotal {
				total = "SI"
			}
			rows = append(rows, []any{m.Individuo, m.Organo, m.Patologia, total})
		}
		last := decomisosFirstRow + len(rows) - 1
		out = append(out, ValueRange{Range: A1(title, fmt.Sprintf("G%d:J%d", decomisosFirstRow, last)), Values: rows})
	}
	return out
}

// A1 arma un rango A1 con el título de la hoja entre comillas simples.
func A1(title, rng string) string {
	if title == "" {
		return rng
	}
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + rng
}

func cellRanges(title string, cells []Cell) []ValueRange {
	out := make([]ValueRange, 0, len(cells))
	for _, c := range cells {
		out = append(out, ValueRange{Range: A1(title, c.Addr), Values: [][]any{{c.Value}}})
	}
	return out
}

func rowRanges(title, firstCol, lastCol string, firstRow int, rows [][]any) []ValueRange {
	out := make([]ValueRange, 0, len(rows))
	for i, r := range rows {
		n := firstRow + i
		out = append(out, ValueRange{Range: A1(title, fmt.Sprintf("%s%d:%s%d", firstCol, n, lastCol, n)), Values: [][]any{r}})
	}
	return out
}
