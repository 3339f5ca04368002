package report

import "context"

// Formatos de exportación de una hoja de cálculo (MIME de Drive).
const (
	FormatXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	FormatPDF  = "application/pdf"
)

// ValueRange rango A1 y sus valores fila por fila.
type ValueRange struct {
	Range  string
	Values [][]any
}

// SpreadsheetGateway puerto hacia Google Sheets/Drive. La implementación concreta vive en
// infrastructure/gsheets; los tests usan una hoja en memoria.
type SpreadsheetGateway interface {
	// SheetTitles títulos de las hojas en orden de índice.
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	// BatchUpdate escribe todos los rangos en una sola llamada (valores RAW).
	BatchUpdate(ctx context.Context, spreadsheetID string, data []ValueRange) error
	BatchClear(ctx context.Context, spreadsheetID string, ranges []string) error
	// Values lee un rango con valores formateados (lo que ve el usuario).
	Values(ctx context.Context, spreadsheetID, rng string) ([][]any, error)
	// Append agrega una fila a partir del rango indicado (valores RAW).
	Append(ctx context.Context, spreadsheetID, rng string, row []any) error
	Export(ctx context.Context, spreadsheetID, mimeType string) ([]byte, error)
}
