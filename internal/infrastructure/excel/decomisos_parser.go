package excel

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/jeronimo114/comcer2/internal/domain"
	"github.com/jeronimo114/comcer2/internal/domain/decomiso"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

// DecomisosParser lee el reporte de despacho (.xlsx) y extrae las tablas de decomisos.
type DecomisosParser struct {
	log zerolog.Logger
}

// NewDecomisosParser construye el parser.
func NewDecomisosParser(log zerolog.Logger) *DecomisosParser {
	return &DecomisosParser{log: log}
}

// Parse abre el libro en memoria. Un archivo que no es un .xlsx válido devuelve
// domain.ErrMalformedPayload; hojas faltantes solo generan advertencias en el log.
func (p *DecomisosParser) Parse(data []byte) (*entity.Decomisos, error) {
	sheets, err := ReadSheets(data)
	if err != nil {
		return nil, err
	}

	res := decomiso.Extract(sheets)
	for _, w := range res.Warnings {
		p.log.Warn().Msg(w)
	}
	p.log.Info().
		Int("cantidades", len(res.Decomisos.Cantidades)).
		Int("motivos", len(res.Decomisos.Motivos)).
		Msg("decomisos extraídos del reporte")
	return &res.Decomisos, nil
}

// ReadSheets devuelve todas las hojas del libro con sus filas como texto formateado.
func ReadSheets(data []byte) ([]decomiso.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("excel: abrir libro: %w: %v", domain.ErrMalformedPayload, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]decomiso.Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("excel: leer hoja %q: %w: %v", name, domain.ErrMalformedPayload, err)
		}
		sheets = append(sheets, decomiso.Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}
