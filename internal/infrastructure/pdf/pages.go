package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/domain"
)

func init() {
	// pdfcpu no debe crear su carpeta de configuración en el home del servidor
	api.DisableConfigDir()
}

// PageExtractor recorta el PDF exportado de la plantilla a las páginas configuradas.
type PageExtractor struct {
	log zerolog.Logger
}

// NewPageExtractor construye el extractor.
func NewPageExtractor(log zerolog.Logger) *PageExtractor {
	return &PageExtractor{log: log}
}

// KeepPages devuelve un PDF solo con las páginas seleccionadas (base 1, sintaxis de
// pdfcpu: "4", "2-3", "even"...). Una página numérica fuera de rango es un error.
func (e *PageExtractor) KeepPages(doc []byte, pages []string) ([]byte, error) {
	if len(pages) == 0 {
		return doc, nil
	}
	count, err := api.PageCount(bytes.NewReader(doc), nil)
	if err != nil {
		return nil, fmt.Errorf("pdf: leer documento: %w: %v", domain.ErrMalformedPayload, err)
	}
	for _, p := range pages {
		if n, err := strconv.Atoi(p); err == nil && (n < 1 || n > count) {
			return nil, fmt.Errorf("%w: la página %d no existe (el pdf tiene %d)", domain.ErrInvalidInput, n, count)
		}
	}

	var out bytes.Buffer
	if err := api.Trim(bytes.NewReader(doc), &out, pages, nil); err != nil {
		return nil, fmt.Errorf("pdf: recortar páginas %v: %w", pages, err)
	}
	e.log.Debug().Strs("paginas", pages).Int("total", count).Msg("pdf recortado")
	return out.Bytes(), nil
}
