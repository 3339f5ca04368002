package lote

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

// DecomisosFetcher descarga el resumen de despacho de un lote y extrae sus decomisos.
type DecomisosFetcher struct {
	client CGANClient
	parser DecomisosParser
	log    zerolog.Logger
}

// NewDecomisosFetcher construye el fetcher.
func NewDecomisosFetcher(client CGANClient, parser DecomisosParser, log zerolog.Logger) *DecomisosFetcher {
	return &DecomisosFetcher{client: client, parser: parser, log: log}
}

// Fetch resuelve la URL del reporte, lo descarga y lo analiza. Cualquier paso fallido corta
// la cadena y devuelve el error; el llamador decide si es fatal.
func (f *DecomisosFetcher) Fetch(ctx context.Context, loteID string) (*entity.Decomisos, error) {
	url, err := f.client.DispatchSummaryURL(ctx, loteID)
	if err != nil {
		return nil, fmt.Errorf("decomisos: url del reporte: %w", err)
	}
	data, err := f.client.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("decomisos: descarga: %w", err)
	}
	d, err := f.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decomisos: análisis del excel: %w", err)
	}
	f.log.Info().
		Str("lote_id", loteID).
		Int("cantidades", len(d.Cantidades)).
		Int("motivos", len(d.Motivos)).
		Msg("decomisos extraídos")
	return d, nil
}
