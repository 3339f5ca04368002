// Package report escribe los datos del lote en la plantilla de Google Sheets, exporta los
// archivos por cliente y copia el consecutivo a la hoja de seguimiento.
package report

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/domain/dispatch"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
	"github.com/jeronimo114/comcer2/internal/domain/sanitize"
)

// Config ids de las hojas de cálculo.
type Config struct {
	TemplateID     string
	ConsecutivosID string
}

// Writer escribe en la plantilla. Cada actualización lógica es una sola llamada batch por hoja.
type Writer struct {
	gw  SpreadsheetGateway
	cfg Config
	log zerolog.Logger

	mu     sync.Mutex
	titles []string

	// template todas las sesiones escriben en la misma plantilla: quien la llena la retiene
	// hasta terminar de exportar.
	template sync.Mutex
}

// NewWriter construye el writer.
func NewWriter(gw SpreadsheetGateway, cfg Config, log zerolog.Logger) *Writer {
	return &Writer{gw: gw, cfg: cfg, log: log}
}

// Lock toma la plantilla para una secuencia de escrituras y exportaciones.
func (w *Writer) Lock() { w.template.Lock() }

// Unlock libera la plantilla.
func (w *Writer) Unlock() { w.template.Unlock() }

// FillInfo escribe el encabezado del lote y una fila por despacho. Devuelve los clientes
// (nombres de destino) en orden de aparición.
func (w *Writer) FillInfo(ctx context.Context, l *entity.Lote) ([]string, error) {
	title, err := w.sheetTitle(ctx, SheetInfo)
	if err != nil {
		return nil, err
	}

	if err := w.update(ctx, w.cfg.TemplateID, cellRanges(title, InfoCells(l))); err != nil {
		return nil, fmt.Errorf("report: hoja de información: %w", err)
	}
	w.log.Info().Str("lote", l.Batch).Msg("hoja de información diligenciada")

	w.log.Info().Str("rango", infoDispatchClear).Msg("limpiando filas de despachos")
	if err := w.clear(ctx, w.cfg.TemplateID, A1(title, infoDispatchClear)); err != nil {
		return nil, fmt.Errorf("report: limpiar despachos: %w", err)
	}

	rows := DispatchRows(l)
	if len(rows) > 0 {
		if err := w.update(ctx, w.cfg.TemplateID, rowRanges(title, "A", "J", infoDispatchFirstRow, rows)); err != nil {
			return nil, fmt.Errorf("report: filas de despacho: %w", err)
		}
	}

	clients := dispatch.Clients(l)
	w.log.Info().Strs("clientes", clients).Msg("clientes del lote")
	return clients, nil
}

// FillDespacho reescribe la hoja de despacho con los individuos del cliente. Devuelve cuántas
// filas escribió.
func (w *Writer) FillDespacho(ctx context.Context, l *entity.Lote, individuals []entity.Individual, client string, idx *dispatch.Index) (int, error) {
	title, err := w.sheetTitle(ctx, SheetDespacho)
	if err != nil {
		return 0, err
	}

	w.log.Info().Str("cliente", client).Msg("limpiando hoja de despacho")
	if err := w.clear(ctx, w.cfg.TemplateID, A1(title, despachoClear)); err != nil {
		return 0, fmt.Errorf("report: limpiar despacho: %w", err)
	}

	rows := DespachoRows(individuals, client, despachoSuffix(l, individuals), idx)
	if len(rows) > 0 {
		if err := w.update(ctx, w.cfg.TemplateID, rowRanges(title, "A", "R", despachoFirstRow, rows)); err != nil {
			return 0, fmt.Errorf("report: filas de despacho del cliente %q: %w", client, err)
		}
	}
	w.log.Info().Str("cliente", client).Int("individuos", len(rows)).Msg("hoja de despacho actualizada")
	return len(rows), nil
}

// FillLiquidacion escribe las fechas de la liquidación del cliente.
func (w *Writer) FillLiquidacion(ctx context.Context, l *entity.Lote, client string, idx *dispatch.Index) error {
	title, err := w.sheetTitle(ctx, SheetLiquidacion)
	if err != nil {
		return err
	}
	w.log.Info().Str("cliente", client).Msg("diligenciando liquidación")
	if err := w.update(ctx, w.cfg.TemplateID, cellRanges(title, LiquidacionCells(l, client, idx))); err != nil {
		return fmt.Errorf("report: liquidación del cliente %q: %w", client, err)
	}
	return nil
}

// FillDecomisos reescribe la hoja Decomisos (una vez por lote, no por cliente).
func (w *Writer) FillDecomisos(ctx context.Context, d *entity.Decomisos) error {
	if err := w.clear(ctx, w.cfg.TemplateID, A1(SheetDecomisos, decomisosClear)); err != nil {
		return fmt.Errorf("report: limpiar decomisos: %w", err)
	}
	if d.Empty() {
		w.log.Warn().Msg("no hay decomisos para escribir")
		return nil
	}
	if err := w.update(ctx, w.cfg.TemplateID, DecomisosRanges(SheetDecomisos, d)); err != nil {
		return fmt.Errorf("report: decomisos: %w", err)
	}
	w.log.Info().
		Int("cantidades", len(d.Cantidades)).
		Int("motivos", len(d.Motivos)).
		Msg("hoja de decomisos actualizada")
	return nil
}

// ExportTemplate exporta la plantilla completa (xlsx o pdf).
func (w *Writer) ExportTemplate(ctx context.Context, mimeType string) ([]byte, error) {
	data, err := w.gw.Export(ctx, w.cfg.TemplateID, mimeType)
	if err != nil {
		w.log.Error().Err(err).Str("formato", mimeType).Msg("error exportando la plantilla")
		return nil, fmt.Errorf("report: exportar plantilla: %w", err)
	}
	return data, nil
}

// ExportConsecutivos exporta la hoja de seguimiento como xlsx.
func (w *Writer) ExportConsecutivos(ctx context.Context) ([]byte, error) {
	data, err := w.gw.Export(ctx, w.cfg.ConsecutivosID, FormatXLSX)
	if err != nil {
		w.log.Error().Err(err).Msg("error exportando consecutivos")
		return nil, fmt.Errorf("report: exportar consecutivos: %w", err)
	}
	return data, nil
}

// CopyConsecutivoRow copia la fila indicada de la hoja Consec a la siguiente fila libre de la
// hoja de seguimiento, saneando cada valor. Devuelve la fila destino (0 si la fila origen está
// vacía y se omitió).
func (w *Writer) CopyConsecutivoRow(ctx context.Context, row int) (int, error) {
	src, err := w.gw.Values(ctx, w.cfg.TemplateID, A1(SheetConsec, fmt.Sprintf("%d:%d", row, row)))
	if err != nil {
		w.log.Error().Err(err).Msg("error de Google Sheets leyendo Consec")
		return 0, fmt.Errorf("report: leer consecutivo: %w", err)
	}
	var values []any
	if len(src) > 0 {
		values = src[0]
	}
	if isBlank(values) {
		w.log.Warn().Int("fila", row).Msg("la fila de consecutivo está vacía, se omite")
		return 0, nil
	}

	titles, err := w.gw.SheetTitles(ctx, w.cfg.ConsecutivosID)
	if err != nil {
		return 0, fmt.Errorf("report: hojas de consecutivos: %w", err)
	}
	if len(titles) == 0 {
		return 0, fmt.Errorf("report: la hoja de consecutivos no tiene pestañas")
	}
	dest := titles[0]

	existing, err := w.gw.Values(ctx, w.cfg.ConsecutivosID, A1(dest, "A:ZZ"))
	if err != nil {
		return 0, fmt.Errorf("report: leer consecutivos: %w", err)
	}
	next := len(existing) + 1

	clean := sanitize.Row(values)
	if err := w.gw.Append(ctx, w.cfg.ConsecutivosID, A1(dest, fmt.Sprintf("A%d", next)), clean); err != nil {
		w.log.Error().Err(err).Msg("error de Google Sheets agregando consecutivo")
		return 0, fmt.Errorf("report: agregar consecutivo: %w", err)
	}
	w.log.Info().Int("fila", next).Interface("valores", clean).Msg("consecutivo agregado")
	return next, nil
}

func (w *Writer) sheetTitle(ctx context.Context, index int) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.titles == nil {
		titles, err := w.gw.SheetTitles(ctx, w.cfg.TemplateID)
		if err != nil {
			w.log.Error().Err(err).Msg("error de Google Sheets leyendo la plantilla")
			return "", fmt.Errorf("report: hojas de la plantilla: %w", err)
		}
		w.titles = titles
	}
	if index >= len(w.titles) {
		return "", fmt.Errorf("report: la plantilla no tiene hoja en la posición %d", index)
	}
	return w.titles[index], nil
}

func (w *Writer) update(ctx context.Context, spreadsheetID string, data []ValueRange) error {
	if err := w.gw.BatchUpdate(ctx, spreadsheetID, data); err != nil {
		w.log.Error().Err(err).Msg("error de Google Sheets")
		return err
	}
	return nil
}

func (w *Writer) clear(ctx context.Context, spreadsheetID string, ranges ...string) error {
	if err := w.gw.BatchClear(ctx, spreadsheetID, ranges); err != nil {
		w.log.Error().Err(err).Msg("error de Google Sheets")
		return err
	}
	return nil
}

// despachoSuffix el consecutivo del despacho usa el sufijo del lote que trae el primer individuo.
func despachoSuffix(l *entity.Lote, individuals []entity.Individual) string {
	if len(individuals) > 0 && individuals[0].Batch != "" {
		return entity.BatchSuffix(individuals[0].Batch)
	}
	return l.Suffix()
}

func isBlank(values []any) bool {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return false
	}
	return true
}
