package lote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/domain"
	"github.com/jeronimo114/comcer2/internal/domain/dispatch"
)

// Formatos de archivo que genera el proceso.
const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"

	ConsecutivosFile = "Consecutivos.xlsx"
)

// ProcessConfig parámetros del proceso por cliente.
type ProcessConfig struct {
	ConsecRow int
	PDFPages  []string
}

// ProcessUseCase genera los archivos por cliente de un lote ya consultado.
type ProcessUseCase struct {
	writer   ReportWriter
	files    FileStore
	pages    PageExtractor
	renderer DecomisosRenderer
	uploader Uploader
	cfg      ProcessConfig
	log      zerolog.Logger
}

// NewProcessUseCase construye el caso de uso. uploader puede ser nil.
func NewProcessUseCase(
	writer ReportWriter,
	files FileStore,
	pages PageExtractor,
	renderer DecomisosRenderer,
	uploader Uploader,
	cfg ProcessConfig,
	log zerolog.Logger,
) *ProcessUseCase {
	return &ProcessUseCase{
		writer:   writer,
		files:    files,
		pages:    pages,
		renderer: renderer,
		uploader: uploader,
		cfg:      cfg,
		log:      log,
	}
}

// Process escribe los decomisos y, por cada cliente del lote, llena despacho y liquidación,
// exporta el xlsx y el pdf y copia el consecutivo. Al final exporta la hoja de consecutivos
// y el resumen de decomisos. Si el lote ya fue procesado no repite el trabajo.
//
// Retorna:
//   - domain.ErrNoLoteSelected  si la sesión no tiene lote.
//   - domain.ErrInvalidStage    si el lote aún no tiene datos.
func (uc *ProcessUseCase) Process(ctx context.Context, sess *Session) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch {
	case sess.code == "":
		return domain.ErrNoLoteSelected
	case sess.stage == StageDownloadable:
		uc.log.Info().Str("lote", sess.code).Msg("lote ya procesado")
		return nil
	case sess.stage != StageDataFetched:
		return fmt.Errorf("%w: el lote está en %s", domain.ErrInvalidStage, sess.stage)
	}

	if err := uc.run(ctx, sess); err != nil {
		uc.log.Error().Err(err).Str("lote", sess.code).Msg("falló el proceso del lote")
		sess.reset()
		return err
	}
	return nil
}

func (uc *ProcessUseCase) run(ctx context.Context, sess *Session) error {
	l := sess.lote
	batch := l.Batch
	if batch == "" {
		batch = sess.code
	}

	if err := uc.files.Reset(batch); err != nil {
		return fmt.Errorf("process: carpeta del lote: %w", err)
	}
	sess.files = nil

	// Otra sesión pudo llenar la plantilla con su lote después de la consulta; desde aquí
	// hasta la última exportación la plantilla es de este lote.
	uc.writer.Lock()
	defer uc.writer.Unlock()

	// ── 1. Hoja de información del lote de esta sesión ────────────────────────
	if _, err := uc.writer.FillInfo(ctx, l); err != nil {
		return fmt.Errorf("process: %w", err)
	}

	// ── 2. Decomisos (una vez por lote) ───────────────────────────────────────
	if sess.decomisos != nil {
		if err := uc.writer.FillDecomisos(ctx, sess.decomisos); err != nil {
			return fmt.Errorf("process: %w", err)
		}
	}

	// ── 3. Archivos por cliente ───────────────────────────────────────────────
	idx := dispatch.NewIndex(l)
	for _, client := range sess.clients {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := uc.processClient(ctx, sess, idx, batch, client); err != nil {
			return err
		}
	}
	if err := sess.advance(StagePerClientApproved); err != nil {
		return err
	}

	// ── 4. Consecutivos ───────────────────────────────────────────────────────
	consec, err := uc.writer.ExportConsecutivos(ctx)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	if err := uc.save(sess, batch, ConsecutivosFile, consec); err != nil {
		return err
	}

	// ── 5. Resumen de decomisos ───────────────────────────────────────────────
	if !sess.decomisos.Empty() && uc.renderer != nil {
		doc, err := uc.renderer.RenderDecomisos(batch, sess.decomisos)
		if err != nil {
			return fmt.Errorf("process: resumen de decomisos: %w", err)
		}
		name := fmt.Sprintf("decomisos_%s.pdf", batch)
		path, err := uc.files.Save(batch, name, doc)
		if err != nil {
			return fmt.Errorf("process: guardar %s: %w", name, err)
		}
		sess.files = append(sess.files, path)
		sess.reportPath = path
	}

	// ── 6. Copia en Drive (opcional) ──────────────────────────────────────────
	uc.upload(ctx, sess)

	uc.log.Info().Str("lote", batch).Int("archivos", len(sess.files)).Msg("lote procesado")
	return sess.advance(StageDownloadable)
}

func (uc *ProcessUseCase) processClient(ctx context.Context, sess *Session, idx *dispatch.Index, batch, client string) error {
	log := uc.log.With().Str("lote", batch).Str("cliente", client).Logger()

	n, err := uc.writer.FillDespacho(ctx, sess.lote, sess.individuals, client, idx)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	if err := uc.writer.FillLiquidacion(ctx, sess.lote, client, idx); err != nil {
		return fmt.Errorf("process: %w", err)
	}

	name := FormatClient(client)

	xlsx, err := uc.writer.ExportTemplate(ctx, mimeXLSX)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	if err := uc.save(sess, batch, fmt.Sprintf("%s-%s.xlsx", batch, name), xlsx); err != nil {
		return err
	}

	pdf, err := uc.writer.ExportTemplate(ctx, mimePDF)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	if len(uc.cfg.PDFPages) > 0 {
		if pdf, err = uc.pages.KeepPages(pdf, uc.cfg.PDFPages); err != nil {
			return fmt.Errorf("process: páginas del pdf de %q: %w", client, err)
		}
	}
	if err := uc.save(sess, batch, fmt.Sprintf("%s_%s_.pdf", batch, name), pdf); err != nil {
		return err
	}

	row, err := uc.writer.CopyConsecutivoRow(ctx, uc.cfg.ConsecRow)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	log.Info().Int("individuos", n).Int("fila_consecutivo", row).Msg("cliente procesado")
	return nil
}

func (uc *ProcessUseCase) save(sess *Session, batch, name string, data []byte) error {
	path, err := uc.files.Save(batch, name, data)
	if err != nil {
		return fmt.Errorf("process: guardar %s: %w", name, err)
	}
	sess.files = append(sess.files, path)
	return nil
}

// upload sube los xlsx generados. Un fallo no invalida el proceso: los archivos ya están
// en la carpeta local.
func (uc *ProcessUseCase) upload(ctx context.Context, sess *Session) {
	if uc.uploader == nil {
		return
	}
	var errs []error
	for _, path := range sess.files {
		if !strings.HasSuffix(path, ".xlsx") {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		id, err := uc.uploader.Upload(ctx, filepath.Base(path), mimeXLSX, data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		uc.log.Info().Str("archivo", filepath.Base(path)).Str("drive_id", id).Msg("archivo subido a Drive")
	}
	if err := errors.Join(errs...); err != nil {
		uc.log.Warn().Err(err).Msg("algunos archivos no se subieron a Drive")
	}
}

// FormatClient nombre de cliente apto para nombre de archivo.
func FormatClient(client string) string {
	return strings.NewReplacer(" ", "_", "/", "_").Replace(client)
}
