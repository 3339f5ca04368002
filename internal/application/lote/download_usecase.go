package lote

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/domain"
)

// DownloadUseCase entrega los archivos generados de un lote.
type DownloadUseCase struct {
	writer ReportWriter
	files  FileStore
	log    zerolog.Logger
}

// NewDownloadUseCase construye el caso de uso.
func NewDownloadUseCase(writer ReportWriter, files FileStore, log zerolog.Logger) *DownloadUseCase {
	return &DownloadUseCase{writer: writer, files: files, log: log}
}

// Archive empaqueta la carpeta del lote. Devuelve la ruta del zip y el nombre con el que se
// descarga (lote_{batch}.zip).
func (uc *DownloadUseCase) Archive(batch string) (path, filename string, err error) {
	batch = strings.TrimSpace(batch)
	if batch == "" {
		return "", "", fmt.Errorf("%w: lote vacío", domain.ErrInvalidInput)
	}
	path, err = uc.files.Zip(batch)
	if err != nil {
		return "", "", fmt.Errorf("download: zip del lote %s: %w", batch, err)
	}
	uc.log.Info().Str("lote", batch).Str("zip", path).Msg("zip generado")
	return path, "lote_" + batch + ".zip", nil
}

// Consecutivos exporta de nuevo la hoja de seguimiento.
func (uc *DownloadUseCase) Consecutivos(ctx context.Context) ([]byte, string, error) {
	data, err := uc.writer.ExportConsecutivos(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("download: %w", err)
	}
	return data, ConsecutivosFile, nil
}

// Report ruta del PDF de decomisos generado para el lote de la sesión.
func (uc *DownloadUseCase) Report(sess *Session) (string, error) {
	snap := sess.Snapshot()
	if snap.Code == "" {
		return "", domain.ErrNoLoteSelected
	}
	if snap.ReportPath == "" {
		return "", fmt.Errorf("%w: el lote %s no tiene resumen de decomisos", domain.ErrNotFound, snap.Code)
	}
	return snap.ReportPath, nil
}
