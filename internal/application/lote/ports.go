package lote

import (
	"context"
	"sync"

	"github.com/jeronimo114/comcer2/internal/domain/dispatch"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

// CGANClient puerto hacia la API INFOCGAN (implementado por infrastructure/cgan).
type CGANClient interface {
	EnsureSession(ctx context.Context) error
	Batches(ctx context.Context) (map[string]string, error)
	// ResolveBatch traduce el código del lote a su id interno; domain.ErrNotFound si no está
	// en la ventana de búsqueda.
	ResolveBatch(ctx context.Context, code string) (string, error)
	LoteDetail(ctx context.Context, id string) (*entity.Lote, error)
	LoteIndividuals(ctx context.Context, id string) ([]entity.Individual, error)
	DispatchSummaryURL(ctx context.Context, id string) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// DecomisosParser extrae los decomisos del Excel de resumen de despacho.
type DecomisosParser interface {
	Parse(data []byte) (*entity.Decomisos, error)
}

// ReportWriter escritura y exportación de la plantilla (implementado por report.Writer).
// La plantilla es compartida: Lock/Unlock envuelven cada secuencia que la llena y exporta.
type ReportWriter interface {
	sync.Locker
	FillInfo(ctx context.Context, l *entity.Lote) ([]string, error)
	FillDespacho(ctx context.Context, l *entity.Lote, individuals []entity.Individual, client string, idx *dispatch.Index) (int, error)
	FillLiquidacion(ctx context.Context, l *entity.Lote, client string, idx *dispatch.Index) error
	FillDecomisos(ctx context.Context, d *entity.Decomisos) error
	ExportTemplate(ctx context.Context, mimeType string) ([]byte, error)
	ExportConsecutivos(ctx context.Context) ([]byte, error)
	CopyConsecutivoRow(ctx context.Context, row int) (int, error)
}

// FileStore carpeta de descargas por lote.
type FileStore interface {
	// Reset vacía (o crea) la carpeta del lote.
	Reset(batch string) error
	// Save escribe el archivo y devuelve su ruta.
	Save(batch, name string, data []byte) (string, error)
	// Zip empaqueta la carpeta del lote y devuelve la ruta del zip.
	Zip(batch string) (string, error)
}

// PageExtractor conserva solo algunas páginas (base 1) de un PDF.
type PageExtractor interface {
	KeepPages(pdf []byte, pages []string) ([]byte, error)
}

// DecomisosRenderer genera el PDF resumen de decomisos del lote.
type DecomisosRenderer interface {
	RenderDecomisos(batch string, d *entity.Decomisos) ([]byte, error)
}

// Uploader sube un archivo generado a Drive. Opcional.
type Uploader interface {
	Upload(ctx context.Context, name, mimeType string, data []byte) (string, error)
}
