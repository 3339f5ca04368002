package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/application/dto"
	"github.com/jeronimo114/comcer2/internal/application/lote"
	"github.com/jeronimo114/comcer2/internal/domain"
)

// Mensajes que ve el usuario en la página de consulta.
const (
	msgLoteInvalido  = "Número de lote incorrecto o no disponible."
	msgSinConexion   = "Error de conexión con el servicio"
	msgSinLote       = "No hay lote seleccionado."
	msgErrorDescarga = "Error al descargar el archivo: "
	msgErrorZip      = "Error al comprimir los archivos: "
)

// loteQuerier lo implementa *lote.QueryUseCase.
type loteQuerier interface {
	Query(ctx context.Context, sess *lote.Session, code string) error
	Batches(ctx context.Context) (map[string]string, error)
}

// loteProcessor lo implementa *lote.ProcessUseCase.
type loteProcessor interface {
	Process(ctx context.Context, sess *lote.Session) error
}

// LoteHandler páginas del flujo: consulta, carga, proceso y resultado.
type LoteHandler struct {
	query   loteQuerier
	process loteProcessor
	log     zerolog.Logger
}

// NewLoteHandler construye el handler.
func NewLoteHandler(query loteQuerier, process loteProcessor, log zerolog.Logger) *LoteHandler {
	return &LoteHandler{query: query, process: process, log: log}
}

// Index formulario de consulta.
// GET /
func (h *LoteHandler) Index(c *fiber.Ctx) error {
	return render(c, "index.html", indexPage{Flash: PopFlash(c), Lote: GetSession(c).Code()})
}

// Submit consulta el lote y pasa a la página de carga.
// POST /
func (h *LoteHandler) Submit(c *fiber.Ctx) error {
	code := c.FormValue("lote")
	if err := h.query.Query(c.Context(), OpenSession(c), code); err != nil {
		msg := msgSinConexion
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			msg = msgLoteInvalido
		}
		h.log.Warn().Err(err).Str("lote", code).Msg("consulta rechazada")
		return render(c, "index.html", indexPage{Flash: msg, Lote: code})
	}
	return c.Redirect("/loading")
}

// Loading página que dispara el proceso.
// GET /loading
func (h *LoteHandler) Loading(c *fiber.Ctx) error {
	code := GetSession(c).Code()
	if code == "" {
		SetFlash(c, msgSinLote)
		return c.Redirect("/")
	}
	return render(c, "loading.html", lotePage{Lote: code})
}

// Process genera los archivos de todos los clientes.
// GET /process
func (h *LoteHandler) Process(c *fiber.Ctx) error {
	if err := h.process.Process(c.Context(), GetSession(c)); err != nil {
		msg := err.Error()
		if errors.Is(err, domain.ErrNoLoteSelected) {
			msg = msgSinLote
		}
		return c.JSON(dto.ProcessResponse{Success: false, Error: msg, Retryable: domain.IsRetryable(err)})
	}
	return c.JSON(dto.ProcessResponse{Success: true, Redirect: "/complete"})
}

// Complete resumen y enlaces de descarga.
// GET /complete
func (h *LoteHandler) Complete(c *fiber.Ctx) error {
	snap := GetSession(c).Snapshot()
	if snap.Code == "" {
		SetFlash(c, msgSinLote)
		return c.Redirect("/")
	}
	return render(c, "complete.html", lotePage{
		Lote:      snap.Code,
		Files:     snap.Files,
		HasReport: snap.ReportPath != "",
	})
}
