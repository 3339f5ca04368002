package http

import (
	"context"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/application/lote"
)

// loteDownloader lo implementa *lote.DownloadUseCase.
type loteDownloader interface {
	Archive(batch string) (path, filename string, err error)
	Consecutivos(ctx context.Context) ([]byte, string, error)
	Report(sess *lote.Session) (string, error)
}

// DownloadHandler descargas de archivos generados. Los errores vuelven a la página de
// consulta con un mensaje flash.
type DownloadHandler struct {
	uc  loteDownloader
	log zerolog.Logger
}

// NewDownloadHandler construye el handler.
func NewDownloadHandler(uc loteDownloader, log zerolog.Logger) *DownloadHandler {
	return &DownloadHandler{uc: uc, log: log}
}

// Archive zip con todos los archivos del lote.
// GET /download/:lote
func (h *DownloadHandler) Archive(c *fiber.Ctx) error {
	path, name, err := h.uc.Archive(c.Params("lote"))
	if err != nil {
		h.log.Error().Err(err).Msg("error creando el zip")
		SetFlash(c, msgErrorZip+err.Error())
		return c.Redirect("/")
	}
	return c.Download(path, name)
}

// Consecutivos hoja de seguimiento recién exportada.
// GET /download/consecutivos
func (h *DownloadHandler) Consecutivos(c *fiber.Ctx) error {
	data, name, err := h.uc.Consecutivos(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("error exportando consecutivos")
		SetFlash(c, msgErrorDescarga+err.Error())
		return c.Redirect("/")
	}
	c.Attachment(name)
	return c.Send(data)
}

// Report resumen de decomisos del lote de la sesión.
// GET /download/report
func (h *DownloadHandler) Report(c *fiber.Ctx) error {
	path, err := h.uc.Report(GetSession(c))
	if err != nil {
		SetFlash(c, msgErrorDescarga+err.Error())
		return c.Redirect("/")
	}
	return c.Download(path, filepath.Base(path))
}
