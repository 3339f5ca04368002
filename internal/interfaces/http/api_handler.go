package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jeronimo114/comcer2/internal/application/dto"
	"github.com/jeronimo114/comcer2/internal/application/lote"
	"github.com/jeronimo114/comcer2/internal/domain"
)

// APIHandler endpoints JSON de consulta.
type APIHandler struct {
	query    loteQuerier
	sessions *lote.SessionRegistry
	service  string
}

// NewAPIHandler construye el handler.
func NewAPIHandler(query loteQuerier, sessions *lote.SessionRegistry, service string) *APIHandler {
	return &APIHandler{query: query, sessions: sessions, service: service}
}

// Batches lotes disponibles en INFOCGAN (código -> id interno).
// GET /api/lotes
func (h *APIHandler) Batches(c *fiber.Ctx) error {
	batches, err := h.query.Batches(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.BatchesResponse{Lotes: batches, Total: len(batches)})
}

// Session estado del lote en la sesión actual.
// GET /api/session
func (h *APIHandler) Session(c *fiber.Ctx) error {
	snap := GetSession(c).Snapshot()
	out := dto.SessionResponse{
		Stage:       string(snap.Stage),
		Lote:        snap.Code,
		LoteID:      snap.LoteID,
		Clients:     snap.Clients,
		Individuals: snap.Individuals,
		Files:       snap.Files,
	}
	if snap.Decomisos != nil {
		out.Decomisos = &dto.DecomisosCount{
			Cantidades: len(snap.Decomisos.Cantidades),
			Motivos:    len(snap.Decomisos.Motivos),
		}
	}
	if out.Clients == nil {
		out.Clients = []string{}
	}
	if out.Files == nil {
		out.Files = []string{}
	}
	return c.JSON(out)
}

// Health estado del servicio.
// GET /health
func (h *APIHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service, "sessions": h.sessions.Len()})
}

// errorJSON traduce los errores de dominio a HTTP.
func errorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_UNAUTHORIZED", Message: "INFOCGAN rechazó las credenciales"})
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrMalformedPayload):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
