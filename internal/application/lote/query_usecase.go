// Package lote orquesta el flujo de un lote: consulta a INFOCGAN, llenado de la plantilla,
// generación de archivos por cliente y descargas.
package lote

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/domain"
)

// QueryUseCase selecciona un lote y carga sus datos en la sesión.
type QueryUseCase struct {
	client    CGANClient
	writer    ReportWriter
	decomisos *DecomisosFetcher
	log       zerolog.Logger
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(client CGANClient, writer ReportWriter, decomisos *DecomisosFetcher, log zerolog.Logger) *QueryUseCase {
	return &QueryUseCase{client: client, writer: writer, decomisos: decomisos, log: log}
}

// Query consulta el lote por su código, llena la hoja de información y deja la sesión en
// data_fetched. Si algo falla la sesión vuelve a idle.
//
// Retorna:
//   - domain.ErrInvalidInput  si el código está vacío.
//   - domain.ErrNotFound      si el lote no aparece en la búsqueda.
//   - domain.ErrUnauthorized / ErrTransport / ErrMalformedPayload según falle la API.
func (uc *QueryUseCase) Query(ctx context.Context, sess *Session, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: número de lote vacío", domain.ErrInvalidInput)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.reset()
	sess.code = code
	if err := sess.advance(StageLotSelected); err != nil {
		return err
	}

	if err := uc.load(ctx, sess); err != nil {
		uc.log.Error().Err(err).Str("lote", code).Msg("no se pudo cargar el lote")
		sess.reset()
		return err
	}
	return nil
}

func (uc *QueryUseCase) load(ctx context.Context, sess *Session) error {
	// ── 1. Sesión con INFOCGAN ────────────────────────────────────────────────
	if err := uc.client.EnsureSession(ctx); err != nil {
		return fmt.Errorf("query: login: %w", err)
	}

	// ── 2. Código -> id interno ───────────────────────────────────────────────
	id, err := uc.client.ResolveBatch(ctx, sess.code)
	if err != nil {
		return fmt.Errorf("query: buscar lote %s: %w", sess.code, err)
	}
	sess.loteID = id

	// ── 3. Detalle e individuos (ambos obligatorios) ──────────────────────────
	l, err := uc.client.LoteDetail(ctx, id)
	if err != nil {
		return fmt.Errorf("query: detalle del lote: %w", err)
	}
	individuals, err := uc.client.LoteIndividuals(ctx, id)
	if err != nil {
		return fmt.Errorf("query: individuos del lote: %w", err)
	}
	sess.lote = l
	sess.individuals = individuals

	// ── 4. Hoja de información ────────────────────────────────────────────────
	uc.writer.Lock()
	clients, err := uc.writer.FillInfo(ctx, l)
	uc.writer.Unlock()
	if err != nil {
		return fmt.Errorf("query: hoja de información: %w", err)
	}
	sess.clients = clients

	// ── 5. Decomisos (opcionales) ─────────────────────────────────────────────
	if uc.decomisos != nil {
		d, err := uc.decomisos.Fetch(ctx, id)
		if err != nil {
			uc.log.Warn().Err(err).Str("lote", sess.code).Msg("el lote sigue sin decomisos")
		} else {
			sess.decomisos = d
		}
	}

	uc.log.Info().
		Str("lote", sess.code).
		Str("lote_id", id).
		Int("individuos", len(individuals)).
		Strs("clientes", clients).
		Msg("lote cargado")
	return sess.advance(StageDataFetched)
}

// Batches códigos de lote disponibles en la ventana de búsqueda y su id interno.
func (uc *QueryUseCase) Batches(ctx context.Context) (map[string]string, error) {
	if err := uc.client.EnsureSession(ctx); err != nil {
		return nil, fmt.Errorf("query: login: %w", err)
	}
	batches, err := uc.client.Batches(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: lotes: %w", err)
	}
	return batches, nil
}
