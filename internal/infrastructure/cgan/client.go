// Package cgan es el cliente REST de INFOCGAN: login, búsqueda de lotes, detalle,
// individuos y el reporte de despacho en Excel.
package cgan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/domain"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
	pkgjwt "github.com/jeronimo114/comcer2/pkg/jwt"
)

const (
	dateLayout = "2006-01-02"
	// margen para renovar el token antes de que venza
	tokenSkew = time.Minute

	maxJSONBody     = 16 << 20
	maxDownloadBody = 64 << 20
)

// Config endpoints, credenciales y tiempos del cliente.
type Config struct {
	LoginURL        string
	APIURL          string
	FilesURL        string
	Username        string
	Password        string
	Specie          int
	WindowDays      int
	Timeout         time.Duration
	DownloadTimeout time.Duration
}

// Client cliente de la API INFOCGAN. Guarda el bearer token entre llamadas.
type Client struct {
	cfg            Config
	httpClient     *http.Client
	downloadClient *http.Client
	log            zerolog.Logger
	now            func() time.Time

	mu    sync.Mutex
	token string
}

// NewClient construye el cliente. La descarga del reporte usa su propio timeout (60 s por
// defecto) porque el archivo puede tardar en generarse.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = 60 * time.Second
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	if !strings.HasSuffix(cfg.APIURL, "/") {
		cfg.APIURL += "/"
	}
	return &Client{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		downloadClient: &http.Client{Timeout: cfg.DownloadTimeout},
		log:            log,
		now:            time.Now,
	}
}

// SetClock reemplaza el reloj (ventana de búsqueda y vencimiento del token).
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

// Token devuelve el bearer token actual ("" si no hay sesión).
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Login intercambia las credenciales por un bearer token.
func (c *Client) Login(ctx context.Context) error {
	c.log.Info().Msg("conectando con la API INFOCGAN")

	payload, err := json.Marshal(loginRequest{Username: c.cfg.Username, Password: c.cfg.Password})
	if err != nil {
		return fmt.Errorf("cgan: serializar login: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LoginURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("cgan: crear request de login: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out loginResponse
	status, err := c.doJSON(req, &out)
	if err != nil {
		if status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusBadRequest {
			if out.Message != "" {
				c.log.Error().Int("status", status).Msgf("%s (probablemente credenciales incorrectas)", out.Message)
			} else {
				c.log.Error().Int("status", status).Msg("login fallido")
			}
			return fmt.Errorf("cgan: login: %w", domain.ErrUnauthorized)
		}
		c.log.Error().Err(err).Msg("login fallido")
		return fmt.Errorf("cgan: login: %w", err)
	}
	if out.User.Token == "" {
		c.log.Error().Msg("el login no devolvió token")
		return fmt.Errorf("cgan: login sin token: %w", domain.ErrUnauthorized)
	}

	c.mu.Lock()
	c.token = out.User.Token
	c.mu.Unlock()
	c.log.Info().Msg("token obtenido")
	return nil
}

// EnsureSession inicia sesión si no hay token o si el token ya venció.
func (c *Client) EnsureSession(ctx context.Context) error {
	if !pkgjwt.Expired(c.Token(), c.now(), tokenSkew) {
		return nil
	}
	return c.Login(ctx)
}

// Batches lotes de la ventana móvil (por defecto 30 días): código de lote -> id interno.
// El usuario maneja el código ("2025-1432"); la API solo entiende el id.
func (c *Client) Batches(ctx context.Context) (map[string]string, error) {
	now := c.now()
	form := url.Values{}
	form.Set("startdate", now.AddDate(0, 0, -c.cfg.WindowDays).Format(dateLayout))
	form.Set("enddate", now.Format(dateLayout))
	form.Set("specie", strconv.Itoa(c.cfg.Specie))

	c.log.Info().Str("desde", form.Get("startdate")).Str("hasta", form.Get("enddate")).Msg("consultando lotes")
	req, err := c.newRequest(ctx, http.MethodPost, "batch/search", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out envelope[[]batchSummary]
	if _, err := c.doJSON(req, &out); err != nil {
		c.log.Error().Err(err).Msg("error consultando lotes")
		return nil, fmt.Errorf("cgan: buscar lotes: %w", err)
	}

	batches := make(map[string]string, len(out.Body))
	for _, b := range out.Body {
		batches[b.Batch] = b.ID.String()
	}
	c.log.Info().Int("lotes", len(batches)).Msg("lotes consultados")
	return batches, nil
}

// ResolveBatch traduce el código de lote a id interno.
func (c *Client) ResolveBatch(ctx context.Context, code string) (string, error) {
	batches, err := c.Batches(ctx)
	if err != nil {
		return "", err
	}
	id, ok := batches[strings.TrimSpace(code)]
	if !ok {
		c.log.Warn().Str("lote", code).Msg("lote inválido o fuera de la ventana de búsqueda")
		return "", fmt.Errorf("cgan: lote %q: %w", code, domain.ErrNotFound)
	}
	return id, nil
}

// LoteDetail GET batch/{id}.
func (c *Client) LoteDetail(ctx context.Context, id string) (*entity.Lote, error) {
	c.log.Info().Str("id", id).Msg("consultando lote")
	req, err := c.newRequest(ctx, http.MethodGet, "batch/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var out envelope[*entity.Lote]
	if _, err := c.doJSON(req, &out); err != nil {
		c.log.Error().Err(err).Str("id", id).Msg("error consultando lote")
		return nil, fmt.Errorf("cgan: detalle de lote %s: %w", id, err)
	}
	if out.Body == nil {
		return nil, fmt.Errorf("cgan: detalle de lote %s vacío: %w", id, domain.ErrMalformedPayload)
	}
	c.log.Info().Str("id", id).Str("lote", out.Body.Batch).Msg("lote consultado")
	return out.Body, nil
}

// LoteIndividuals GET monitoring/individuals/{id}.
func (c *Client) LoteIndividuals(ctx context.Context, id string) ([]entity.Individual, error) {
	c.log.Info().Str("id", id).Msg("consultando individuos")
	req, err := c.newRequest(ctx, http.MethodGet, "monitoring/individuals/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var out envelope[[]entity.Individual]
	if _, err := c.doJSON(req, &out); err != nil {
		c.log.Error().Err(err).Str("id", id).Msg("error consultando individuos")
		return nil, fmt.Errorf("cgan: individuos de lote %s: %w", id, err)
	}
	c.log.Info().Int("individuos", len(out.Body)).Msg("individuos consultados")
	return out.Body, nil
}

// DispatchSummaryURL GET summary/dispatch/{id}: URL del Excel con el resumen de despacho.
func (c *Client) DispatchSummaryURL(ctx context.Context, id string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "summary/dispatch/"+url.PathEscape(id), nil)
	if err != nil {
		return "", err
	}
	var out envelope[json.RawMessage]
	if _, err := c.doJSON(req, &out); err != nil {
		c.log.Error().Err(err).Str("id", id).Msg("error consultando resumen de despacho")
		return "", fmt.Errorf("cgan: resumen de despacho %s: %w", id, err)
	}
	ref, err := summaryPath(out.Body)
	if err != nil {
		return "", fmt.Errorf("cgan: resumen de despacho %s: %w", id, err)
	}
	return c.resolveFileURL(ref)
}

// Download descarga un archivo (fuera del espacio /api) con el timeout de descarga.
func (c *Client) Download(ctx context.Context, fileURL string) ([]byte, error) {
	c.log.Info().Str("url", fileURL).Msg("descargando archivo")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cgan: crear request de descarga: %w", err)
	}
	c.authorize(req)

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cgan: descarga: %w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("cgan: descarga HTTP %d: %w", resp.StatusCode, err)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBody))
	if err != nil {
		return nil, fmt.Errorf("cgan: leer descarga: %w: %v", domain.ErrTransport, err)
	}
	c.log.Info().Int("bytes", len(data)).Msg("archivo descargado")
	return data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("cgan: crear request %s: %w", path, err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) authorize(req *http.Request) {
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// doJSON ejecuta el request y decodifica la respuesta en out. Aun con status de error intenta
// decodificar el cuerpo para que el llamador lea el "message" del servidor.
func (c *Client) doJSON(req *http.Request, out any) (int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return 0, fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrTransport, ctxErr)
		}
		return 0, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: leer respuesta: %v", domain.ErrTransport, err)
	}

	if statusErr := statusError(resp.StatusCode); statusErr != nil {
		_ = json.Unmarshal(raw, out)
		return resp.StatusCode, fmt.Errorf("HTTP %d: %w", resp.StatusCode, statusErr)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return resp.StatusCode, nil
}

// statusError clasifica el status HTTP en un error de dominio (nil si es 2xx).
func statusError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrUnauthorized
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return domain.ErrTransport
	}
}

// summaryPath extrae la ruta del archivo: el body puede ser el texto de la ruta o un objeto.
func summaryPath(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("sin archivo: %w", domain.ErrNotFound)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s, nil
		}
		return "", fmt.Errorf("ruta vacía: %w", domain.ErrNotFound)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	for _, k := range summaryURLKeys {
		if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", fmt.Errorf("objeto sin ruta de archivo: %w", domain.ErrMalformedPayload)
}

func (c *Client) resolveFileURL(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("cgan: ruta de archivo %q: %w", ref, domain.ErrMalformedPayload)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	base, err := url.Parse(c.cfg.FilesURL)
	if err != nil {
		return "", fmt.Errorf("cgan: CGAN_FILES_URL inválida: %w", err)
	}
	return base.ResolveReference(u).String(), nil
}
