// Package gsheets implementa report.SpreadsheetGateway sobre las APIs de Google Sheets v4 y
// Drive v3, y la subida opcional de archivos a una carpeta de Drive.
package gsheets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jeronimo114/comcer2/internal/application/report"
	"github.com/jeronimo114/comcer2/internal/domain"
)

const (
	valueInputRaw  = "RAW"
	renderFormated = "FORMATTED_VALUE"
	maxExportBody  = 64 << 20
)

// Gateway cliente de Sheets + Drive autenticado con una cuenta de servicio.
type Gateway struct {
	sheets *sheets.Service
	drive  *drive.Service
	log    zerolog.Logger
}

// New lee el JSON de la cuenta de servicio y construye ambos servicios.
func New(ctx context.Context, credentialsFile string, log zerolog.Logger) (*Gateway, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("gsheets: leer credenciales %s: %w", credentialsFile, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("gsheets: credenciales inválidas: %w", err)
	}
	return NewWithOptions(ctx, log, option.WithCredentials(creds))
}

// NewWithOptions construye los servicios con opciones explícitas (endpoint, cliente HTTP).
func NewWithOptions(ctx context.Context, log zerolog.Logger, opts ...option.ClientOption) (*Gateway, error) {
	sh, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gsheets: servicio de Sheets: %w", err)
	}
	dr, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gsheets: servicio de Drive: %w", err)
	}
	return NewFromServices(sh, dr, log), nil
}

// NewFromServices usa servicios ya construidos.
func NewFromServices(sh *sheets.Service, dr *drive.Service, log zerolog.Logger) *Gateway {
	return &Gateway{sheets: sh, drive: dr, log: log}
}

var _ report.SpreadsheetGateway = (*Gateway)(nil)

// SheetTitles títulos de las pestañas en orden.
func (g *Gateway) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	ss, err := g.sheets.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, g.wrap("leer hojas", spreadsheetID, err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// BatchUpdate escribe todos los rangos con una sola llamada.
func (g *Gateway) BatchUpdate(ctx context.Context, spreadsheetID string, data []report.ValueRange) error {
	if len(data) == 0 {
		return nil
	}
	req := &sheets.BatchUpdateValuesRequest{ValueInputOption: valueInputRaw}
	for _, vr := range data {
		req.Data = append(req.Data, &sheets.ValueRange{Range: vr.Range, Values: vr.Values})
	}
	resp, err := g.sheets.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return g.wrap("actualizar valores", spreadsheetID, err)
	}
	g.log.Debug().
		Int("rangos", len(data)).
		Int64("celdas", resp.TotalUpdatedCells).
		Msg("valores actualizados")
	return nil
}

// BatchClear limpia los rangos.
func (g *Gateway) BatchClear(ctx context.Context, spreadsheetID string, ranges []string) error {
	_, err := g.sheets.Spreadsheets.Values.BatchClear(spreadsheetID, &sheets.BatchClearValuesRequest{Ranges: ranges}).
		Context(ctx).
		Do()
	if err != nil {
		return g.wrap("limpiar rangos", spreadsheetID, err)
	}
	return nil
}

// Values lee un rango con los valores tal como se ven en la hoja.
func (g *Gateway) Values(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	vr, err := g.sheets.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption(renderFormated).
		Context(ctx).
		Do()
	if err != nil {
		return nil, g.wrap("leer "+rng, spreadsheetID, err)
	}
	return vr.Values, nil
}

// Append escribe la fila exactamente en el rango indicado (la fila libre la calcula el
// llamador).
func (g *Gateway) Append(ctx context.Context, spreadsheetID, rng string, row []any) error {
	_, err := g.sheets.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return g.wrap("escribir "+rng, spreadsheetID, err)
	}
	return nil
}

// Export descarga la hoja de cálculo convertida por Drive (xlsx o pdf).
func (g *Gateway) Export(ctx context.Context, spreadsheetID, mimeType string) ([]byte, error) {
	resp, err := g.drive.Files.Export(spreadsheetID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, g.wrap("exportar", spreadsheetID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExportBody))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("gsheets: leer exportación: %w: %v", domain.ErrTransport, err)
	}
	g.log.Info().Str("formato", mimeType).Int("bytes", len(data)).Msg("hoja exportada")
	return data, nil
}

// Uploader sube archivos a una carpeta de Drive.
type Uploader struct {
	drive    *drive.Service
	folderID string
	log      zerolog.Logger
}

// NewUploader reutiliza el servicio de Drive del gateway.
func (g *Gateway) NewUploader(folderID string) *Uploader {
	return &Uploader{drive: g.drive, folderID: folderID, log: g.log}
}

// Upload crea el archivo en la carpeta y devuelve su id.
func (u *Uploader) Upload(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	f := &drive.File{Name: name, MimeType: mimeType}
	if u.folderID != "" {
		f.Parents = []string{u.folderID}
	}
	created, err := u.drive.Files.Create(f).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("gsheets: subir %s: %w", name, classify(err))
	}
	u.log.Info().Str("archivo", name).Str("id", created.Id).Msg("archivo subido")
	return created.Id, nil
}

func (g *Gateway) wrap(op, spreadsheetID string, err error) error {
	g.log.Error().Err(err).Str("spreadsheet", spreadsheetID).Msg("error de Google Sheets: " + op)
	return fmt.Errorf("gsheets: %s: %w", op, classify(err))
}

// classify traduce los errores de googleapi a los errores de dominio.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, gerr.Message)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", domain.ErrUnauthorized, gerr.Message)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, gerr.Message)
		}
		return fmt.Errorf("%w: HTTP %d %s", domain.ErrTransport, gerr.Code, gerr.Message)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrTransport, err)
}
