// Package reporttest ofrece una hoja de cálculo en memoria que implementa
// report.SpreadsheetGateway para los tests de la capa de aplicación.
package reporttest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/jeronimo114/comcer2/internal/application/report"
	"github.com/jeronimo114/comcer2/internal/domain"
)

type coord struct{ col, row int }

// Memory libro en memoria: id de hoja de cálculo -> pestaña -> celda.
type Memory struct {
	mu      sync.Mutex
	titles  map[string][]string
	cells   map[string]map[string]map[coord]any
	exports map[string][]byte

	// Calls registro de llamadas ("BatchUpdate", "BatchClear", ...) en orden.
	Calls []string
	// Fail hace fallar el método con ese nombre.
	Fail map[string]error
	// OnExport se llama al inicio de cada Export, sin el lock tomado (puede leer celdas).
	OnExport func(spreadsheetID, mimeType string)
}

// NewMemory crea un libro vacío.
func NewMemory() *Memory {
	return &Memory{
		titles:  make(map[string][]string),
		cells:   make(map[string]map[string]map[coord]any),
		exports: make(map[string][]byte),
		Fail:    make(map[string]error),
	}
}

// AddSpreadsheet registra una hoja de cálculo con sus pestañas en orden.
func (m *Memory) AddSpreadsheet(id string, titles ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.titles[id] = titles
	m.cells[id] = make(map[string]map[coord]any)
	for _, t := range titles {
		m.cells[id][t] = make(map[coord]any)
	}
}

// SetExport fija el contenido que devuelve Export para ese formato.
func (m *Memory) SetExport(id, mimeType string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports[id+"|"+mimeType] = data
}

// Set escribe una celda directamente (fixtures).
func (m *Memory) Set(id, title, addr string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, row, err := excelize.CellNameToCoordinates(addr)
	if err != nil {
		panic(err)
	}
	m.sheet(id, title)[coord{col, row}] = v
}

// Get lee una celda; nil si está vacía.
func (m *Memory) Get(id, title, addr string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, row, err := excelize.CellNameToCoordinates(addr)
	if err != nil {
		panic(err)
	}
	return m.sheet(id, title)[coord{col, row}]
}

// Row devuelve la fila completa hasta la última celda con valor.
func (m *Memory) Row(id, title string, row int) []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.row(m.sheet(id, title), row)
}

// Rows número de la última fila con algún valor.
func (m *Memory) Rows(id, title string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maxRow(m.sheet(id, title))
}

func (m *Memory) SheetTitles(_ context.Context, spreadsheetID string) ([]string, error) {
	if err := m.call("SheetTitles"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	titles, ok := m.titles[spreadsheetID]
	if !ok {
		return nil, fmt.Errorf("hoja de cálculo %s: %w", spreadsheetID, domain.ErrNotFound)
	}
	return append([]string(nil), titles...), nil
}

func (m *Memory) BatchUpdate(_ context.Context, spreadsheetID string, data []report.ValueRange) error {
	if err := m.call("BatchUpdate"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, vr := range data {
		title, from, _, err := parseRange(vr.Range)
		if err != nil {
			return err
		}
		sh := m.sheet(spreadsheetID, title)
		for i, r := range vr.Values {
			for j, v := range r {
				sh[coord{from.col + j, from.row + i}] = v
			}
		}
	}
	return nil
}

func (m *Memory) BatchClear(_ context.Context, spreadsheetID string, ranges []string) error {
	if err := m.call("BatchClear"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rng := range ranges {
		title, from, to, err := parseRange(rng)
		if err != nil {
			return err
		}
		sh := m.sheet(spreadsheetID, title)
		for c := range sh {
			if inside(c, from, to) {
				delete(sh, c)
			}
		}
	}
	return nil
}

func (m *Memory) Values(_ context.Context, spreadsheetID, rng string) ([][]any, error) {
	if err := m.call("Values"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	title, from, to, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	sh := m.sheet(spreadsheetID, title)
	last := to.row
	if last == 0 || last > maxRow(sh) {
		last = maxRow(sh)
	}
	first := from.row
	if first == 0 {
		first = 1
	}
	var out [][]any
	for r := first; r <= last; r++ {
		out = append(out, m.row(sh, r))
	}
	// Sheets omite las filas vacías del final
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *Memory) Append(_ context.Context, spreadsheetID, rng string, row []any) error {
	if err := m.call("Append"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	title, from, _, err := parseRange(rng)
	if err != nil {
		return err
	}
	sh := m.sheet(spreadsheetID, title)
	col := from.col
	if col == 0 {
		col = 1
	}
	for j, v := range row {
		sh[coord{col + j, from.row}] = v
	}
	return nil
}

func (m *Memory) Export(_ context.Context, spreadsheetID, mimeType string) ([]byte, error) {
	if err := m.call("Export"); err != nil {
		return nil, err
	}
	if m.OnExport != nil {
		m.OnExport(spreadsheetID, mimeType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if data, ok := m.exports[spreadsheetID+"|"+mimeType]; ok {
		return data, nil
	}
	return []byte(spreadsheetID + " " + mimeType), nil
}

func (m *Memory) call(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
	return m.Fail[name]
}

func (m *Memory) sheet(id, title string) map[coord]any {
	if m.cells[id] == nil {
		m.cells[id] = make(map[string]map[coord]any)
	}
	sh := m.cells[id][title]
	if sh == nil {
		sh = make(map[coord]any)
		m.cells[id][title] = sh
	}
	return sh
}

func (m *Memory) row(sh map[coord]any, row int) []any {
	last := 0
	for c := range sh {
		if c.row == row && c.col > last {
			last = c.col
		}
	}
	out := make([]any, last)
	for i := range out {
		if v, ok := sh[coord{i + 1, row}]; ok {
			out[i] = v
		} else {
			out[i] = ""
		}
	}
	return out
}

func maxRow(sh map[coord]any) int {
	last := 0
	for c := range sh {
		if c.row > last {
			last = c.row
		}
	}
	return last
}

// inside columna o fila 0 significa "sin límite" (rangos "A:ZZ" o "6:6").
func inside(c, from, to coord) bool {
	if from.col != 0 && (c.col < from.col || c.col > to.col) {
		return false
	}
	if from.row != 0 && (c.row < from.row || c.row > to.row) {
		return false
	}
	return true
}

func parseRange(a1 string) (title string, from, to coord, err error) {
	rng := a1
	if i := strings.LastIndex(a1, "!"); i >= 0 {
		title = strings.ReplaceAll(strings.Trim(a1[:i], "'"), "''", "'")
		rng = a1[i+1:]
	}
	start, end, found := strings.Cut(rng, ":")
	if !found {
		end = start
	}
	if from, err = parseRef(start); err != nil {
		return "", coord{}, coord{}, err
	}
	if to, err = parseRef(end); err != nil {
		return "", coord{}, coord{}, err
	}
	return title, from, to, nil
}

func parseRef(ref string) (coord, error) {
	letters := strings.TrimRight(ref, "0123456789")
	digits := ref[len(letters):]
	switch {
	case letters == "" && digits != "":
		var row int
		_, err := fmt.Sscanf(digits, "%d", &row)
		return coord{row: row}, err
	case digits == "":
		col, err := excelize.ColumnNameToNumber(letters)
		return coord{col: col}, err
	default:
		col, row, err := excelize.CellNameToCoordinates(ref)
		return coord{col, row}, err
	}
}
