// Package decomiso extrae las tablas de decomisos del reporte de despacho de INFOCGAN.
//
// El reporte no es una tabla limpia: cada hoja trae títulos, secciones y bloques de datos que
// empiezan con una fila cuyo primer valor es "Individuo". Las columnas se leen por posición:
//
//	cantidades: Individuo | Órgano | Cantidad | Unidad
//	motivos:    Individuo | Órgano | Patología | Decomiso total
//
// Si la plantilla del reporte cambia el orden de las columnas hay que actualizar este contrato;
// ValidateHeader avisa cuando el encabezado no coincide.
package decomiso

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jeronimo114/comcer2/internal/domain/entity"
	"github.com/jeronimo114/comcer2/pkg/textnorm"
)

const (
	// SheetCantidades y SheetMotivos son los fragmentos que identifican cada hoja.
	SheetCantidades = "cantidades"
	SheetMotivos    = "motivos"

	headerMarker = "individuo"
	// una fila de sección puede traer como mucho un valor más en las columnas 2 a 5
	sectionLookahead = 4
)

var (
	cantidadesHeader = []string{"individuo", "organo", "cantidad", "unidad"}
	motivosHeader    = []string{"individuo", "organo", "patologia", "decomiso"}
	totalFlags       = map[string]bool{"si": true, "s": true, "x": true, "total": true, "true": true, "1": true}
)

// Sheet filas de una hoja tal como las entrega el lector de Excel.
type Sheet struct {
	Name string
	Rows [][]string
}

// Result tablas extraídas y advertencias no fatales (hoja ausente, encabezado distinto).
type Result struct {
	Decomisos entity.Decomisos
	Warnings  []string
}

// Extract busca las hojas de cantidades y motivos y extrae sus filas.
// La ausencia de una hoja no es un error: la tabla queda vacía y se agrega una advertencia.
func Extract(sheets []Sheet) Result {
	res := Result{Decomisos: entity.Decomisos{
		Cantidades: []entity.DecomisoCantidad{},
		Motivos:    []entity.DecomisoMotivo{},
	}}

	if s, ok := FindSheet(sheets, SheetCantidades); ok {
		rows, warns := ParseCantidades(s.Rows)
		res.Decomisos.Cantidades = rows
		res.Warnings = append(res.Warnings, prefixed(s.Name, warns)...)
	} else {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no se encontró una hoja de %q", SheetCantidades))
	}

	if s, ok := FindSheet(sheets, SheetMotivos); ok {
		rows, warns := ParseMotivos(s.Rows)
		res.Decomisos.Motivos = rows
		res.Warnings = append(res.Warnings, prefixed(s.Name, warns)...)
	} else {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no se encontró una hoja de %q", SheetMotivos))
	}
	return res
}

// FindSheet primera hoja cuyo nombre normalizado contiene fragment.
func FindSheet(sheets []Sheet, fragment string) (Sheet, bool) {
	for _, s := range sheets {
		if strings.Contains(textnorm.Fold(s.Name), fragment) {
			return s, true
		}
	}
	return Sheet{}, false
}

// ParseCantidades recorre la hoja de cantidades. Las filas de sección (texto en mayúsculas
// solo en la primera columna) etiquetan todas las filas siguientes hasta la próxima sección.
func ParseCantidades(rows [][]string) ([]entity.DecomisoCantidad, []string) {
	out := []entity.DecomisoCantidad{}
	var warns []string
	section := ""
	inBlock := false

	for i, row := range rows {
		if isEmptyRow(row) {
			inBlock = false
			continue
		}
		first := cell(row, 0)
		if textnorm.Fold(first) == headerMarker {
			inBlock = true
			if w := ValidateHeader(row, cantidadesHeader); w != "" {
				warns = append(warns, fmt.Sprintf("fila %d: %s", i+1, w))
			}
			continue
		}
		if isSectionRow(row) {
			section = strings.TrimSpace(first)
			continue
		}
		if !inBlock {
			continue
		}
		out = append(out, entity.DecomisoCantidad{
			Individuo: first,
			Organo:    cell(row, 1),
			Cantidad:  cell(row, 2),
			Unidad:    cell(row, 3),
			Seccion:   section,
		})
	}
	return out, warns
}

// ParseMotivos recorre la hoja de motivos (sin secciones).
func ParseMotivos(rows [][]string) ([]entity.DecomisoMotivo, []string) {
	out := []entity.DecomisoMotivo{}
	var warns []string
	inBlock := false

	for i, row := range rows {
		if isEmptyRow(row) {
			inBlock = false
			continue
		}
		if textnorm.Fold(cell(row, 0)) == headerMarker {
			inBlock = true
			if w := ValidateHeader(row, motivosHeader); w != "" {
				warns = append(warns, fmt.Sprintf("fila %d: %s", i+1, w))
			}
			continue
		}
		if !inBlock {
			continue
		}
		out = append(out, entity.DecomisoMotivo{
			Individuo:     cell(row, 0),
			Organo:        cell(row, 1),
			Patologia:     cell(row, 2),
			DecomisoTotal: IsTotal(cell(row, 3)),
		})
	}
	return out, warns
}

// ValidateHeader compara el encabezado con el contrato de columnas (prefijo normalizado).
// Devuelve "" si coincide.
func ValidateHeader(row []string, want []string) string {
	var diffs []string
	for i, w := range want {
		got := textnorm.Fold(cell(row, i))
		if !strings.HasPrefix(got, w) {
			diffs = append(diffs, fmt.Sprintf("columna %d es %q, se esperaba %q", i+1, cell(row, i), w))
		}
	}
	if len(diffs) == 0 {
		return ""
	}
	return "encabezado inesperado: " + strings.Join(diffs, "; ")
}

// IsTotal interpreta la marca de decomiso total ("SI", "X", "Total"...).
func IsTotal(v string) bool {
	return totalFlags[textnorm.Fold(v)]
}

func isSectionRow(row []string) bool {
	first := strings.TrimSpace(cell(row, 0))
	if utf8.RuneCountInString(first) < 3 || !textnorm.IsUpper(first) {
		return false
	}
	populated := 0
	for i := 1; i <= sectionLookahead; i++ {
		if cell(row, i) != "" {
			populated++
		}
	}
	return populated <= 1
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func prefixed(sheet string, warns []string) []string {
	out := make([]string, 0, len(warns))
	for _, w := range warns {
		out = append(out, fmt.Sprintf("hoja %q, %s", sheet, w))
	}
	return out
}
