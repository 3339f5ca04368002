package decomiso_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeronimo114/comcer2/internal/domain/decomiso"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

func cantidadesRows() [][]string {
	return [][]string{
		{"Reporte de decomisos - Lote 12345-A"},
		{},
		{"VÍSCERAS ROJAS"},
		{"Individuo", "Órgano", "Cantidad", "Unidad"},
		{"1432-1", "Hígado", "1", "Und"},
		{"1432-2", "Pulmón", "2", "Und"},
		{"", "", "", ""},
		{"VÍSCERAS BLANCAS", "", "", "", "Total: 3"},
		{"INDIVIDUO", "ORGANO", "CANTIDAD", "UNIDAD"},
		{"1432-3", "Intestino", "0,5", "Kg"},
	}
}

func TestParseCantidades_SeccionesYBloques(t *testing.T) {
	got, warns := decomiso.ParseCantidades(cantidadesRows())

	assert.Empty(t, warns)
	assert.Equal(t, []entity.DecomisoCantidad{
		{Individuo: "1432-1", Organo: "Hígado", Cantidad: "1", Unidad: "Und", Seccion: "VÍSCERAS ROJAS"},
		{Individuo: "1432-2", Organo: "Pulmón", Cantidad: "2", Unidad: "Und", Seccion: "VÍSCERAS ROJAS"},
		{Individuo: "1432-3", Organo: "Intestino", Cantidad: "0,5", Unidad: "Kg", Seccion: "VÍSCERAS BLANCAS"},
	}, got)
}

// Encabezado "Individuo" seguido de k filas y una fila vacía produce exactamente k registros.
func TestParseCantidades_KFilasHastaVacia(t *testing.T) {
	for k := 0; k <= 5; k++ {
		rows := [][]string{{"Individuo", "Órgano", "Cantidad", "Unidad"}}
		for i := 0; i < k; i++ {
			rows = append(rows, []string{"ind", "org", "1", "Und"})
		}
		rows = append(rows, []string{}, []string{"fuera", "del", "bloque", "x"})

		got, _ := decomiso.ParseCantidades(rows)
		assert.Len(t, got, k)
	}
}

func TestParseCantidades_FilasAntesDelEncabezadoSeIgnoran(t *testing.T) {
	rows := [][]string{
		{"Planta de beneficio", "Lote", "12345-A"},
		{"Individuo", "Órgano", "Cantidad", "Unidad"},
		{"7", "Riñón", "2", "Und"},
	}
	got, _ := decomiso.ParseCantidades(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Seccion, "sin fila de sección previa")
}

func TestParseCantidades_EncabezadoDistintoAdvierte(t *testing.T) {
	rows := [][]string{
		{"Individuo", "Cantidad", "Órgano", "Unidad"},
		{"7", "2", "Riñón", "Und"},
	}
	got, warns := decomiso.ParseCantidades(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Organo, "la lectura sigue siendo posicional")
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "encabezado inesperado")
}

func TestParseMotivos(t *testing.T) {
	rows := [][]string{
		{"MOTIVOS DE DECOMISO"},
		{"Individuo", "Órgano", "Patología", "Decomiso Total"},
		{"1432-1", "Hígado", "Fasciola hepática", "NO"},
		{"1432-4", "Canal", "Tuberculosis", "SI"},
		{"1432-5", "Pulmón", "Neumonía"},
		{},
		{"ignorada", "x", "y", "SI"},
	}
	got, warns := decomiso.ParseMotivos(rows)

	assert.Empty(t, warns)
	assert.Equal(t, []entity.DecomisoMotivo{
		{Individuo: "1432-1", Organo: "Hígado", Patologia: "Fasciola hepática", DecomisoTotal: false},
		{Individuo: "1432-4", Organo: "Canal", Patologia: "Tuberculosis", DecomisoTotal: true},
		{Individuo: "1432-5", Organo: "Pulmón", Patologia: "Neumonía", DecomisoTotal: false},
	}, got)
}

func TestExtract_BuscaHojasPorNombreNormalizado(t *testing.T) {
	sheets := []decomiso.Sheet{
		{Name: "Resumen"},
		{Name: "Motivos Decomiso", Rows: [][]string{
			{"Individuo", "Órgano", "Patología", "Decomiso total"},
			{"1", "Canal", "Ictericia", "x"},
		}},
		{Name: "CANTIDADES DECOMISADAS", Rows: cantidadesRows()},
	}
	res := decomiso.Extract(sheets)

	assert.Len(t, res.Decomisos.Cantidades, 3)
	require.Len(t, res.Decomisos.Motivos, 1)
	assert.True(t, res.Decomisos.Motivos[0].DecomisoTotal)
	assert.Empty(t, res.Warnings)
}

func TestExtract_SinHojasDevuelveListasVacias(t *testing.T) {
	res := decomiso.Extract([]decomiso.Sheet{{Name: "Hoja1", Rows: [][]string{{"x"}}}})

	assert.NotNil(t, res.Decomisos.Cantidades)
	assert.NotNil(t, res.Decomisos.Motivos)
	assert.Empty(t, res.Decomisos.Cantidades)
	assert.Empty(t, res.Decomisos.Motivos)
	assert.Len(t, res.Warnings, 2)
}

func TestIsTotal(t *testing.T) {
	for _, v := range []string{"SI", "Sí", "x", "X", "Total", "1", "true"} {
		assert.True(t, decomiso.IsTotal(v), v)
	}
	for _, v := range []string{"", "NO", "parcial", "0"} {
		assert.False(t, decomiso.IsTotal(v), v)
	}
}
