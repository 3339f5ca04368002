package excel_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeronimo114/comcer2/internal/domain"
	"github.com/jeronimo114/comcer2/internal/infrastructure/excel"
)

// workbook arma un .xlsx en memoria con las hojas y filas indicadas.
func workbook(t *testing.T, sheets map[string][][]any, order ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cellRef, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cellRef, &values))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_ReporteCompleto(t *testing.T) {
	data := workbook(t, map[string][][]any{
		"Cantidades decomisadas": {
			{"VÍSCERAS ROJAS"},
			{"Individuo", "Órgano", "Cantidad", "Unidad"},
			{"1432-1", "Hígado", 1, "Und"},
			{"1432-2", "Pulmón", 2, "Und"},
			{},
			{"CANALES"},
			{"Individuo", "Órgano", "Cantidad", "Unidad"},
			{"1432-4", "Canal", 1, "Und"},
		},
		"Motivos": {
			{"Individuo", "Órgano", "Patología", "Decomiso total"},
			{"1432-4", "Canal", "Tuberculosis", "SI"},
		},
	}, "Cantidades decomisadas", "Motivos")

	got, err := excel.NewDecomisosParser(zerolog.Nop()).Parse(data)
	require.NoError(t, err)

	require.Len(t, got.Cantidades, 3)
	assert.Equal(t, "Hígado", got.Cantidades[0].Organo)
	assert.Equal(t, "1", got.Cantidades[0].Cantidad)
	assert.Equal(t, "VÍSCERAS ROJAS", got.Cantidades[1].Seccion)
	assert.Equal(t, "CANALES", got.Cantidades[2].Seccion)

	require.Len(t, got.Motivos, 1)
	assert.True(t, got.Motivos[0].DecomisoTotal)
}

func TestParse_SinHojasDeDecomisos(t *testing.T) {
	data := workbook(t, map[string][][]any{
		"Resumen": {{"Lote", "12345-A"}},
	}, "Resumen")

	got, err := excel.NewDecomisosParser(zerolog.Nop()).Parse(data)
	require.NoError(t, err)
	assert.Empty(t, got.Cantidades)
	assert.Empty(t, got.Motivos)
	assert.NotNil(t, got.Cantidades)
	assert.NotNil(t, got.Motivos)
}

func TestParse_ArchivoInvalido(t *testing.T) {
	_, err := excel.NewDecomisosParser(zerolog.Nop()).Parse([]byte("<html>sesión expirada</html>"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedPayload))
}
