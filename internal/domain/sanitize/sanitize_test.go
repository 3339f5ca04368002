package sanitize_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jeronimo114/comcer2/internal/domain/sanitize"
)

func TestValue_NumerosSinCambios(t *testing.T) {
	for _, f := range []float64{0, 1.5, -3.25, 17361271, 0.827} {
		assert.Equal(t, f, sanitize.Value(f))
		// Idempotencia: sanear dos veces no cambia el resultado.
		assert.Equal(t, f, sanitize.Value(sanitize.Value(f)))
	}
	assert.Equal(t, 42, sanitize.Value(42))
	assert.Equal(t, 12.5, sanitize.Value(decimal.RequireFromString("12.5")))
	assert.Equal(t, "", sanitize.Value(nil))
}

func TestString_Moneda(t *testing.T) {
	cases := map[string]float64{
		"$ 17.361.271": 17361271,
		"$17.361.271":  17361271,
		"$ 1.234,56":   123456,
		"$ 0":          0,
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitize.String(in), "String(%q)", in)
	}
	assert.Equal(t, "$ n/a", sanitize.String("$ n/a"), "moneda ilegible queda como texto")
}

func TestString_Porcentaje(t *testing.T) {
	n := 82.7
	assert.Equal(t, n/100, sanitize.String("82,7%"), "división en float64, no decimal exacto")
	assert.InDelta(t, 0.827, sanitize.String("82.7%"), 1e-12)
	assert.InDelta(t, 1.0, sanitize.String("100%"), 1e-12)
	assert.Equal(t, "abc%", sanitize.String("abc%"))
}

func TestString_DecimalConComa(t *testing.T) {
	assert.Equal(t, 2119.9, sanitize.String("2119,9"))
	assert.Equal(t, 124.7, sanitize.String("124,7"))
	// "1.234,5" -> "1.234.5" no es un número: se conserva el texto.
	assert.Equal(t, "1.234,5", sanitize.String("1.234,5"))
}

func TestString_EnterosYMiles(t *testing.T) {
	assert.Equal(t, 15025.0, sanitize.String("15025"))
	assert.Equal(t, 1252.0, sanitize.String("1252"))
	assert.Equal(t, 15025.0, sanitize.String("15.025"))
	assert.Equal(t, 1234567.0, sanitize.String("1.234.567"))
}

func TestString_FechasYHorasSinCambios(t *testing.T) {
	assert.Equal(t, "2025-07-22 09:49:08", sanitize.String("2025-07-22 09:49:08"))
	assert.Equal(t, "1:01:15", sanitize.String("1:01:15"))
	assert.Equal(t, "2025-07-22", sanitize.String("2025-07-22"), "fecha sin hora cae al texto")
}

func TestString_TextoYVacios(t *testing.T) {
	assert.Equal(t, "", sanitize.String(""))
	assert.Equal(t, "", sanitize.String("   "))
	assert.Equal(t, "", sanitize.String("'"))
	assert.Equal(t, 15.0, sanitize.String("'15"), "el apóstrofo inicial de Sheets se descarta")
	assert.Equal(t, "CARNES DEL NORTE", sanitize.String(" CARNES DEL NORTE "))
	assert.Equal(t, "ABC-123", sanitize.String("ABC-123"))
}

func TestRow(t *testing.T) {
	got := sanitize.Row([]any{"1432", "$ 2.000", "50%", nil, "Lote"})
	assert.Equal(t, []any{1432.0, 2000.0, 0.5, "", "Lote"}, got)
}
