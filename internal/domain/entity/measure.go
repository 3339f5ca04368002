package entity

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Measure valor numérico de la API (pesos, rendimientos). Acepta número, número entre
// comillas, null o texto libre; el texto no numérico se conserva tal cual para la hoja.
type Measure struct {
	Dec  decimal.NullDecimal
	Text string
}

// NewMeasure construye una medida válida.
func NewMeasure(f float64) Measure {
	return Measure{Dec: decimal.NewNullDecimal(decimal.NewFromFloat(f))}
}

// UnmarshalJSON implementa json.Unmarshaler.
func (m *Measure) UnmarshalJSON(b []byte) error {
	*m = Measure{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if d, err := decimal.NewFromString(s); err == nil {
			m.Dec = decimal.NewNullDecimal(d)
			return nil
		}
		m.Text = s
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	m.Dec = decimal.NewNullDecimal(d)
	return nil
}

// MarshalJSON conserva el número o el texto original.
func (m Measure) MarshalJSON() ([]byte, error) {
	if m.Dec.Valid {
		return []byte(m.Dec.Decimal.String()), nil
	}
	if m.Text != "" {
		return json.Marshal(m.Text)
	}
	return []byte("null"), nil
}

// Cell valor listo para la hoja: float64 si es numérico, el texto original, o "".
func (m Measure) Cell() any {
	if m.Dec.Valid {
		return m.Dec.Decimal.InexactFloat64()
	}
	return m.Text
}
