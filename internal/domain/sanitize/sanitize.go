// Package sanitize convierte los textos formateados que devuelve una hoja de cálculo
// ("$ 17.361.271", "82,7%", "2119,9") en números antes de copiarlos a otra hoja.
//
// Las reglas se evalúan en orden y gana la primera que aplique:
//
//  1. nil -> ""; números -> sin cambios
//  2. fecha-hora ("2025-07-22 09:49:08") y hora ("1:01:15") -> texto sin cambios
//  3. moneda ("$ 17.361.271") -> 17361271
//  4. porcentaje ("82,7%") -> 82.7/100 en float64
//  5. decimal con coma ("2119,9") -> 2119.9
//  6. dígitos con puntos de miles ("15.025") -> 15025
//  7. cualquier otra cosa -> texto sin cambios
package sanitize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Value aplica la cadena de reglas. El resultado es float64, int/float de entrada o string.
func Value(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case int, int32, int64, float32, float64:
		return x
	case decimal.Decimal:
		return x.InexactFloat64()
	case string:
		return String(x)
	default:
		return v
	}
}

// Row aplica Value a cada celda.
func Row(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = Value(v)
	}
	return out
}

// String aplica las reglas a un texto de celda.
func String(raw string) any {
	value := strings.TrimLeft(strings.TrimSpace(raw), "'")
	if value == "" {
		return ""
	}

	if isDateTime(value) || strings.Count(value, ":") == 2 {
		return value
	}

	if strings.HasPrefix(value, "$") {
		cleaned := strings.NewReplacer("$", "", ".", "", ",", "").Replace(value)
		if f, ok := parse(cleaned); ok {
			return f
		}
		return value
	}

	if strings.HasSuffix(value, "%") {
		cleaned := strings.ReplaceAll(strings.TrimRight(value, "%"), ",", ".")
		if f, ok := parse(cleaned); ok {
			return f / 100
		}
		return value
	}

	if strings.Contains(value, ",") {
		if f, ok := parse(strings.ReplaceAll(value, ",", ".")); ok {
			return f
		}
		return value
	}

	if cleaned := strings.ReplaceAll(value, ".", ""); isDigits(cleaned) {
		if f, ok := parse(cleaned); ok {
			return f
		}
	}

	return value
}

func isDateTime(s string) bool {
	return len(strings.Split(s, "-")) == 3 && strings.Contains(s, " ")
}

func parse(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
