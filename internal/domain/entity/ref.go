package entity

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Ref identificador que la API INFOCGAN envía a veces como número y a veces como texto
// (ids de lote, destinos, consecutivos). Se normaliza a texto.
type Ref string

// UnmarshalJSON acepta número, string o null.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Ref(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = Ref(n.String())
	return nil
}

// String implementa fmt.Stringer.
func (r Ref) String() string { return string(r) }

// Label par value/label de los catálogos de la API (cliente, propiedad, destino).
type Label struct {
	Value Ref    `json:"value"`
	Label string `json:"label"`
}
