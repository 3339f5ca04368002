// Package textnorm normaliza textos de hojas de cálculo para compararlos sin importar tildes,
// mayúsculas ni espacios repetidos ("Cantidades Decomisadas", "CANTIDADES  DECOMISADAS").
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents elimina las marcas diacríticas conservando mayúsculas y minúsculas.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold quita tildes, pasa a minúsculas y colapsa espacios.
func Fold(s string) string {
	s = cases.Fold().String(StripAccents(s))
	return strings.Join(strings.Fields(s), " ")
}

// IsUpper indica si s tiene al menos una letra y ninguna letra minúscula.
func IsUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
