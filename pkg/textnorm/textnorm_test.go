package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeronimo114/comcer2/pkg/textnorm"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Individuo":              "individuo",
		"  INDIVIDUO ":           "individuo",
		"Cantidades Decomisadas": "cantidades decomisadas",
		"MOTIVOS  DE   DECOMISO": "motivos de decomiso",
		"Órgano":                 "organo",
		"Patología":              "patologia",
		"Liquidación":            "liquidacion",
		"":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, textnorm.Fold(in), "Fold(%q)", in)
	}
}

func TestStripAccents_ConservaMayusculas(t *testing.T) {
	assert.Equal(t, "VISCERAS ROJAS", textnorm.StripAccents("VÍSCERAS ROJAS"))
}

func TestIsUpper(t *testing.T) {
	assert.True(t, textnorm.IsUpper("VÍSCERAS ROJAS"))
	assert.True(t, textnorm.IsUpper("CANAL 2"))
	assert.False(t, textnorm.IsUpper("Hígado"))
	assert.False(t, textnorm.IsUpper("123"), "sin letras no cuenta como mayúsculas")
	assert.False(t, textnorm.IsUpper(""))
}
