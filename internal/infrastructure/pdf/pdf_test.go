package pdf_test

import (
	"bytes"
	"fmt"
	"testing"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeronimo114/comcer2/internal/domain"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
	"github.com/jeronimo114/comcer2/internal/infrastructure/pdf"
)

// documento de n páginas, cada una con su número
func paginas(t *testing.T, n int) []byte {
	t.Helper()
	m := maroto.New()
	for i := 1; i <= n; i++ {
		m.AddPages(page.New().Add(text.NewRow(10, fmt.Sprintf("Página %d", i))))
	}
	doc, err := m.Generate()
	require.NoError(t, err)
	return doc.GetBytes()
}

func TestKeepPages(t *testing.T) {
	ex := pdf.NewPageExtractor(zerolog.Nop())
	src := paginas(t, 5)

	out, err := ex.KeepPages(src, []string{"4"})
	require.NoError(t, err)
	n, err := api.PageCount(bytes.NewReader(out), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	same, err := ex.KeepPages(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, same)
}

func TestKeepPages_FueraDeRango(t *testing.T) {
	ex := pdf.NewPageExtractor(zerolog.Nop())

	_, err := ex.KeepPages(paginas(t, 2), []string{"4"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ex.KeepPages([]byte("no es un pdf"), []string{"1"})
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestRenderDecomisos(t *testing.T) {
	r := pdf.NewDecomisosReport()
	doc, err := r.RenderDecomisos("12345-A", &entity.Decomisos{
		Cantidades: []entity.DecomisoCantidad{{Individuo: "1", Organo: "Hígado", Cantidad: "1", Unidad: "und", Seccion: "VISCERAS"}},
		Motivos:    []entity.DecomisoMotivo{{Individuo: "1", Organo: "Hígado", Patologia: "Abscesos", DecomisoTotal: true}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	empty, err := r.RenderDecomisos("12345-A", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
