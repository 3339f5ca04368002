package files

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDisco = errors.New("disco lleno")

// failingClose acepta la escritura pero falla al cerrar, como un disco que no pudo vaciar
// el buffer.
type failingClose struct{ bytes.Buffer }

func (*failingClose) Close() error { return errDisco }

func TestZip_ErrorAlCerrarNoEntregaElZip(t *testing.T) {
	s, err := NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	_, err = s.Save("12345-A", "a.xlsx", []byte("uno"))
	require.NoError(t, err)

	var created string
	s.create = func(name string) (io.WriteCloser, error) {
		created = name
		return &failingClose{}, nil
	}

	path, err := s.Zip("12345-A")
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisco)
	assert.Empty(t, path)
	assert.Equal(t, filepath.Join(s.root, "12345-A.zip"), created)
	_, statErr := os.Stat(created)
	assert.True(t, os.IsNotExist(statErr))
}
