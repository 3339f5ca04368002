package files_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeronimo114/comcer2/internal/domain"
	"github.com/jeronimo114/comcer2/internal/infrastructure/files"
)

func TestStore_ResetSaveZip(t *testing.T) {
	root := t.TempDir()
	s, err := files.NewStore(filepath.Join(root, "downloads"), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Reset("12345-A"))
	_, err = s.Save("12345-A", "viejo.xlsx", []byte("x"))
	require.NoError(t, err)

	// Reset deja la carpeta vacía
	require.NoError(t, s.Reset("12345-A"))
	_, err = s.Save("12345-A", "12345-A-Carnes.xlsx", []byte("xlsx"))
	require.NoError(t, err)
	_, err = s.Save("12345-A", "Consecutivos.xlsx", []byte("consec"))
	require.NoError(t, err)

	path, err := s.Zip("12345-A")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "downloads", "12345-A.zip"), path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"12345-A-Carnes.xlsx", "Consecutivos.xlsx"}, names)
}

func TestStore_ZipSinCarpeta(t *testing.T) {
	s, err := files.NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	_, err = s.Zip("77777-B")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_NombresInvalidos(t *testing.T) {
	root := t.TempDir()
	s, err := files.NewStore(root, zerolog.Nop())
	require.NoError(t, err)

	for _, bad := range []string{"", "..", "../etc", "a/b"} {
		_, err := s.Save("12345-A", bad, []byte("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
	assert.ErrorIs(t, s.Reset("../fuera"), domain.ErrInvalidInput)

	_, err = os.Stat(filepath.Join(root, "..", "fuera"))
	assert.True(t, os.IsNotExist(err))
}
