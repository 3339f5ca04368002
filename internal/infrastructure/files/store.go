// Package files administra la carpeta de descargas: una subcarpeta por lote con los archivos
// generados y el zip que se entrega al usuario.
package files

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/domain"
)

// Store carpeta raíz de descargas.
type Store struct {
	root   string
	log    zerolog.Logger
	create func(name string) (io.WriteCloser, error)
}

// NewStore crea la carpeta raíz si no existe.
func NewStore(root string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("files: crear %s: %w", root, err)
	}
	return &Store{root: root, log: log, create: createFile}, nil
}

// Dir ruta de la carpeta del lote.
func (s *Store) Dir(batch string) (string, error) {
	if err := validName(batch); err != nil {
		return "", err
	}
	return filepath.Join(s.root, batch), nil
}

// Reset borra la carpeta del lote y la vuelve a crear vacía.
func (s *Store) Reset(batch string) error {
	dir, err := s.Dir(batch)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("files: limpiar %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("files: crear %s: %w", dir, err)
	}
	s.log.Debug().Str("dir", dir).Msg("carpeta del lote lista")
	return nil
}

// Save escribe un archivo en la carpeta del lote.
func (s *Store) Save(batch, name string, data []byte) (string, error) {
	dir, err := s.Dir(batch)
	if err != nil {
		return "", err
	}
	if err := validName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("files: crear %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("files: escribir %s: %w", name, err)
	}
	s.log.Info().Str("archivo", path).Int("bytes", len(data)).Msg("archivo guardado")
	return path, nil
}

// Zip empaqueta todo el contenido de la carpeta del lote en {root}/{batch}.zip con rutas
// relativas a la carpeta. domain.ErrNotFound si el lote no tiene carpeta.
func (s *Store) Zip(batch string) (string, error) {
	dir, err := s.Dir(batch)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("files: lote %s sin archivos: %w", batch, domain.ErrNotFound)
		}
		return "", fmt.Errorf("files: %w", err)
	}

	path := filepath.Join(s.root, batch+".zip")
	out, err := s.create(path)
	if err != nil {
		return "", fmt.Errorf("zip: crear %s: %w", path, err)
	}
	if err := writeZip(out, dir); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", err
	}
	// un zip a medio escribir no se entrega
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("zip: cerrar %s: %w", path, err)
	}
	s.log.Info().Str("archivo", path).Msg("zip del lote listo")
	return path, nil
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func writeZip(w io.Writer, dir string) error {
	zw := zip.NewWriter(w)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		return addFile(zw, p, filepath.ToSlash(rel))
	})
	if err != nil {
		return fmt.Errorf("zip: recorrer %s: %w", dir, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("zip: crear entrada %s: %w", name, err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return fmt.Errorf("zip: escribir %s: %w", name, err)
	}
	return nil
}

// validName rechaza nombres vacíos o que salgan de la carpeta de descargas.
func validName(name string) error {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: nombre de archivo %q", domain.ErrInvalidInput, name)
	}
	return nil
}
