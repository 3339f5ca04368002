package lote_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeronimo114/comcer2/internal/domain"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

// fakeCGAN cliente INFOCGAN en memoria.
type fakeCGAN struct {
	batches     map[string]string
	lotes       map[string]*entity.Lote
	individuals map[string][]entity.Individual
	summary     map[string][]byte
	loginErr    error
	detailErr   error
	logins      int
}

func (f *fakeCGAN) EnsureSession(context.Context) error {
	f.logins++
	return f.loginErr
}

func (f *fakeCGAN) Batches(context.Context) (map[string]string, error) {
	return f.batches, nil
}

func (f *fakeCGAN) ResolveBatch(_ context.Context, code string) (string, error) {
	id, ok := f.batches[code]
	if !ok {
		return "", domain.ErrNotFound
	}
	return id, nil
}

func (f *fakeCGAN) LoteDetail(_ context.Context, id string) (*entity.Lote, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	l, ok := f.lotes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (f *fakeCGAN) LoteIndividuals(_ context.Context, id string) ([]entity.Individual, error) {
	return f.individuals[id], nil
}

func (f *fakeCGAN) DispatchSummaryURL(_ context.Context, id string) (string, error) {
	if _, ok := f.summary[id]; !ok {
		return "", domain.ErrNotFound
	}
	return "https://files.test/" + id + ".xlsx", nil
}

func (f *fakeCGAN) Download(_ context.Context, url string) ([]byte, error) {
	for id, data := range f.summary {
		if url == "https://files.test/"+id+".xlsx" {
			return data, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeParser devuelve siempre los mismos decomisos.
type fakeParser struct {
	out *entity.Decomisos
	err error
}

func (p fakeParser) Parse([]byte) (*entity.Decomisos, error) { return p.out, p.err }

// dirStore FileStore sobre un directorio temporal.
type dirStore struct {
	root string
}

func (s dirStore) Reset(batch string) error {
	dir := filepath.Join(s.root, batch)
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func (s dirStore) Save(batch, name string, data []byte) (string, error) {
	path := filepath.Join(s.root, batch, name)
	return path, os.WriteFile(path, data, 0o644)
}

func (s dirStore) Zip(batch string) (string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, batch))
	if err != nil {
		return "", domain.ErrNotFound
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name())
		if err != nil {
			return "", err
		}
		data, _ := os.ReadFile(filepath.Join(s.root, batch, e.Name()))
		_, _ = w.Write(data)
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, batch+".zip")
	return path, os.WriteFile(path, buf.Bytes(), 0o644)
}

// firstPage simula pdfcpu: deja constancia de las páginas pedidas.
type firstPage struct{}

func (firstPage) KeepPages(pdf []byte, pages []string) ([]byte, error) {
	return append(append([]byte(nil), pdf...), []byte(" páginas "+pages[0])...), nil
}

type fakeRenderer struct{}

func (fakeRenderer) RenderDecomisos(batch string, _ *entity.Decomisos) ([]byte, error) {
	return []byte("%PDF decomisos " + batch), nil
}

type fakeUploader struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, name, _ string, _ []byte) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	u.names = append(u.names, name)
	return "drive-" + name, nil
}
