package config_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeronimo114/comcer2/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHEETS_TEMPLATE_ID", "plantilla-123")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, "https://api-infocgan.cloudmantum.com/api/", cfg.CGAN.APIURL)
	assert.Equal(t, 1, cfg.CGAN.Specie)
	assert.Equal(t, 30, cfg.CGAN.WindowDays)
	assert.Equal(t, 30*time.Second, cfg.CGAN.Timeout)
	assert.Equal(t, 60*time.Second, cfg.CGAN.DownloadTimeout)
	assert.Equal(t, 6, cfg.Reports.ConsecRow)
	assert.Equal(t, []string{"4"}, cfg.Reports.PDFPages)
	assert.Equal(t, "downloads", cfg.Reports.DownloadsDir)
	assert.Empty(t, cfg.Google.DriveFolderID)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SHEETS_TEMPLATE_ID", "plantilla-123")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CGAN_WINDOW_DAYS", "15")
	t.Setenv("CGAN_DOWNLOAD_TIMEOUT_SECONDS", "120")
	t.Setenv("PDF_PAGES", "3, 4,")
	t.Setenv("CONSEC_ROW", "no-es-numero")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 15, cfg.CGAN.WindowDays)
	assert.Equal(t, 2*time.Minute, cfg.CGAN.DownloadTimeout)
	assert.Equal(t, []string{"3", "4"}, cfg.Reports.PDFPages)
	assert.Equal(t, 6, cfg.Reports.ConsecRow, "un entero ilegible conserva el valor por defecto")
}

func TestLoad_SinPlantilla(t *testing.T) {
	t.Setenv("SHEETS_TEMPLATE_ID", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_SessionSecret(t *testing.T) {
	t.Setenv("SHEETS_TEMPLATE_ID", "plantilla-123")

	t.Setenv("SESSION_SECRET", "corta")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", base64.StdEncoding.EncodeToString(make([]byte, 20)))
	_, err = config.Load()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", base64.StdEncoding.EncodeToString(make([]byte, 32)))
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.App.SessionSecret)
}
