package config

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	CGAN    CGANConfig
	Google  GoogleConfig
	Reports ReportsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env           string // development, staging, production
	Name          string
	LogLevel      string
	SessionSecret string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CGANConfig credenciales y endpoints de la API INFOCGAN.
type CGANConfig struct {
	LoginURL        string
	APIURL          string // termina en "/api/"
	FilesURL        string // base para rutas relativas de archivos descargables
	Username        string
	Password        string
	Specie          int
	WindowDays      int // ventana de búsqueda de lotes hacia atrás
	Timeout         time.Duration
	DownloadTimeout time.Duration
}

// GoogleConfig hojas de cálculo y carpeta de Drive.
type GoogleConfig struct {
	CredentialsFile string
	TemplateID      string // plantilla con Info/Despacho/Liquidación/Consec/Decomisos
	ConsecutivosID  string // hoja de seguimiento de consecutivos
	DriveFolderID   string // vacío = no subir archivos
}

// ReportsConfig opciones de generación de archivos.
type ReportsConfig struct {
	DownloadsDir string
	ConsecRow    int
	PDFPages     []string // páginas (base 1) que se conservan del PDF exportado
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, CGAN_USERNAME, SHEETS_TEMPLATE_ID, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:           getString(v, "APP_ENV", "development"),
			Name:          getString(v, "APP_NAME", "comcer"),
			LogLevel:      getString(v, "LOG_LEVEL", "debug"),
			SessionSecret: getString(v, "SESSION_SECRET", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8000),
		},
		CGAN: CGANConfig{
			LoginURL:        getString(v, "CGAN_LOGIN_URL", "https://infocgan.cloudmantum.com/api/login"),
			APIURL:          getString(v, "CGAN_API_URL", "https://api-infocgan.cloudmantum.com/api/"),
			FilesURL:        getString(v, "CGAN_FILES_URL", "https://api-infocgan.cloudmantum.com/"),
			Username:        getString(v, "CGAN_USERNAME", ""),
			Password:        getString(v, "CGAN_PASSWORD", ""),
			Specie:          getInt(v, "CGAN_SPECIE", 1),
			WindowDays:      getInt(v, "CGAN_WINDOW_DAYS", 30),
			Timeout:         time.Duration(getInt(v, "CGAN_TIMEOUT_SECONDS", 30)) * time.Second,
			DownloadTimeout: time.Duration(getInt(v, "CGAN_DOWNLOAD_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Google: GoogleConfig{
			CredentialsFile: getString(v, "GOOGLE_CREDENTIALS_FILE", "credentials.json"),
			TemplateID:      getString(v, "SHEETS_TEMPLATE_ID", ""),
			ConsecutivosID:  getString(v, "SHEETS_CONSECUTIVOS_ID", ""),
			DriveFolderID:   getString(v, "DRIVE_FOLDER_ID", ""),
		},
		Reports: ReportsConfig{
			DownloadsDir: getString(v, "DOWNLOADS_DIR", "downloads"),
			ConsecRow:    getInt(v, "CONSEC_ROW", 6),
			PDFPages:     splitList(getString(v, "PDF_PAGES", "4")),
		},
	}

	if cfg.Google.TemplateID == "" {
		return nil, fmt.Errorf("config: SHEETS_TEMPLATE_ID es obligatorio")
	}
	if err := validSessionSecret(cfg.App.SessionSecret); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// validSessionSecret la clave de la cookie cifrada es base64 de 16, 24 o 32 bytes (AES).
// Vacía se permite: el servidor genera una clave efímera.
func validSessionSecret(secret string) error {
	if secret == "" {
		return nil
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return fmt.Errorf("config: SESSION_SECRET debe estar en base64: %w", err)
	}
	switch len(key) {
	case 16, 24, 32:
		return nil
	}
	return fmt.Errorf("config: SESSION_SECRET debe decodificar a 16, 24 o 32 bytes (tiene %d)", len(key))
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
