package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jeronimo114/comcer2/internal/application/lote"
	"github.com/jeronimo114/comcer2/internal/application/report"
	"github.com/jeronimo114/comcer2/internal/infrastructure/cgan"
	"github.com/jeronimo114/comcer2/internal/infrastructure/excel"
	"github.com/jeronimo114/comcer2/internal/infrastructure/files"
	"github.com/jeronimo114/comcer2/internal/infrastructure/gsheets"
	infrapdf "github.com/jeronimo114/comcer2/internal/infrastructure/pdf"
	httpRouter "github.com/jeronimo114/comcer2/internal/interfaces/http"
	"github.com/jeronimo114/comcer2/pkg/config"
	"github.com/jeronimo114/comcer2/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// INFOCGAN
	cganClient := cgan.NewClient(cgan.Config{
		LoginURL:        cfg.CGAN.LoginURL,
		APIURL:          cfg.CGAN.APIURL,
		FilesURL:        cfg.CGAN.FilesURL,
		Username:        cfg.CGAN.Username,
		Password:        cfg.CGAN.Password,
		Specie:          cfg.CGAN.Specie,
		WindowDays:      cfg.CGAN.WindowDays,
		Timeout:         cfg.CGAN.Timeout,
		DownloadTimeout: cfg.CGAN.DownloadTimeout,
	}, log.Component("cgan"))
	// El login al arrancar solo adelanta el primer token; si falla se reintenta en la primera consulta.
	if err := cganClient.EnsureSession(ctx); err != nil {
		log.Warn().Err(err).Msg("login inicial en INFOCGAN")
	}

	// Google Sheets / Drive
	gateway, err := gsheets.New(ctx, cfg.Google.CredentialsFile, log.Component("gsheets"))
	if err != nil {
		log.Fatal().Err(err).Msg("cliente de Google")
	}
	writer := report.NewWriter(gateway, report.Config{
		TemplateID:     cfg.Google.TemplateID,
		ConsecutivosID: cfg.Google.ConsecutivosID,
	}, log.Component("report"))

	// Drive: solo si hay carpeta configurada
	var uploader lote.Uploader
	if cfg.Google.DriveFolderID != "" {
		uploader = gateway.NewUploader(cfg.Google.DriveFolderID)
	}

	store, err := files.NewStore(cfg.Reports.DownloadsDir, log.Component("files"))
	if err != nil {
		log.Fatal().Err(err).Msg("carpeta de descargas")
	}

	decomisos := lote.NewDecomisosFetcher(cganClient, excel.NewDecomisosParser(log.Component("excel")), log.Component("decomisos"))
	queryUC := lote.NewQueryUseCase(cganClient, writer, decomisos, log.Component("query"))
	processUC := lote.NewProcessUseCase(
		writer, store,
		infrapdf.NewPageExtractor(log.Component("pdf")),
		infrapdf.NewDecomisosReport(),
		uploader,
		lote.ProcessConfig{ConsecRow: cfg.Reports.ConsecRow, PDFPages: cfg.Reports.PDFPages},
		log.Component("process"),
	)
	downloadUC := lote.NewDownloadUseCase(writer, store, log.Component("download"))

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// /process genera todos los archivos del lote en una sola petición
		WriteTimeout: time.Minute * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comcer Lotes API",
	}))

	// Cookie de sesión cifrada; sin SESSION_SECRET la clave vive lo que viva el proceso
	// (igual que las sesiones en memoria).
	cookieKey := cfg.App.SessionSecret
	if cookieKey == "" {
		cookieKey = encryptcookie.GenerateKey()
		log.Warn().Msg("SESSION_SECRET vacío: se generó una clave efímera")
	}
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey}))

	const sessionTTL = 12 * time.Hour
	sessionStore := session.New(session.Config{
		Expiration:     sessionTTL,
		KeyLookup:      "cookie:comcer_session",
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Query:        queryUC,
		Process:      processUC,
		Download:     downloadUC,
		Sessions:     lote.NewSessionRegistry(sessionTTL),
		SessionStore: sessionStore,
		ServiceName:  cfg.App.Name,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
