package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/jeronimo114/comcer2/internal/application/lote"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Query        loteQuerier
	Process      loteProcessor
	Download     loteDownloader
	Sessions     *lote.SessionRegistry
	SessionStore *session.Store
	ServiceName  string
	Log          zerolog.Logger
}

// Router registra las páginas, las descargas y la API JSON.
func Router(app *fiber.App, deps RouterDeps) {
	apiHandler := NewAPIHandler(deps.Query, deps.Sessions, deps.ServiceName)
	app.Get("/health", apiHandler.Health)

	web := app.Group("/", SessionMiddleware(deps.SessionStore, deps.Sessions))

	// Flujo del lote
	loteHandler := NewLoteHandler(deps.Query, deps.Process, deps.Log)
	web.Get("/", loteHandler.Index)
	web.Post("/", loteHandler.Submit)
	web.Get("/loading", loteHandler.Loading)
	web.Get("/process", loteHandler.Process)
	web.Get("/complete", loteHandler.Complete)

	// Descargas (las rutas fijas antes de /download/:lote)
	downloadHandler := NewDownloadHandler(deps.Download, deps.Log)
	web.Get("/download/consecutivos", downloadHandler.Consecutivos)
	web.Get("/download/report", downloadHandler.Report)
	web.Get("/download/:lote", downloadHandler.Archive)

	// API JSON
	api := web.Group("/api")
	api.Get("/lotes", apiHandler.Batches)
	api.Get("/session", apiHandler.Session)
}
