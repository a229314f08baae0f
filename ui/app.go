package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JoseExp44/StockWebApp/app"
	"github.com/JoseExp44/StockWebApp/internal"
)

//go:embed templates/* static/* docs/*
var embeddedFiles embed.FS

// App represents the web application
type App struct {
	router    *chi.Mux
	sessions  *app.SessionManager
	catalog   *app.Catalog
	hub       *SSEHub
	templates *template.Template
	log       *internal.Logger
}

// NewApp creates the web application over the session manager and the
// bootstrap catalog
func NewApp(sessions *app.SessionManager, catalog *app.Catalog, log *internal.Logger) (*App, error) {
	if log == nil {
		log = internal.DefaultLogger
	}

	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		sessions:  sessions,
		catalog:   catalog,
		hub:       NewSSEHub(log),
		templates: templates,
		log:       log,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/help", a.handleHelp)

	// Session lifecycle
	a.router.Post("/api/session", a.handleCreateSession)
	a.router.Get("/api/session/{id}/state", a.handleSessionState)
	a.router.Get("/api/session/{id}/export", a.handleExport)

	// Chart actions
	a.router.Post("/api/session/{id}/series", a.handleSeries)
	a.router.Post("/api/session/{id}/stat/{kind}", a.handleStatToggle)

	// Snapshot stream
	a.router.Get("/events", a.hub.HandleSSE)
}

// Start runs the HTTP server
func (a *App) Start(addr string) error {
	a.log.Info("listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the handler for tests
func (a *App) Router() http.Handler {
	return a.router
}
