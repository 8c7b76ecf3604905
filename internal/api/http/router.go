// Package http exposes the authoring API consumed by the editor frontend:
// draft CRUD, CSV and QTI package import, and package export.
package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/qtiforge/qtiforge/internal/auth"
	"github.com/qtiforge/qtiforge/internal/bank"
	"github.com/qtiforge/qtiforge/internal/config"
	"github.com/qtiforge/qtiforge/internal/rbac"
	"github.com/qtiforge/qtiforge/internal/storage"
)

// Handlers bundles the dependencies the API routes need.
type Handlers struct {
	Store *bank.SQLStore
	Blobs storage.BlobStore
}

// NewRouter assembles the full service router.
func NewRouter(cfg *config.App, db *sql.DB, authSvc *auth.Service, h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, db))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))

		pr.Route("/drafts", func(dr chi.Router) {
			dr.With(rbac.Require("draft:list")).Get("/", h.ListDrafts)
			dr.With(rbac.Require("draft:create")).Post("/", h.CreateDraft)
			dr.With(rbac.Require("draft:view")).Get("/{id}", h.GetDraft)
			dr.With(rbac.Require("draft:edit")).Put("/{id}", h.UpdateDraft)
			dr.With(rbac.Require("draft:delete")).Delete("/{id}", h.DeleteDraft)
		})

		pr.With(rbac.Require("import:csv")).Post("/import/csv", h.ImportCSV)
		pr.With(rbac.Require("import:qti")).Post("/import/qti", h.ImportQTI)

		pr.Route("/exports", func(er chi.Router) {
			er.With(rbac.Require("export:list")).Get("/", h.ListExports)
			er.With(rbac.Require("export:create")).Post("/", h.CreateExport)
			er.With(rbac.Require("export:download")).Get("/{id}/download", h.DownloadExport)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return r
}
