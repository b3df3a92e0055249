package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/editor"
	"github.com/starford/dagaz/internal/history"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// revisions may be nil when the history log is disabled.
func NewRouter(svc *editor.Service, revisions history.Log, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, revisions)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Document-level settings.
	r.Get("/document", h.GetDocument)
	r.Post("/document/reset", h.Reset)
	r.Put("/document/week-start", h.SetWeekStart)
	r.Put("/document/view", h.SetView)
	r.Put("/master", h.UpdateMaster)

	// Pages.
	r.Post("/pages", h.AddPage)
	r.Put("/pages/months", h.SetMonths)
	r.Delete("/pages/{id}", h.RemovePage)
	r.Post("/pages/{id}/move", h.MovePage)
	r.Put("/pages/{id}/month", h.SetPageMonth)

	// Sections on the master page.
	r.Post("/sections", h.AddSection)
	r.Delete("/sections/{id}", h.RemoveSection)
	r.Post("/sections/{id}/move", h.MoveSection)
	r.Patch("/sections/{id}", h.PatchSection)

	// Chores within a section.
	r.Post("/sections/{id}/chores", h.AddChore)
	r.Put("/sections/{id}/chores/{index}", h.EditChore)
	r.Delete("/sections/{id}/chores/{index}", h.RemoveChore)
	r.Post("/sections/{id}/chores/{index}/move", h.MoveChore)

	// Sharing and interchange.
	r.Get("/share", h.Share)
	r.Post("/import", h.Import)
	r.Get("/export/markdown", h.ExportMarkdown)
	r.Get("/history", h.History)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
