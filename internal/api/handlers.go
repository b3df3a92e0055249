package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/editor"
	"github.com/starford/dagaz/internal/history"
	"github.com/starford/dagaz/internal/markdown"
)

// Handler holds API route handlers.
type Handler struct {
	svc       *editor.Service
	revisions history.Log
}

// NewHandler creates a new Handler. revisions may be nil when the
// history log is disabled.
func NewHandler(svc *editor.Service, revisions history.Log) *Handler {
	return &Handler{svc: svc, revisions: revisions}
}

// writeError maps editor errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrLastPage):
		writeJSON(w, http.StatusConflict, errorBody("last page cannot be removed"))
	case errors.Is(err, apperr.ErrNoState):
		writeJSON(w, http.StatusBadRequest, errorBody("token could not be decoded"))
	case errors.Is(err, apperr.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// document responds with the full live document, the shape every
// mutation endpoint returns so clients can re-render from it.
func (h *Handler) document(w http.ResponseWriter, status int) {
	writeJSON(w, status, DocumentResponse{
		Document: h.svc.Document(),
		Checksum: h.svc.Checksum(),
	})
}

// GetDocument handles GET /document.
func (h *Handler) GetDocument(w http.ResponseWriter, _ *http.Request) {
	h.document(w, http.StatusOK)
}

// Reset handles POST /document/reset.
func (h *Handler) Reset(w http.ResponseWriter, _ *http.Request) {
	if err := h.svc.Reset(); err != nil {
		writeError(w, err, "reset")
		return
	}
	h.document(w, http.StatusOK)
}

// SetWeekStart handles PUT /document/week-start.
func (h *Handler) SetWeekStart(w http.ResponseWriter, r *http.Request) {
	var req WeekStartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.SetWeekStartDay(req.WeekStartDay); err != nil {
		writeError(w, err, "set week start")
		return
	}
	h.document(w, http.StatusOK)
}

// SetView handles PUT /document/view.
func (h *Handler) SetView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.SetMultiPageView(req.MultiPageView); err != nil {
		writeError(w, err, "set view")
		return
	}
	h.document(w, http.StatusOK)
}

// UpdateMaster handles PUT /master.
func (h *Handler) UpdateMaster(w http.ResponseWriter, r *http.Request) {
	var req MasterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title != nil {
		if err := h.svc.SetTitle(*req.Title); err != nil {
			writeError(w, err, "set title")
			return
		}
	}
	if req.BaseSize != nil {
		if _, err := h.svc.SetBaseSize(*req.BaseSize); err != nil {
			writeError(w, err, "set base size")
			return
		}
	}
	if req.ScaleRatio != nil {
		if err := h.svc.SetScaleRatio(*req.ScaleRatio); err != nil {
			writeError(w, err, "set scale ratio")
			return
		}
	}
	h.document(w, http.StatusOK)
}

// AddPage handles POST /pages.
func (h *Handler) AddPage(w http.ResponseWriter, _ *http.Request) {
	if _, err := h.svc.AddPage(); err != nil {
		writeError(w, err, "add page")
		return
	}
	h.document(w, http.StatusCreated)
}

// RemovePage handles DELETE /pages/{id}.
func (h *Handler) RemovePage(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemovePage(chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "remove page")
		return
	}
	h.document(w, http.StatusOK)
}

// MovePage handles POST /pages/{id}/move.
func (h *Handler) MovePage(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.MovePage(chi.URLParam(r, "id"), req.Offset); err != nil {
		writeError(w, err, "move page")
		return
	}
	h.document(w, http.StatusOK)
}

// SetPageMonth handles PUT /pages/{id}/month.
func (h *Handler) SetPageMonth(w http.ResponseWriter, r *http.Request) {
	var req MonthRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.SetPageMonth(chi.URLParam(r, "id"), req.Month); err != nil {
		writeError(w, err, "set page month")
		return
	}
	h.document(w, http.StatusOK)
}

// SetMonths handles PUT /pages/months.
func (h *Handler) SetMonths(w http.ResponseWriter, r *http.Request) {
	var req MonthsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var err error
	if req.Count > 0 {
		err = h.svc.SetMonthRange(req.Start, req.Count)
	} else {
		err = h.svc.SetStartMonth(req.Start)
	}
	if err != nil {
		writeError(w, err, "set months")
		return
	}
	h.document(w, http.StatusOK)
}

// AddSection handles POST /sections.
func (h *Handler) AddSection(w http.ResponseWriter, r *http.Request) {
	var req AddSectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := h.svc.AddSection(req.Type); err != nil {
		writeError(w, err, "add section")
		return
	}
	h.document(w, http.StatusCreated)
}

// RemoveSection handles DELETE /sections/{id}.
func (h *Handler) RemoveSection(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveSection(chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "remove section")
		return
	}
	h.document(w, http.StatusOK)
}

// MoveSection handles POST /sections/{id}/move.
func (h *Handler) MoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.MoveSection(chi.URLParam(r, "id"), req.Offset); err != nil {
		writeError(w, err, "move section")
		return
	}
	h.document(w, http.StatusOK)
}

// PatchSection handles PATCH /sections/{id}.
func (h *Handler) PatchSection(w http.ResponseWriter, r *http.Request) {
	var req SectionPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.UpdateSection(chi.URLParam(r, "id"), req); err != nil {
		writeError(w, err, "patch section")
		return
	}
	h.document(w, http.StatusOK)
}

// AddChore handles POST /sections/{id}/chores.
func (h *Handler) AddChore(w http.ResponseWriter, r *http.Request) {
	var req ChoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.AddChore(chi.URLParam(r, "id"), req.Text); err != nil {
		writeError(w, err, "add chore")
		return
	}
	h.document(w, http.StatusCreated)
}

// EditChore handles PUT /sections/{id}/chores/{index}.
func (h *Handler) EditChore(w http.ResponseWriter, r *http.Request) {
	index, ok := choreIndex(w, r)
	if !ok {
		return
	}
	var req ChoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.EditChore(chi.URLParam(r, "id"), index, req.Text); err != nil {
		writeError(w, err, "edit chore")
		return
	}
	h.document(w, http.StatusOK)
}

// RemoveChore handles DELETE /sections/{id}/chores/{index}.
func (h *Handler) RemoveChore(w http.ResponseWriter, r *http.Request) {
	index, ok := choreIndex(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveChore(chi.URLParam(r, "id"), index); err != nil {
		writeError(w, err, "remove chore")
		return
	}
	h.document(w, http.StatusOK)
}

// MoveChore handles POST /sections/{id}/chores/{index}/move.
func (h *Handler) MoveChore(w http.ResponseWriter, r *http.Request) {
	index, ok := choreIndex(w, r)
	if !ok {
		return
	}
	var req ChoreMoveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.MoveChore(chi.URLParam(r, "id"), index, req.To); err != nil {
		writeError(w, err, "move chore")
		return
	}
	h.document(w, http.StatusOK)
}

func choreIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid chore index"))
		return 0, false
	}
	return index, true
}

// Share handles GET /share.
func (h *Handler) Share(w http.ResponseWriter, _ *http.Request) {
	token, err := h.svc.ShareToken()
	if err != nil {
		writeError(w, err, "share")
		return
	}
	writeJSON(w, http.StatusOK, ShareResponse{Token: token})
}

// Import handles POST /import.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("token is required"))
		return
	}
	if err := h.svc.Import(req.Token); err != nil {
		writeError(w, err, "import")
		return
	}
	h.document(w, http.StatusOK)
}

// ExportMarkdown handles GET /export/markdown.
func (h *Handler) ExportMarkdown(w http.ResponseWriter, _ *http.Request) {
	md := markdown.Export(h.svc.Document())
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}

// History handles GET /history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if h.revisions == nil {
		writeJSON(w, http.StatusOK, HistoryResponse{Revisions: []history.Revision{}})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	revs, err := h.revisions.Recent(limit)
	if err != nil {
		writeError(w, err, "history")
		return
	}
	if revs == nil {
		revs = []history.Revision{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Revisions: revs})
}
