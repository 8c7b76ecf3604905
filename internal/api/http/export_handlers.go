package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/qtiforge/qtiforge/internal/bank"
	"github.com/qtiforge/qtiforge/internal/qti"
	"github.com/qtiforge/qtiforge/internal/qti/export"
)

// CreateExport builds a content package from stored drafts, archives it, and
// records the export. Nothing is recorded or stored unless the whole build
// succeeds.
//
// POST /exports  { "title": "...", "description": "...", "copyright": "...",
// "draft_ids": [...], "as_test": false }
func (h *Handlers) CreateExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Copyright   string   `json:"copyright"`
		DraftIDs    []string `json:"draft_ids"`
		AsTest      bool     `json:"as_test"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(req.DraftIDs) == 0 {
		http.Error(w, "draft_ids required", http.StatusBadRequest)
		return
	}

	reg := qti.NewIDRegistry()
	items := make([]*qti.AssessmentItem, 0, len(req.DraftIDs))
	for _, id := range req.DraftIDs {
		d, err := h.Store.GetDraft(r.Context(), id)
		if err != nil {
			httpError(w, err)
			return
		}
		item, err := d.BuildItem(reg)
		if err != nil {
			http.Error(w, id+": "+err.Error(), http.StatusBadRequest)
			return
		}
		items = append(items, item)
	}

	manifest := qti.NewManifest(reg, req.Title)
	manifest.Description = req.Description
	manifest.Copyright = req.Copyright
	if req.AsTest {
		test := qti.NewAssessmentTest(reg, req.Title)
		part := qti.NewTestPart(reg)
		section := qti.NewAssessmentSection(reg, req.Title, true)
		for _, item := range items {
			section.AddItem(reg, item)
		}
		part.Sections = append(part.Sections, section)
		test.Parts = append(test.Parts, part)
		manifest.Add(test)
	} else {
		for _, item := range items {
			manifest.Add(item)
		}
	}

	data, err := export.BuildPackage(manifest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id := uuid.NewString()
	rec := bank.ExportRecord{
		ID:         id,
		Title:      req.Title,
		ArchiveKey: "exports/" + id + ".zip",
		DraftIDs:   req.DraftIDs,
		CreatedAt:  time.Now().Unix(),
	}
	if _, err := h.Blobs.Put(rec.ArchiveKey, bytes.NewReader(data)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.Store.PutExport(r.Context(), rec); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Info().Str("export", rec.ID).Int("items", len(items)).Msg("package exported")
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handlers) ListExports(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.ListExports(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// DownloadExport streams a previously built archive.
//
// GET /exports/{id}/download
func (h *Handlers) DownloadExport(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetExport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	blob, err := h.Blobs.Get(rec.ArchiveKey)
	if err != nil {
		http.Error(w, "archive missing", http.StatusNotFound)
		return
	}
	defer blob.Close()
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rec.ID+`.zip"`)
	_, _ = io.Copy(w, blob)
}
