package http

import (
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/qtiforge/qtiforge/internal/author"
	"github.com/qtiforge/qtiforge/internal/qti/parser"
)

// ImportCSV ingests a CSV of questions and stores one draft per record.
//
// POST /import/csv (multipart: file=questions.csv)
func (h *Handlers) ImportCSV(w http.ResponseWriter, r *http.Request) {
	f, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file required", http.StatusBadRequest)
		return
	}
	defer f.Close()

	drafts, err := author.ImportCSV(f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ids := make([]string, 0, len(drafts))
	for _, d := range drafts {
		if err := h.Store.PutDraft(r.Context(), d); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ids = append(ids, d.ID)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"draft_ids": ids})
}

// ImportQTI ingests a previously exported QTI package and recreates editable
// drafts from its items.
//
// POST /import/qti (multipart: file=package.zip)
func (h *Handlers) ImportQTI(w http.ResponseWriter, r *http.Request) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file required", http.StatusBadRequest)
		return
	}
	defer f.Close()

	// Spool to disk to get a ReaderAt for the zip reader.
	tmp, err := os.CreateTemp("", "qtiforge-upload-*")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	size, err := io.Copy(tmp, f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	base, err := parser.UnzipToTemp(tmp, size)
	if err != nil {
		http.Error(w, "unzip: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer os.RemoveAll(base)

	_, itemFiles, err := parser.ParseManifest(base)
	if err != nil {
		http.Error(w, "manifest: "+err.Error(), http.StatusBadRequest)
		return
	}

	var parsed []parser.ParsedItem
	for _, rel := range itemFiles {
		it, err := parser.ParseItemFile(base, rel)
		if err != nil {
			log.Warn().Str("file", rel).Err(err).Msg("skipping unparseable item")
			continue
		}
		parsed = append(parsed, it)
	}

	drafts, err := author.DraftsFromPackage(parsed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ids := make([]string, 0, len(drafts))
	for _, d := range drafts {
		if err := h.Store.PutDraft(r.Context(), d); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ids = append(ids, d.DraftID())
	}
	log.Info().Str("package", hdr.Filename).Int("drafts", len(ids)).Msg("qti import complete")
	writeJSON(w, http.StatusCreated, map[string]any{"draft_ids": ids})
}
