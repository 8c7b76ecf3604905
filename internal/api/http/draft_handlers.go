package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qtiforge/qtiforge/internal/author"
	"github.com/qtiforge/qtiforge/internal/bank"
)

// draftPayload is the wire form of a draft. Points travel as free text; the
// server owns the parse rules.
type draftPayload struct {
	ID      string            `json:"id,omitempty"`
	Kind    author.Kind       `json:"kind"`
	Title   string            `json:"title"`
	Prompt  string            `json:"prompt"`
	Points  string            `json:"points"`
	Shuffle bool              `json:"shuffle"`
	Choices []string          `json:"choices,omitempty"`
	Correct []int             `json:"correct,omitempty"`
	Rows    []author.MatchRow `json:"rows,omitempty"`
}

func payloadFromDraft(d author.Draft) draftPayload {
	switch v := d.(type) {
	case *author.ChoiceDraft:
		return draftPayload{
			ID: v.ID, Kind: author.KindChoice, Title: v.Title, Prompt: v.Prompt,
			Points: fmt.Sprintf("%g", v.Points), Shuffle: v.Shuffle,
			Choices: v.Choices, Correct: v.Correct,
		}
	case *author.MatchDraft:
		return draftPayload{
			ID: v.ID, Kind: author.KindMatch, Title: v.Title, Prompt: v.Prompt,
			Points: fmt.Sprintf("%g", v.Points), Shuffle: v.Shuffle,
			Rows: v.Rows,
		}
	}
	return draftPayload{}
}

func applyPayload(d author.Draft, p draftPayload) error {
	switch v := d.(type) {
	case *author.ChoiceDraft:
		v.Title = p.Title
		v.Prompt = p.Prompt
		v.Shuffle = p.Shuffle
		v.Choices = p.Choices
		v.Correct = p.Correct
		return v.SetPointsText(p.Points)
	case *author.MatchDraft:
		v.Title = p.Title
		v.Prompt = p.Prompt
		v.Shuffle = p.Shuffle
		v.Rows = p.Rows
		return v.SetPointsText(p.Points)
	default:
		return fmt.Errorf("unknown draft type %T", d)
	}
}

func (h *Handlers) ListDrafts(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.ListDrafts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var p draftPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	var d author.Draft
	switch p.Kind {
	case author.KindChoice:
		d = author.NewChoiceDraft()
	case author.KindMatch:
		d = author.NewMatchDraft()
	default:
		http.Error(w, "unknown draft kind", http.StatusBadRequest)
		return
	}
	if err := applyPayload(d, p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Store.PutDraft(r.Context(), d); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, payloadFromDraft(d))
}

func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.Store.GetDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payloadFromDraft(d))
}

// UpdateDraft applies an edit under a rollback transaction: a rejected edit
// leaves the stored draft exactly as it was.
func (h *Handlers) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.Store.GetDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	var p draftPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	switch v := d.(type) {
	case *author.ChoiceDraft:
		v.BeginEdit()
		if err := applyPayload(v, p); err != nil {
			v.CancelEdit()
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		v.EndEdit()
	case *author.MatchDraft:
		v.BeginEdit()
		if err := applyPayload(v, p); err != nil {
			v.CancelEdit()
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		v.EndEdit()
	}
	if err := h.Store.PutDraft(r.Context(), d); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, payloadFromDraft(d))
}

func (h *Handlers) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteDraft(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, err error) {
	if errors.Is(err, bank.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
