// Package bank persists question drafts and export records so authoring
// sessions survive process restarts.
package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/qtiforge/qtiforge/internal/author"
)

var ErrNotFound = errors.New("not found")

// DraftSummary is the listing view of a stored draft.
type DraftSummary struct {
	ID        string      `json:"id"`
	Kind      author.Kind `json:"kind"`
	Title     string      `json:"title"`
	UpdatedAt int64       `json:"updated_at"`
}

// ExportRecord describes one finished package export.
type ExportRecord struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	ArchiveKey string   `json:"archive_key"`
	DraftIDs   []string `json:"draft_ids"`
	CreatedAt  int64    `json:"created_at"`
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutDraft(ctx context.Context, d author.Draft) error {
	title, body, err := encodeDraft(d)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO drafts (id,kind,title,body_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$5)
		ON CONFLICT (id) DO UPDATE SET kind=EXCLUDED.kind, title=EXCLUDED.title, body_json=EXCLUDED.body_json, updated_at=EXCLUDED.updated_at`,
		d.DraftID(), string(d.DraftKind()), title, string(body), now)
	return err
}

func (s *SQLStore) GetDraft(ctx context.Context, id string) (author.Draft, error) {
	row := s.db.QueryRowContext(ctx, `SELECT kind,body_json FROM drafts WHERE id=$1`, id)
	var kind, body string
	if err := row.Scan(&kind, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeDraft(author.Kind(kind), []byte(body))
}

func (s *SQLStore) ListDrafts(ctx context.Context) ([]DraftSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,kind,title,updated_at FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DraftSummary
	for rows.Next() {
		var d DraftSummary
		var kind string
		if err := rows.Scan(&d.ID, &kind, &d.Title, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Kind = author.Kind(kind)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteDraft(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) PutExport(ctx context.Context, rec ExportRecord) error {
	ids, err := json.Marshal(rec.DraftIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exports (id,title,archive_key,draft_ids_json,created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		rec.ID, rec.Title, rec.ArchiveKey, string(ids), rec.CreatedAt)
	return err
}

func (s *SQLStore) GetExport(ctx context.Context, id string) (ExportRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,archive_key,draft_ids_json,created_at FROM exports WHERE id=$1`, id)
	var rec ExportRecord
	var ids string
	if err := row.Scan(&rec.ID, &rec.Title, &rec.ArchiveKey, &ids, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExportRecord{}, ErrNotFound
		}
		return ExportRecord{}, err
	}
	if err := json.Unmarshal([]byte(ids), &rec.DraftIDs); err != nil {
		return ExportRecord{}, err
	}
	return rec, nil
}

func (s *SQLStore) ListExports(ctx context.Context) ([]ExportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,archive_key,draft_ids_json,created_at FROM exports ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		var ids string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.ArchiveKey, &ids, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ids), &rec.DraftIDs); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func encodeDraft(d author.Draft) (title string, body []byte, err error) {
	switch v := d.(type) {
	case *author.ChoiceDraft:
		title = v.Title
	case *author.MatchDraft:
		title = v.Title
	default:
		return "", nil, fmt.Errorf("unknown draft type %T", d)
	}
	body, err = json.Marshal(d)
	return title, body, err
}

func decodeDraft(kind author.Kind, body []byte) (author.Draft, error) {
	switch kind {
	case author.KindChoice:
		var d author.ChoiceDraft
		if err := json.Unmarshal(body, &d); err != nil {
			return nil, err
		}
		return &d, nil
	case author.KindMatch:
		var d author.MatchDraft
		if err := json.Unmarshal(body, &d); err != nil {
			return nil, err
		}
		return &d, nil
	default:
		return nil, fmt.Errorf("unknown draft kind %q", kind)
	}
}
