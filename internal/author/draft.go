// Package author holds the mutable question drafts an editing surface works
// on before export. Drafts are the only mutable stage of the pipeline: a
// draft is edited under begin/cancel/end transactions, and BuildItem projects
// it into an immutable document-model item at export time.
package author

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/qtiforge/qtiforge/internal/qti"
)

var (
	ErrTooFewChoices       = errors.New("a choice question needs at least two non-blank choices")
	ErrNoCorrectAnswer     = errors.New("no correct answer selected")
	ErrAnswerIndexRange    = errors.New("correct answer index out of range")
	ErrMalformedAnswerList = errors.New("correct answer list contains a non-numeric token")
	ErrNoAssociations      = errors.New("a match question needs at least one association row")
)

// Kind discriminates the draft variants a bank can hold.
type Kind string

const (
	KindChoice Kind = "choice"
	KindMatch  Kind = "match"
)

// Draft is a question under construction.
type Draft interface {
	DraftID() string
	DraftKind() Kind
	// BuildItem projects the draft into a fresh assessment item using reg for
	// all generated identifiers. Validation failures leave the draft intact.
	BuildItem(reg *qti.IDRegistry) (*qti.AssessmentItem, error)
}

// ChoiceDraft is a multiple-choice question draft. Correct holds zero-based
// indices into the non-blank choices, in the order a candidate would see
// them.
type ChoiceDraft struct {
	ID      string
	Title   string
	Prompt  string
	Points  float64
	Shuffle bool
	Choices []string
	Correct []int

	snapshot *ChoiceDraft
}

func NewChoiceDraft() *ChoiceDraft {
	return &ChoiceDraft{ID: uuid.NewString(), Points: 1}
}

func (d *ChoiceDraft) DraftID() string { return d.ID }
func (d *ChoiceDraft) DraftKind() Kind { return KindChoice }

func (d *ChoiceDraft) clone() *ChoiceDraft {
	c := *d
	c.Choices = append([]string(nil), d.Choices...)
	c.Correct = append([]int(nil), d.Correct...)
	c.snapshot = nil
	return &c
}

// BeginEdit snapshots the draft so a rejected edit can be rolled back.
// Nested begins reuse the outermost snapshot.
func (d *ChoiceDraft) BeginEdit() {
	if d.snapshot == nil {
		d.snapshot = d.clone()
	}
}

// CancelEdit restores the draft to its state at BeginEdit.
func (d *ChoiceDraft) CancelEdit() {
	if d.snapshot != nil {
		snap := d.snapshot
		*d = *snap
	}
}

// EndEdit commits the current state and discards the snapshot.
func (d *ChoiceDraft) EndEdit() { d.snapshot = nil }

// SetPointsText parses and applies a point value from user text. On a parse
// failure the previous value is kept.
func (d *ChoiceDraft) SetPointsText(text string) error {
	v, err := ParsePoints(text)
	if err != nil {
		return err
	}
	d.Points = v
	return nil
}

// nonBlankChoices filters out blank choice rows, which the editing surface
// leaves behind freely.
func (d *ChoiceDraft) nonBlankChoices() []string {
	var out []string
	for _, c := range d.Choices {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}

// BuildItem converts the draft into an assessment item.
//
// Scoring policy: a question with exactly one correct answer worth exactly
// one point uses the match_correct template; everything else declares the
// full correct set and maps points evenly across it with map_response. With
// more than one correct answer the selection count is left unbounded
// (maxChoices zero).
func (d *ChoiceDraft) BuildItem(reg *qti.IDRegistry) (*qti.AssessmentItem, error) {
	texts := d.nonBlankChoices()
	if len(texts) < 2 {
		return nil, ErrTooFewChoices
	}
	if len(d.Correct) == 0 {
		return nil, ErrNoCorrectAnswer
	}
	for _, idx := range d.Correct {
		if idx < 0 || idx >= len(texts) {
			return nil, fmt.Errorf("%w: %d of %d choices", ErrAnswerIndexRange, idx+1, len(texts))
		}
	}

	item := qti.NewAssessmentItem(reg, d.Title)
	body := qti.NewItemBody(reg)

	ci := qti.NewChoiceInteraction(reg)
	if d.Prompt != "" {
		ci.Prompt = qti.NewPrompt(reg, d.Prompt)
	}
	if d.Shuffle {
		t := true
		ci.Shuffle = &t
	}
	for _, text := range texts {
		ci.Choices = append(ci.Choices, qti.NewSimpleChoice(reg, text))
	}

	if len(d.Correct) == 1 {
		if err := ci.SetCorrectChoice(d.Correct[0]); err != nil {
			return nil, err
		}
	} else {
		ids := make([]qti.UniqueIdentifier, len(d.Correct))
		for i, idx := range d.Correct {
			ids[i] = ci.Choices[idx].Identifier
		}
		resp, err := qti.TemplateCorrectResponse(ids...)
		if err != nil {
			return nil, err
		}
		ci.Response = resp
		unbounded := uint(0)
		ci.MaxChoices = &unbounded
	}

	if len(d.Correct) == 1 && d.Points == 1 {
		item.Processing = qti.TemplateMatchCorrect()
	} else {
		if err := ci.Response.ApplyMappingEven(d.Points); err != nil {
			return nil, err
		}
		item.Processing = qti.TemplateMapResponse()
	}

	item.OutcomeDeclarations = []*qti.OutcomeDeclaration{
		qti.TemplateScore(),
		qti.TemplateMaxScore(d.Points),
	}
	body.Append(ci)
	item.SetBody(body)
	return item, nil
}

// MatchRow is one association row of a match draft: the left side must be
// paired with the right side for credit.
type MatchRow struct {
	Left  string
	Right string
}

// MatchDraft is a matching question draft.
type MatchDraft struct {
	ID      string
	Title   string
	Prompt  string
	Points  float64
	Shuffle bool
	Rows    []MatchRow

	snapshot *MatchDraft
}

func NewMatchDraft() *MatchDraft {
	return &MatchDraft{ID: uuid.NewString(), Points: 1}
}

func (d *MatchDraft) DraftID() string { return d.ID }
func (d *MatchDraft) DraftKind() Kind { return KindMatch }

func (d *MatchDraft) clone() *MatchDraft {
	c := *d
	c.Rows = append([]MatchRow(nil), d.Rows...)
	c.snapshot = nil
	return &c
}

func (d *MatchDraft) BeginEdit() {
	if d.snapshot == nil {
		d.snapshot = d.clone()
	}
}

func (d *MatchDraft) CancelEdit() {
	if d.snapshot != nil {
		snap := d.snapshot
		*d = *snap
	}
}

func (d *MatchDraft) EndEdit() { d.snapshot = nil }

func (d *MatchDraft) SetPointsText(text string) error {
	v, err := ParsePoints(text)
	if err != nil {
		return err
	}
	d.Points = v
	return nil
}

// usableRows drops rows where both sides are blank; a row with one blank
// side is kept as entered.
func (d *MatchDraft) usableRows() []MatchRow {
	var out []MatchRow
	for _, r := range d.Rows {
		if strings.TrimSpace(r.Left) == "" && strings.TrimSpace(r.Right) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// BuildItem converts the draft into an assessment item. Match questions
// always score through an even point mapping and the map_response template;
// the dual-set structure means there is never a single correct value to
// match against.
func (d *MatchDraft) BuildItem(reg *qti.IDRegistry) (*qti.AssessmentItem, error) {
	rows := d.usableRows()
	if len(rows) == 0 {
		return nil, ErrNoAssociations
	}

	item := qti.NewAssessmentItem(reg, d.Title)
	body := qti.NewItemBody(reg)

	mi := qti.NewMatchInteraction(reg)
	if d.Prompt != "" {
		mi.Prompt = qti.NewPrompt(reg, d.Prompt)
	}
	if d.Shuffle {
		t := true
		mi.Shuffle = &t
	}
	maxAssoc := uint(len(rows))
	mi.MaxAssociations = &maxAssoc

	sources := &qti.SimpleMatchSet{}
	targets := &qti.SimpleMatchSet{}
	pairs := make([]qti.IdentifierPair, len(rows))
	for i, r := range rows {
		left := qti.NewSimpleAssociableChoice(reg, r.Left, 1)
		right := qti.NewSimpleAssociableChoice(reg, r.Right, 1)
		sources.Choices = append(sources.Choices, left)
		targets.Choices = append(targets.Choices, right)
		pairs[i] = qti.IdentifierPair{Source: left.Identifier, Target: right.Identifier}
	}
	mi.SourceSet = sources
	mi.TargetSet = targets

	resp, err := qti.TemplateDirectedPairResponse(pairs)
	if err != nil {
		return nil, err
	}
	if err := resp.ApplyMappingEven(d.Points); err != nil {
		return nil, err
	}
	mi.Response = resp
	item.Processing = qti.TemplateMapResponse()

	item.OutcomeDeclarations = []*qti.OutcomeDeclaration{
		qti.TemplateScore(),
		qti.TemplateMaxScore(d.Points),
	}
	body.Append(mi)
	item.SetBody(body)
	return item, nil
}
