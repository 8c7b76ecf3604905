package author

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qtiforge/qtiforge/internal/qti/parser"
)

// DraftsFromPackage turns parsed package items back into editable drafts.
// Unsupported items are skipped with a warning rather than failing the whole
// import.
func DraftsFromPackage(items []parser.ParsedItem) ([]Draft, error) {
	var drafts []Draft
	for _, it := range items {
		switch it.Kind {
		case parser.KindChoice:
			d, err := choiceDraftFromItem(it)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", it.ID, err)
			}
			drafts = append(drafts, d)
		case parser.KindMatch:
			d, err := matchDraftFromItem(it)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", it.ID, err)
			}
			drafts = append(drafts, d)
		default:
			log.Warn().Str("item", it.ID).Msg("skipping item with unsupported interaction")
		}
	}
	return drafts, nil
}

func choiceDraftFromItem(it parser.ParsedItem) (*ChoiceDraft, error) {
	d := NewChoiceDraft()
	d.Title = it.Title
	d.Prompt = it.Prompt
	d.Points = it.Points

	indexByID := make(map[string]int, len(it.Choices))
	for i, c := range it.Choices {
		d.Choices = append(d.Choices, c.Text)
		indexByID[c.ID] = i
	}
	for _, id := range it.CorrectIDs {
		idx, ok := indexByID[id]
		if !ok {
			return nil, fmt.Errorf("correct response %q references no choice", id)
		}
		d.Correct = append(d.Correct, idx)
	}
	if len(d.Correct) == 0 {
		return nil, ErrNoCorrectAnswer
	}
	return d, nil
}

func matchDraftFromItem(it parser.ParsedItem) (*MatchDraft, error) {
	d := NewMatchDraft()
	d.Title = it.Title
	d.Prompt = it.Prompt
	d.Points = it.Points

	sourceText := make(map[string]string, len(it.SourceChoices))
	for _, c := range it.SourceChoices {
		sourceText[c.ID] = c.Text
	}
	targetText := make(map[string]string, len(it.TargetChoices))
	for _, c := range it.TargetChoices {
		targetText[c.ID] = c.Text
	}
	for _, p := range it.CorrectPairs {
		left, ok := sourceText[p[0]]
		if !ok {
			return nil, fmt.Errorf("pair source %q references no choice", p[0])
		}
		right, ok := targetText[p[1]]
		if !ok {
			return nil, fmt.Errorf("pair target %q references no choice", p[1])
		}
		d.Rows = append(d.Rows, MatchRow{Left: left, Right: right})
	}
	if len(d.Rows) == 0 {
		return nil, ErrNoAssociations
	}
	return d, nil
}
