package author

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// CSV record layout, one question per record:
//
//	type, (unused), points, prompt, correct-answer-indices, choice1, choice2, ...
//
// correct-answer-indices is a comma-separated list of 1-based indices into
// the trailing choice columns. A "TF" record carries no choice columns; it
// expands to a fixed True/False pair.
const (
	csvColType    = 0
	csvColPoints  = 2
	csvColPrompt  = 3
	csvColAnswers = 4
	csvMinFields  = 5
)

// ImportCSV reads question records from r and returns one choice draft per
// record. A bad record fails the whole import with its record number; no
// partial draft list is returned.
func ImportCSV(r io.Reader) ([]*ChoiceDraft, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var drafts []*ChoiceDraft
	for recNum := 1; ; recNum++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", recNum, err)
		}
		d, err := draftFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", recNum, err)
		}
		drafts = append(drafts, d)
	}
	log.Info().Int("questions", len(drafts)).Msg("csv import complete")
	return drafts, nil
}

func draftFromRecord(rec []string) (*ChoiceDraft, error) {
	if len(rec) < csvMinFields {
		return nil, fmt.Errorf("expected at least %d fields, got %d", csvMinFields, len(rec))
	}

	d := NewChoiceDraft()
	d.Prompt = rec[csvColPrompt]
	d.Title = rec[csvColPrompt]

	points, err := ParsePoints(rec[csvColPoints])
	if err != nil {
		return nil, err
	}
	d.Points = points

	answers := rec[csvColAnswers]
	if strings.TrimSpace(rec[csvColType]) == "TF" {
		// True/false rows store a 0/1 code rather than an index list. The
		// historical remap is: code "0" means the first choice (True) is
		// correct, anything else means the second (False).
		if strings.TrimSpace(rec[csvColAnswers]) == "0" {
			answers = "1"
		} else {
			answers = "2"
		}
		d.Choices = []string{"True", "False"}
	} else {
		d.Choices = append([]string(nil), rec[csvMinFields:]...)
	}

	correct, err := parseAnswerList(answers, len(d.Choices))
	if err != nil {
		return nil, err
	}
	d.Correct = correct
	return d, nil
}

// parseAnswerList parses a comma-separated list of 1-based choice indices
// and returns them zero-based.
func parseAnswerList(text string, choiceCount int) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedAnswerList, tok)
		}
		if n < 1 || n > choiceCount {
			return nil, fmt.Errorf("%w: %d of %d choices", ErrAnswerIndexRange, n, choiceCount)
		}
		out = append(out, n-1)
	}
	if len(out) == 0 {
		return nil, ErrNoCorrectAnswer
	}
	return out, nil
}
