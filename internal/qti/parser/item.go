package parser

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
)

type assessmentItem struct {
	XMLName       xml.Name            `xml:"assessmentItem"`
	Identifier    string              `xml:"identifier,attr"`
	Title         string              `xml:"title,attr"`
	ResponseDecls []responseDecl      `xml:"responseDeclaration"`
	OutcomeDecls  []outcomeDecl       `xml:"outcomeDeclaration"`
	Body          itemBody            `xml:"itemBody"`
	Processing    *responseProcessing `xml:"responseProcessing"`
}

type responseDecl struct {
	Identifier  string `xml:"identifier,attr"`
	Cardinality string `xml:"cardinality,attr"`
	BaseType    string `xml:"baseType,attr"`
	Correct     struct {
		Values []string `xml:"value"`
	} `xml:"correctResponse"`
	Mapping *mapping `xml:"mapping"`
}

type mapping struct {
	DefaultValue float64    `xml:"defaultValue,attr"`
	Entries      []mapEntry `xml:"mapEntry"`
}

type mapEntry struct {
	MapKey      string  `xml:"mapKey,attr"`
	MappedValue float64 `xml:"mappedValue,attr"`
}

type outcomeDecl struct {
	Identifier string `xml:"identifier,attr"`
	Default    string `xml:"defaultValue>value"`
}

type itemBody struct {
	Choice *choiceInteraction `xml:"choiceInteraction"`
	Match  *matchInteraction  `xml:"matchInteraction"`
}

type choiceInteraction struct {
	ResponseIdentifier string         `xml:"responseIdentifier,attr"`
	MaxChoices         *uint          `xml:"maxChoices,attr"`
	Prompt             string         `xml:"prompt"`
	Choices            []simpleChoice `xml:"simpleChoice"`
}

type matchInteraction struct {
	ResponseIdentifier string           `xml:"responseIdentifier,attr"`
	Prompt             string           `xml:"prompt"`
	Sets               []simpleMatchSet `xml:"simpleMatchSet"`
}

type simpleMatchSet struct {
	Choices []simpleChoice `xml:"simpleAssociableChoice"`
}

type simpleChoice struct {
	Identifier string `xml:"identifier,attr"`
	Text       string `xml:",chardata"`
}

type responseProcessing struct {
	Template string `xml:"template,attr"`
}

// InteractionKind discriminates what a parsed item contains.
type InteractionKind string

const (
	KindChoice      InteractionKind = "choice"
	KindMatch       InteractionKind = "match"
	KindUnsupported InteractionKind = "unsupported"
)

// ParsedItem is the import-side view of one question: just enough structure
// to rebuild an editable draft.
type ParsedItem struct {
	ID     string
	Title  string
	Prompt string
	Kind   InteractionKind
	Points float64

	// Choice questions.
	Choices    []ParsedChoice
	CorrectIDs []string
	MaxChoices *uint

	// Match questions.
	SourceChoices []ParsedChoice
	TargetChoices []ParsedChoice
	CorrectPairs  [][2]string
}

type ParsedChoice struct {
	ID   string
	Text string
}

// ParseItemFile parses one item XML file referenced by the manifest.
func ParseItemFile(baseDir, rel string) (ParsedItem, error) {
	b, err := os.ReadFile(filepath.Join(baseDir, rel))
	if err != nil {
		return ParsedItem{}, err
	}
	var it assessmentItem
	if err := xml.Unmarshal(b, &it); err != nil {
		return ParsedItem{}, err
	}

	pi := ParsedItem{
		ID:     it.Identifier,
		Title:  it.Title,
		Points: 1,
	}

	var resp *responseDecl
	if len(it.ResponseDecls) > 0 {
		resp = &it.ResponseDecls[0]
	}
	if resp != nil && resp.Mapping != nil {
		var total float64
		for _, e := range resp.Mapping.Entries {
			total += e.MappedValue
		}
		pi.Points = total
	}

	switch {
	case it.Body.Choice != nil:
		pi.Kind = KindChoice
		pi.Prompt = strings.TrimSpace(it.Body.Choice.Prompt)
		pi.MaxChoices = it.Body.Choice.MaxChoices
		for _, c := range it.Body.Choice.Choices {
			pi.Choices = append(pi.Choices, ParsedChoice{ID: c.Identifier, Text: strings.TrimSpace(c.Text)})
		}
		if resp != nil {
			pi.CorrectIDs = resp.Correct.Values
		}
	case it.Body.Match != nil && len(it.Body.Match.Sets) == 2:
		pi.Kind = KindMatch
		pi.Prompt = strings.TrimSpace(it.Body.Match.Prompt)
		for _, c := range it.Body.Match.Sets[0].Choices {
			pi.SourceChoices = append(pi.SourceChoices, ParsedChoice{ID: c.Identifier, Text: strings.TrimSpace(c.Text)})
		}
		for _, c := range it.Body.Match.Sets[1].Choices {
			pi.TargetChoices = append(pi.TargetChoices, ParsedChoice{ID: c.Identifier, Text: strings.TrimSpace(c.Text)})
		}
		if resp != nil {
			for _, v := range resp.Correct.Values {
				parts := strings.Fields(v)
				if len(parts) == 2 {
					pi.CorrectPairs = append(pi.CorrectPairs, [2]string{parts[0], parts[1]})
				}
			}
		}
	default:
		pi.Kind = KindUnsupported
	}
	return pi, nil
}
