package author

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSVChoice(t *testing.T) {
	in := `MC,,2,Which are primary colors?,"1,3",red,green,blue
MC,,1,Capital of France?,1,Paris,Lyon`
	drafts, err := ImportCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	first := drafts[0]
	assert.Equal(t, "Which are primary colors?", first.Prompt)
	assert.Equal(t, 2.0, first.Points)
	assert.Equal(t, []string{"red", "green", "blue"}, first.Choices)
	assert.Equal(t, []int{0, 2}, first.Correct)

	second := drafts[1]
	assert.Equal(t, []int{0}, second.Correct)
	assert.Equal(t, 1.0, second.Points)
}

func TestImportCSVTrueFalse(t *testing.T) {
	// Code 0 means the statement is true: correct choice is index 0.
	drafts, err := ImportCSV(strings.NewReader("TF,,1,The sky is blue.,0\n"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, []string{"True", "False"}, drafts[0].Choices)
	assert.Equal(t, []int{0}, drafts[0].Correct)

	// Any other code means false: correct choice is index 1.
	drafts, err = ImportCSV(strings.NewReader("TF,,1,Pigs fly.,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, drafts[0].Correct)
}

func TestImportCSVErrors(t *testing.T) {
	_, err := ImportCSV(strings.NewReader("MC,,abc,Prompt?,1,a,b\n"))
	assert.ErrorIs(t, err, ErrPointsNotNumber)

	_, err = ImportCSV(strings.NewReader("MC,,1,Prompt?,x,a,b\n"))
	assert.ErrorIs(t, err, ErrMalformedAnswerList)

	_, err = ImportCSV(strings.NewReader("MC,,1,Prompt?,9,a,b\n"))
	assert.ErrorIs(t, err, ErrAnswerIndexRange)

	_, err = ImportCSV(strings.NewReader("MC,,1,Prompt?\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
}

func TestImportCSVEmpty(t *testing.T) {
	drafts, err := ImportCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, drafts)
}
