package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints(t *testing.T) {
	v, err := ParsePoints("1.5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = ParsePoints(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = ParsePoints("0")
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestParsePointsRejections(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"abc", ErrPointsNotNumber},
		{"", ErrPointsNotNumber},
		{"NaN", ErrPointsNaN},
		{"Inf", ErrPointsInfinite},
		{"-Inf", ErrPointsInfinite},
		{"-1", ErrPointsNegative},
		{"-0", ErrPointsNegative},
	}
	for _, tc := range cases {
		_, err := ParsePoints(tc.in)
		assert.ErrorIs(t, err, tc.want, "input %q", tc.in)
	}
}
