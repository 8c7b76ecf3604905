package author

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Point values arrive as free text from the editing surface. Each rejection
// reason is a distinct error so the caller can tell the user exactly what was
// wrong with the input.
var (
	ErrPointsNotNumber = errors.New("points must be a number")
	ErrPointsNaN       = errors.New("points must not be NaN")
	ErrPointsInfinite  = errors.New("points must be finite")
	ErrPointsNegative  = errors.New("points must not be negative")
)

// ParsePoints parses a point value from user text. Negative zero counts as
// negative.
func ParsePoints(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrPointsNotNumber
	}
	switch {
	case math.IsNaN(v):
		return 0, ErrPointsNaN
	case math.IsInf(v, 0):
		return 0, ErrPointsInfinite
	case math.Signbit(v):
		return 0, ErrPointsNegative
	}
	return v, nil
}
