package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// OffsetFormat tells how an Offset value is interpreted.
type OffsetFormat string

const (
	OffsetPercent OffsetFormat = "percent" // Fraction of the viewport height, in [0,1]
	OffsetPixels  OffsetFormat = "pixels"  // Absolute distance from the top of the viewport
)

// DefaultOffset is the trigger position used when none is configured or parsing fails.
var DefaultOffset = Offset{Format: OffsetPercent, Value: 0.5}

// Offset is a parsed trigger line position. Immutable once parsed.
type Offset struct {
	Format OffsetFormat `json:"format"`
	Value  float64      `json:"value"`
}

// Pixels resolves the offset to a distance from the top of a viewport of the given height.
func (o Offset) Pixels(viewportHeight float64) float64 {
	if o.Format == OffsetPixels {
		return o.Value
	}
	return o.Value * viewportHeight
}

// String renders the offset in the same notation ParseOffset accepts.
func (o Offset) String() string {
	if o.Format == OffsetPixels {
		return fmt.Sprintf("%gpx", o.Value)
	}
	return fmt.Sprintf("%g", o.Value)
}

// ParseOffset parses a trigger position: a fraction of the viewport height
// (number or numeric string) or a pixel distance ("120px").
//
// A nil input returns (nil, nil); callers treat it as "no value given".
// On failure the 50% fallback is returned together with ErrInvalidOffset.
// Out-of-range fractions are clamped and returned with ErrOffsetOutOfRange.
func ParseOffset(x any) (*Offset, error) {
	if x == nil {
		return nil, nil
	}

	fallback := DefaultOffset

	if s, ok := x.(string); ok {
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "px") && len(s) > 2 {
			v, err := cast.ToFloat64E(strings.TrimSpace(strings.TrimSuffix(s, "px")))
			if err != nil || !finite(v) {
				return &fallback, fmt.Errorf("%w: %q must be in 'px' format, falling back to %s", ErrInvalidOffset, s, fallback)
			}
			return &Offset{Format: OffsetPixels, Value: v}, nil
		}
		x = s
	}

	if _, isBool := x.(bool); isBool {
		return &fallback, fmt.Errorf("%w: %v, falling back to %s", ErrInvalidOffset, x, fallback)
	}

	v, err := cast.ToFloat64E(x)
	if err != nil || !finite(v) {
		return &fallback, fmt.Errorf("%w: %v, falling back to %s", ErrInvalidOffset, x, fallback)
	}

	switch {
	case v > 1:
		return &Offset{Format: OffsetPercent, Value: 1}, fmt.Errorf("%w: %g is greater than 1, falling back to 1", ErrOffsetOutOfRange, v)
	case v < 0:
		return &Offset{Format: OffsetPercent, Value: 0}, fmt.Errorf("%w: %g is lower than 0, falling back to 0", ErrOffsetOutOfRange, v)
	}
	return &Offset{Format: OffsetPercent, Value: v}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
