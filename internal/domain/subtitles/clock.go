package subtitles

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for time values that cannot be rendered as a
// caption timestamp.
var ErrInvalidInput = errors.New("invalid input")

// FormatClock renders seconds as an SRT timestamp (HH:MM:SS,mmm).
//
// Every field is truncated, never rounded, so 59.9995 renders as
// 00:00:59,999. Hours are not wrapped at 24 and widen past two digits.
func FormatClock(sec float64) (string, error) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return "", fmt.Errorf("%w: timestamp %v is not finite", ErrInvalidInput, sec)
	}
	if sec < 0 {
		return "", fmt.Errorf("%w: negative timestamp %v", ErrInvalidInput, sec)
	}
	h := int64(math.Floor(sec / 3600))
	m := int64(math.Floor(math.Mod(sec, 3600) / 60))
	s := int64(math.Floor(math.Mod(sec, 60)))
	ms := int64(math.Floor((sec - math.Floor(sec)) * 1000))
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms), nil
}
