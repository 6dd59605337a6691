package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrPercentEmpty is returned for empty input or input without a trailing %
	ErrPercentEmpty = errors.New("percentage string is empty or missing trailing %")
	// ErrPercentInvalid is returned when the value before the % is not a number
	ErrPercentInvalid = errors.New("percentage string is not a valid number")
)

// ParsePercent converts a display string like "+7.06%" or "-3.99%" into a
// signed float. Only the trailing % is stripped; the leading sign is part
// of the value and is handed to the float parser untouched.
func ParsePercent(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" || !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("%w: %q", ErrPercentEmpty, raw)
	}

	value, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrPercentInvalid, raw)
	}
	return value, nil
}
