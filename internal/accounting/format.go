package accounting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timetrack/internal/domain"
)

const (
	defaultDecimalPlaces = 1
	unitMarker           = " h"
)

type FormatOptions struct {
	IncludeUnit bool
	// DecimalPlaces applies to the decimal format only; nil means one place.
	DecimalPlaces *int
}

// FormatSeconds renders a duration for display.
//
// "hh:mm" renders whole hours and zero-padded minutes (7:30). Negative values,
// such as an overtime deficit, render as the absolute value with a leading
// minus. "decimal" renders hours to the requested precision (7.5).
func FormatSeconds(seconds int64, format domain.TimeFormat, opts FormatOptions) string {
	var out string
	switch format {
	case domain.FormatDecimal:
		places := defaultDecimalPlaces
		if opts.DecimalPlaces != nil && *opts.DecimalPlaces >= 0 {
			places = *opts.DecimalPlaces
		}
		out = strconv.FormatFloat(float64(seconds)/3600, 'f', places, 64)
		// A deficit that rounds away renders unsigned.
		if strings.HasPrefix(out, "-") && strings.Trim(out[1:], "0.") == "" {
			out = out[1:]
		}
	default:
		sign := ""
		if seconds < 0 {
			sign = "-"
			seconds = -seconds
		}
		out = fmt.Sprintf("%s%d:%02d", sign, seconds/3600, (seconds%3600)/60)
	}
	if opts.IncludeUnit {
		out += unitMarker
	}
	return out
}
