package accounting

import (
	"testing"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatSeconds(t *testing.T) {
	two := 2
	zero := 0
	cases := []struct {
		seconds int64
		format  domain.TimeFormat
		opts    FormatOptions
		want    string
	}{
		{27000, domain.FormatHHMM, FormatOptions{}, "7:30"},
		{27059, domain.FormatHHMM, FormatOptions{}, "7:30"},
		{300, domain.FormatHHMM, FormatOptions{IncludeUnit: true}, "0:05 h"},
		{-5400, domain.FormatHHMM, FormatOptions{}, "-1:30"},
		{27000, domain.FormatDecimal, FormatOptions{}, "7.5"},
		{27000, domain.FormatDecimal, FormatOptions{IncludeUnit: true, DecimalPlaces: &two}, "7.50 h"},
		{5400, domain.FormatDecimal, FormatOptions{DecimalPlaces: &zero}, "2"},
		{0, domain.FormatDecimal, FormatOptions{}, "0.0"},
		{-60, domain.FormatDecimal, FormatOptions{}, "0.0"},
		{-60, domain.FormatDecimal, FormatOptions{DecimalPlaces: &zero}, "0"},
		{-1800, domain.FormatDecimal, FormatOptions{}, "-0.5"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatSeconds(tc.seconds, tc.format, tc.opts), "%d %s", tc.seconds, tc.format)
	}
}
