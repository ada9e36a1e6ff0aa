package extractor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"VaultPulse/internal/model"
)

// parseNumber converts dashboard text like `+$OX 1,234.56` or `$OX 1.2m` into
// a float. Assumes en-US formatting: comma thousands separators, dot decimal
// point, optional k/m magnitude suffix.
func parseNumber(raw, kind string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty text", ErrValueUnparseable)
	}

	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")

	for _, tok := range []string{"\"", "$OX", "$", "USD", "OX", ",", " ", "\u00a0"} {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.TrimPrefix(s, "+")

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "m"), strings.HasSuffix(s, "M"):
		mult = 1e6
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "k"), strings.HasSuffix(s, "K"):
		mult = 1e3
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrValueUnparseable, raw)
	}
	v *= mult
	if kind == "percent" || percent {
		v /= 100
	}
	return v, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseDay converts dashboard date text into a calendar day.
func parseDay(raw string) (model.Date, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.NewDate(t), nil
		}
	}
	return "", fmt.Errorf("%w: date %q", ErrValueUnparseable, raw)
}
