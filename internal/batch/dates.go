package batch

import (
	"fmt"
	"strings"
	"time"
)

// The accepted textual date layouts, tried in order. Matches the formats the
// batch files have historically used.
var dateLayouts = []string{
	"2006-01-02",          // 2025-12-31
	"01/02/2006",          // 12/31/2025
	"02/01/2006",          // 31/12/2025
	"2006/01/02",          // 2025/12/31
	"01-02-2006",          // 12-31-2025
	"02-01-2006",          // 31-12-2025
	"2006-01-02T15:04:05", // 2025-12-31T23:59:59
	"2006-01-02T15:04:05Z",
}

// ParseDate parses one of the accepted layouts. Empty input is not an error
// and yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("could not parse date %q", value)
}
