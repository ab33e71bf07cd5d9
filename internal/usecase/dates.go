package usecase

import (
	"fmt"
	"strings"
	"time"
)

var cmsDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseCMSDate accepts the date shapes the CMS emits. Empty input maps to
// nil, not an error; callers decide whether the field is required.
func parseCMSDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range cmsDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}

	return nil, fmt.Errorf("%w: unrecognized date %q", ErrInvalidInput, value)
}
