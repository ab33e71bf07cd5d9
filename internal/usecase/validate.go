package usecase

import (
	"fmt"
	"sort"
	"strings"
)

// requireFields fails when any named field is empty, listing every offender
// so the CMS editor sees the full picture in one delivery.
func requireFields(fields map[string]string) error {
	missing := make([]string, 0, len(fields))
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return fmt.Errorf("%w: missing required fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
}
