package season

import (
	"fmt"
	"time"
)

// Season is one competition period (e.g. "2024/2025").
// Start and end dates are optional, editors sometimes publish the title first.
type Season struct {
	ID        string
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.Title == "" {
		return fmt.Errorf("season title is required")
	}

	return nil
}
