package team

import (
	"fmt"
	"strings"
)

const (
	DivisionMen   = "MEN"
	DivisionWomen = "WOMEN"
	DivisionMixed = "MIXED"
)

// Team is a club mirrored from the CMS. LogoURL and Coach are optional.
type Team struct {
	ID       string
	Name     string
	LogoURL  string
	Coach    string
	SportID  string
	Division string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.SportID == "" {
		return fmt.Errorf("team sport id is required")
	}

	return nil
}

// NormalizeDivision maps free-text division labels from CMS documents to the
// fixed set. Unrecognized values fall back to MEN.
func NormalizeDivision(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "men":
		return DivisionMen
	case "women":
		return DivisionWomen
	case "mixed":
		return DivisionMixed
	default:
		return DivisionMen
	}
}
