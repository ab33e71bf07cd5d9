package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	EventGoal         = "goal"
	EventYellowCard   = "yellow-card"
	EventRedCard      = "red-card"
	EventSubstitution = "substitution"
)

// Match is one fixture between two teams within a season. Scores stay nil
// until the match has been played; formations are free-text and optional.
type Match struct {
	ID            string
	Date          time.Time
	HomeTeamID    string
	AwayTeamID    string
	SeasonID      string
	HomeScore     *int
	AwayScore     *int
	HomeFormation string
	AwayFormation string
	Division      string
}

// Lineup ties a player to one side of a match. A match's lineup set is a
// derived view of the CMS document and is always replaced as a whole.
type Lineup struct {
	MatchID   string
	PlayerID  string
	TeamID    string
	IsStarter bool
}

// Event is one in-match occurrence. Assist, SubOff and SubOn are optional
// player references depending on the event type.
type Event struct {
	MatchID        string
	PlayerID       string
	Minute         int
	Type           string
	AssistPlayerID string
	SubOffPlayerID string
	SubOnPlayerID  string
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match team ids are required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}

	return nil
}

// NormalizeEventType lowers and trims a CMS event type tag. Unknown tags are
// returned as-is so the caller can decide whether to keep or skip them.
func NormalizeEventType(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func IsKnownEventType(value string) bool {
	switch NormalizeEventType(value) {
	case EventGoal, EventYellowCard, EventRedCard, EventSubstitution:
		return true
	default:
		return false
	}
}
