package player

import "fmt"

// Player belongs to at most one team. Positions is an ordered list of
// position tags as entered in the CMS and may be empty.
type Player struct {
	ID           string
	Name         string
	TeamID       string
	Positions    []string
	JerseyNumber int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
