package sport

import "fmt"

// Sport is a discipline (e.g. Soccer, Basketball) teams compete in.
// The ID is the CMS document ID and doubles as the relational primary key.
type Sport struct {
	ID   string
	Name string
}

func (s Sport) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("sport name is required")
	}

	return nil
}
