package usecase

// DocumentRef is a CMS pointer to another document. Entries without a _ref
// are tolerated and skipped by consumers.
type DocumentRef struct {
	Ref string `json:"_ref"`
}

// ImageField mirrors the CMS image shape; only the resolved asset URL is kept.
type ImageField struct {
	Asset struct {
		URL string `json:"url"`
	} `json:"asset"`
}

/// LineupsField carries a match's full lineup as of the edit: four arrays of
// player references split by side and starter role.
type LineupsField struct {
	HomeLineup      []DocumentRef `json:"homeLineup"`
	AwayLineup      []DocumentRef `json:"awayLineup"`
	HomeSubstitutes []DocumentRef `json:"homeSubstitutes"`
	AwaySubstitutes []DocumentRef `json:"awaySubstitutes"`
}

// EventField is one in-match event as delivered by the CMS.
type EventField struct {
	Player    DocumentRef `json:"player"`
	Minute    int         `json:"minute"`
	Type      string      `json:"type"`
	Assist    DocumentRef `json:"assist"`
	PlayerIn  DocumentRef `json:"playerIn"`
	PlayerOut DocumentRef `json:"playerOut"`
}

// WebhookDocument is the union of all CMS document shapes delivered to the
// webhook endpoint. Type selects which fields are meaningful; the rest stay
// zero-valued.
type WebhookDocument struct {
	Type string `json:"_type"`
	ID   string `json:"_id"`
	Rev  string `json:"_rev"`

	// teams
	Name     string     `json:"name"`
	Logo     ImageField `json:"logo"`
	Coach    string     `json:"coach"`
	Sport    string     `json:"sport"`
	Division string     `json:"division"`

	// players
	Team         DocumentRef `json:"team"`
	Positions    []string    `json:"positions"`
	JerseyNumber int         `json:"jerseyNumber"`

	// seasons
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	// fixtures
	Date          string        `json:"date"`
	HomeTeam      DocumentRef   `json:"homeTeam"`
	AwayTeam      DocumentRef   `json:"awayTeam"`
	Season        DocumentRef   `json:"season"`
	HomeScore     *int          `json:"homeScore"`
	AwayScore     *int          `json:"awayScore"`
	HomeFormation string        `json:"homeFormation"`
	AwayFormation string        `json:"awayFormation"`
	Lineups       *LineupsField `json:"Lineups"`
	Events        []EventField  `json:"events"`
}
