package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/acitysports/sports-backend/internal/domain/match"
	"github.com/acitysports/sports-backend/internal/domain/player"
	"github.com/acitysports/sports-backend/internal/domain/season"
	"github.com/acitysports/sports-backend/internal/domain/sport"
	"github.com/acitysports/sports-backend/internal/domain/team"
)

type sportTableModel struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type sportInsertModel struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func sportFromRow(row sportTableModel) sport.Sport {
	return sport.Sport{ID: row.ID, Name: row.Name}
}

type seasonTableModel struct {
	ID        string     `db:"id"`
	Title     string     `db:"title"`
	StartDate *time.Time `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type seasonInsertModel struct {
	ID        string     `db:"id"`
	Title     string     `db:"title"`
	StartDate *time.Time `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:        row.ID,
		Title:     row.Title,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
	}
}

type teamTableModel struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	LogoURL   string     `db:"logo_url"`
	Coach     string     `db:"coach"`
	SportID   string     `db:"sport_id"`
	Division  string     `db:"division"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	LogoURL  string `db:"logo_url"`
	Coach    string `db:"coach"`
	SportID  string `db:"sport_id"`
	Division string `db:"division"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.ID,
		Name:     row.Name,
		LogoURL:  row.LogoURL,
		Coach:    row.Coach,
		SportID:  row.SportID,
		Division: row.Division,
	}
}

type playerTableModel struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	TeamID       string         `db:"team_id"`
	Positions    pq.StringArray `db:"positions"`
	JerseyNumber int            `db:"jersey_number"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	TeamID       string         `db:"team_id"`
	Positions    pq.StringArray `db:"positions"`
	JerseyNumber int            `db:"jersey_number"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		Name:         row.Name,
		TeamID:       row.TeamID,
		Positions:    append([]string(nil), row.Positions...),
		JerseyNumber: row.JerseyNumber,
	}
}

type matchTableModel struct {
	ID            string     `db:"id"`
	Date          time.Time  `db:"match_date"`
	HomeTeamID    string     `db:"home_team_id"`
	AwayTeamID    string     `db:"away_team_id"`
	SeasonID      string     `db:"season_id"`
	HomeScore     *int       `db:"home_score"`
	AwayScore     *int       `db:"away_score"`
	HomeFormation string     `db:"home_formation"`
	AwayFormation string     `db:"away_formation"`
	Division      string     `db:"division"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type matchInsertModel struct {
	ID            string    `db:"id"`
	Date          time.Time `db:"match_date"`
	HomeTeamID    string    `db:"home_team_id"`
	AwayTeamID    string    `db:"away_team_id"`
	SeasonID      string    `db:"season_id"`
	HomeScore     *int      `db:"home_score"`
	AwayScore     *int      `db:"away_score"`
	HomeFormation string    `db:"home_formation"`
	AwayFormation string    `db:"away_formation"`
	Division      string    `db:"division"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.ID,
		Date:          row.Date,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		SeasonID:      row.SeasonID,
		HomeScore:     row.HomeScore,
		AwayScore:     row.AwayScore,
		HomeFormation: row.HomeFormation,
		AwayFormation: row.AwayFormation,
		Division:      row.Division,
	}
}

type lineupTableModel struct {
	ID        int64      `db:"id"`
	MatchID   string     `db:"match_id"`
	PlayerID  string     `db:"player_id"`
	TeamID    string     `db:"team_id"`
	IsStarter bool       `db:"is_starter"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type lineupInsertModel struct {
	MatchID   string `db:"match_id"`
	PlayerID  string `db:"player_id"`
	TeamID    string `db:"team_id"`
	IsStarter bool   `db:"is_starter"`
}

func lineupFromRow(row lineupTableModel) match.Lineup {
	return match.Lineup{
		MatchID:   row.MatchID,
		PlayerID:  row.PlayerID,
		TeamID:    row.TeamID,
		IsStarter: row.IsStarter,
	}
}

type matchEventTableModel struct {
	ID             int64     `db:"id"`
	MatchID        string    `db:"match_id"`
	PlayerID       string    `db:"player_id"`
	Minute         int       `db:"minute"`
	Type           string    `db:"event_type"`
	AssistPlayerID string    `db:"assist_player_id"`
	SubOffPlayerID string    `db:"sub_off_player_id"`
	SubOnPlayerID  string    `db:"sub_on_player_id"`
	CreatedAt      time.Time `db:"created_at"`
}

type matchEventInsertModel struct {
	MatchID        string `db:"match_id"`
	PlayerID       string `db:"player_id"`
	Minute         int    `db:"minute"`
	Type           string `db:"event_type"`
	AssistPlayerID string `db:"assist_player_id"`
	SubOffPlayerID string `db:"sub_off_player_id"`
	SubOnPlayerID  string `db:"sub_on_player_id"`
}

func matchEventFromRow(row matchEventTableModel) match.Event {
	return match.Event{
		MatchID:        row.MatchID,
		PlayerID:       row.PlayerID,
		Minute:         row.Minute,
		Type:           row.Type,
		AssistPlayerID: row.AssistPlayerID,
		SubOffPlayerID: row.SubOffPlayerID,
		SubOnPlayerID:  row.SubOnPlayerID,
	}
}
