package httpapi

import (
	"time"

	"github.com/acitysports/sports-backend/internal/domain/match"
	"github.com/acitysports/sports-backend/internal/domain/player"
	"github.com/acitysports/sports-backend/internal/domain/season"
	"github.com/acitysports/sports-backend/internal/domain/sport"
	"github.com/acitysports/sports-backend/internal/domain/team"
)

type sportDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type seasonDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

type teamDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LogoURL  string `json:"logoUrl,omitempty"`
	Coach    string `json:"coach,omitempty"`
	SportID  string `json:"sportId"`
	Division string `json:"division"`
}

type playerDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TeamID       string   `json:"teamId,omitempty"`
	Positions    []string `json:"positions"`
	JerseyNumber int      `json:"jerseyNumber"`
}

type matchDTO struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	HomeTeamID    string `json:"homeTeamId"`
	AwayTeamID    string `json:"awayTeamId"`
	SeasonID      string `json:"seasonId"`
	HomeScore     *int   `json:"homeScore"`
	AwayScore     *int   `json:"awayScore"`
	HomeFormation string `json:"homeFormation,omitempty"`
	AwayFormation string `json:"awayFormation,omitempty"`
	Division      string `json:"division"`
}

type lineupDTO struct {
	MatchID   string `json:"matchId"`
	PlayerID  string `json:"playerId"`
	TeamID    string `json:"teamId"`
	IsStarter bool   `json:"isStarter"`
}

type eventDTO struct {
	MatchID        string `json:"matchId"`
	PlayerID       string `json:"playerId"`
	Minute         int    `json:"minute"`
	Type           string `json:"type"`
	AssistPlayerID string `json:"assistPlayerId,omitempty"`
	SubOffPlayerID string `json:"subOffPlayerId,omitempty"`
	SubOnPlayerID  string `json:"subOnPlayerId,omitempty"`
}

func sportToDTO(v sport.Sport) sportDTO {
	return sportDTO{
		ID:   v.ID,
		Name: v.Name,
	}
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{
		ID:        v.ID,
		Title:     v.Title,
		StartDate: formatDate(v.StartDate),
		EndDate:   formatDate(v.EndDate),
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		Name:     v.Name,
		LogoURL:  v.LogoURL,
		Coach:    v.Coach,
		SportID:  v.SportID,
		Division: v.Division,
	}
}

func playerToDTO(v player.Player) playerDTO {
	positions := v.Positions
	if positions == nil {
		positions = []string{}
	}

	return playerDTO{
		ID:           v.ID,
		Name:         v.Name,
		TeamID:       v.TeamID,
		Positions:    positions,
		JerseyNumber: v.JerseyNumber,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:            v.ID,
		Date:          v.Date.UTC().Format(time.RFC3339),
		HomeTeamID:    v.HomeTeamID,
		AwayTeamID:    v.AwayTeamID,
		SeasonID:      v.SeasonID,
		HomeScore:     v.HomeScore,
		AwayScore:     v.AwayScore,
		HomeFormation: v.HomeFormation,
		AwayFormation: v.AwayFormation,
		Division:      v.Division,
	}
}

func lineupToDTO(v match.Lineup) lineupDTO {
	return lineupDTO{
		MatchID:   v.MatchID,
		PlayerID:  v.PlayerID,
		TeamID:    v.TeamID,
		IsStarter: v.IsStarter,
	}
}

func eventToDTO(v match.Event) eventDTO {
	return eventDTO{
		MatchID:        v.MatchID,
		PlayerID:       v.PlayerID,
		Minute:         v.Minute,
		Type:           v.Type,
		AssistPlayerID: v.AssistPlayerID,
		SubOffPlayerID: v.SubOffPlayerID,
		SubOnPlayerID:  v.SubOnPlayerID,
	}
}

func formatDate(v *time.Time) *string {
	if v == nil {
		return nil
	}
	formatted := v.UTC().Format(time.RFC3339)
	return &formatted
}
