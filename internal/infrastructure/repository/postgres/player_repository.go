package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/acitysports/sports-backend/internal/domain/player"
	qb "github.com/acitysports/sports-backend/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("team_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("jersey_number", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by team query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

// ListBySport joins through teams because a player's sport is derived from
// the team it belongs to.
func (r *PlayerRepository) ListBySport(ctx context.Context, sportID string) ([]player.Player, error) {
	query, args, err := qb.Select(
		"players.id", "players.name", "players.team_id",
		"players.positions", "players.jersey_number",
		"players.created_at", "players.updated_at", "players.deleted_at",
	).
		From("players JOIN teams ON teams.id = players.team_id").
		Where(
			qb.Eq("teams.sport_id", sportID),
			qb.IsNull("players.deleted_at"),
			qb.IsNull("teams.deleted_at"),
		).
		OrderBy("players.name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by sport query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	builder, err := qb.InsertModel("players", playerInsertModel{
		ID:           item.ID,
		Name:         item.Name,
		TeamID:       item.TeamID,
		Positions:    pq.StringArray(item.Positions),
		JerseyNumber: item.JerseyNumber,
	})
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	query, args, err := builder.Suffix(`ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    team_id = EXCLUDED.team_id,
    positions = EXCLUDED.positions,
    jersey_number = EXCLUDED.jersey_number,
    updated_at = NOW(),
    deleted_at = NULL`).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update("players").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete player rows affected: %w", err)
	}

	return affected > 0, nil
}
