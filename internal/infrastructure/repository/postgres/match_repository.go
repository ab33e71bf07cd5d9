package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/acitysports/sports-backend/internal/domain/match"
	qb "github.com/acitysports/sports-backend/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("match_date DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("season_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_date DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by season query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

// UpsertWithChildren commits the match row and, when the caller passes
// non-nil child sets, replaces the match's lineups and events inside the
// same transaction. A transaction-scoped advisory lock on the match ID
// serializes concurrent deliveries for the same match so the replaced sets
// never interleave.
func (r *MatchRepository) UpsertWithChildren(ctx context.Context, item match.Match, lineups []match.Lineup, events []match.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert match: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", item.ID); err != nil {
		return fmt.Errorf("acquire match lock: %w", err)
	}

	if err := upsertMatchRow(ctx, tx, item); err != nil {
		return err
	}
	if lineups != nil {
		if err := replaceLineups(ctx, tx, item.ID, lineups); err != nil {
			return err
		}
	}
	if events != nil {
		if err := replaceEvents(ctx, tx, item.ID, events); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert match tx: %w", err)
	}
	return nil
}

func upsertMatchRow(ctx context.Context, tx *sqlx.Tx, item match.Match) error {
	builder, err := qb.InsertModel("matches", matchInsertModel{
		ID:            item.ID,
		Date:          item.Date,
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		SeasonID:      item.SeasonID,
		HomeScore:     item.HomeScore,
		AwayScore:     item.AwayScore,
		HomeFormation: item.HomeFormation,
		AwayFormation: item.AwayFormation,
		Division:      item.Division,
	})
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}

	query, args, err := builder.Suffix(`ON CONFLICT (id)
DO UPDATE SET
    match_date = EXCLUDED.match_date,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    season_id = EXCLUDED.season_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    home_formation = EXCLUDED.home_formation,
    away_formation = EXCLUDED.away_formation,
    division = EXCLUDED.division,
    updated_at = NOW(),
    deleted_at = NULL`).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}

	return nil
}

func replaceLineups(ctx context.Context, tx *sqlx.Tx, matchID string, lineups []match.Lineup) error {
	clearQuery, clearArgs, err := qb.Update("lineups").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear lineups query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear lineups: %w", err)
	}

	for _, row := range lineups {
		builder, err := qb.InsertModel("lineups", lineupInsertModel{
			MatchID:   row.MatchID,
			PlayerID:  row.PlayerID,
			TeamID:    row.TeamID,
			IsStarter: row.IsStarter,
		})
		if err != nil {
			return fmt.Errorf("build insert lineup query: %w", err)
		}

		query, args, err := builder.Suffix(`ON CONFLICT (match_id, player_id) WHERE deleted_at IS NULL
DO NOTHING`).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert lineup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert lineup match=%s player=%s: %w", row.MatchID, row.PlayerID, err)
		}
	}

	return nil
}

// replaceEvents hard-deletes and reinserts because events carry no natural
// key the store could upsert on.
func replaceEvents(ctx context.Context, tx *sqlx.Tx, matchID string, events []match.Event) error {
	clearQuery, clearArgs, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear match events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear match events: %w", err)
	}

	for _, row := range events {
		builder, err := qb.InsertModel("match_events", matchEventInsertModel{
			MatchID:        row.MatchID,
			PlayerID:       row.PlayerID,
			Minute:         row.Minute,
			Type:           row.Type,
			AssistPlayerID: row.AssistPlayerID,
			SubOffPlayerID: row.SubOffPlayerID,
			SubOnPlayerID:  row.SubOnPlayerID,
		})
		if err != nil {
			return fmt.Errorf("build insert match event query: %w", err)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert match event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match event match=%s player=%s: %w", row.MatchID, row.PlayerID, err)
		}
	}

	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx delete match: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("matches").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete match query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete match rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	clearLineups, clearLineupArgs, err := qb.Update("lineups").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("match_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build clear lineups on match delete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearLineups, clearLineupArgs...); err != nil {
		return false, fmt.Errorf("clear lineups on match delete: %w", err)
	}

	clearEvents, clearEventArgs, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("match_id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build clear match events on delete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearEvents, clearEventArgs...); err != nil {
		return false, fmt.Errorf("clear match events on delete: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete match tx: %w", err)
	}
	return true, nil
}

func (r *MatchRepository) ListLineups(ctx context.Context, matchID string) ([]match.Lineup, error) {
	query, args, err := qb.Select("*").From("lineups").
		Where(
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("is_starter DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	out := make([]match.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ListEvents(ctx context.Context, matchID string) ([]match.Event, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}

	out := make([]match.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchEventFromRow(row))
	}
	return out, nil
}
