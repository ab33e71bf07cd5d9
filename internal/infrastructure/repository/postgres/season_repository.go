package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/acitysports/sports-backend/internal/domain/season"
	qb "github.com/acitysports/sports-backend/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.IsNull("deleted_at")).
		OrderBy("start_date DESC NULLS LAST", "title").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) Upsert(ctx context.Context, item season.Season) error {
	builder, err := qb.InsertModel("seasons", seasonInsertModel{
		ID:        item.ID,
		Title:     item.Title,
		StartDate: item.StartDate,
		EndDate:   item.EndDate,
	})
	if err != nil {
		return fmt.Errorf("build upsert season query: %w", err)
	}

	query, args, err := builder.Suffix(`ON CONFLICT (id)
DO UPDATE SET
    title = EXCLUDED.title,
    start_date = EXCLUDED.start_date,
    end_date = EXCLUDED.end_date,
    updated_at = NOW(),
    deleted_at = NULL`).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season: %w", err)
	}

	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update("seasons").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete season query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete season: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete season rows affected: %w", err)
	}

	return affected > 0, nil
}
