package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/acitysports/sports-backend/internal/domain/sport"
	qb "github.com/acitysports/sports-backend/internal/platform/querybuilder"
)

type SportRepository struct {
	db *sqlx.DB
}

func NewSportRepository(db *sqlx.DB) *SportRepository {
	return &SportRepository{db: db}
}

func (r *SportRepository) List(ctx context.Context) ([]sport.Sport, error) {
	query, args, err := qb.Select("*").From("sports").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list sports query: %w", err)
	}

	var rows []sportTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}

	out := make([]sport.Sport, 0, len(rows))
	for _, row := range rows {
		out = append(out, sportFromRow(row))
	}
	return out, nil
}

func (r *SportRepository) GetByID(ctx context.Context, id string) (sport.Sport, bool, error) {
	query, args, err := qb.Select("*").From("sports").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return sport.Sport{}, false, fmt.Errorf("build get sport query: %w", err)
	}

	var row sportTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return sport.Sport{}, false, nil
		}
		return sport.Sport{}, false, fmt.Errorf("get sport: %w", err)
	}

	return sportFromRow(row), true, nil
}

func (r *SportRepository) GetByName(ctx context.Context, name string) (sport.Sport, bool, error) {
	query, args, err := qb.Select("*").From("sports").
		Where(
			qb.ILike("name", name),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return sport.Sport{}, false, fmt.Errorf("build get sport by name query: %w", err)
	}

	var row sportTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return sport.Sport{}, false, nil
		}
		return sport.Sport{}, false, fmt.Errorf("get sport by name: %w", err)
	}

	return sportFromRow(row), true, nil
}

func (r *SportRepository) Create(ctx context.Context, item sport.Sport) error {
	builder, err := qb.InsertModel("sports", sportInsertModel{ID: item.ID, Name: item.Name})
	if err != nil {
		return fmt.Errorf("build create sport query: %w", err)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build create sport query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create sport: %w", err)
	}

	return nil
}

func (r *SportRepository) Update(ctx context.Context, item sport.Sport) error {
	query, args, err := qb.Update("sports").
		Set("name", item.Name).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update sport query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update sport: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update sport: no row matched id %s", item.ID)
	}

	return nil
}

func (r *SportRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update("sports").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete sport query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete sport: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete sport rows affected: %w", err)
	}

	return affected > 0, nil
}
