package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectToSQL(t *testing.T) {
	sql, args, err := Select("id", "name").
		From("sports").
		Where(Eq("id", "sport-1"), IsNull("deleted_at")).
		OrderBy("name ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "SELECT id, name FROM sports WHERE id = $1 AND deleted_at IS NULL ORDER BY name ASC LIMIT 10"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"sport-1"}) {
		t.Fatalf("args = %v, want [sport-1]", args)
	}
}

func TestSelectILike(t *testing.T) {
	sql, args, err := Select("id").
		From("sports").
		Where(ILike("name", "Basketball"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "SELECT id FROM sports WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"Basketball"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestSelectInCondition(t *testing.T) {
	sql, args, err := Select("id").
		From("players").
		Where(In("team_id", []any{"team-1", "team-2"})).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "SELECT id FROM players WHERE team_id IN ($1, $2)"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want 2 values", args)
	}
}

func TestSelectInConditionEmpty(t *testing.T) {
	sql, _, err := Select("id").
		From("players").
		Where(In("team_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}
	if sql != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("sql = %q", sql)
	}
}

func TestSelectMissingTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("sports").
		Columns("id", "name").
		Values("sport-1", "Futsal").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, deleted_at = NULL").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "INSERT INTO sports (id, name) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, deleted_at = NULL"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"sport-1", "Futsal"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertMultiRow(t *testing.T) {
	sql, args, err := InsertInto("lineups").
		Columns("match_id", "player_id").
		Values("match-1", "player-1").
		Values("match-1", "player-2").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "INSERT INTO lineups (match_id, player_id) VALUES ($1, $2), ($3, $4)"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 4 {
		t.Fatalf("args = %v, want 4 values", args)
	}
}

func TestInsertRowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("lineups").
		Columns("match_id", "player_id").
		Values("match-1").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row arity mismatch")
	}
}

func TestUpdateToSQL(t *testing.T) {
	sql, args, err := Update("teams").
		Set("name", "Eagles").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "team-1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "UPDATE teams SET name = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"Eagles", "team-1"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestDeleteToSQL(t *testing.T) {
	sql, args, err := DeleteFrom("match_events").
		Where(Eq("match_id", "match-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "DELETE FROM match_events WHERE match_id = $1"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"match-1"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestDeleteWithoutWhere(t *testing.T) {
	if _, _, err := DeleteFrom("match_events").ToSQL(); err == nil {
		t.Fatal("expected error for delete without conditions")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		Ignored string `db:"-"`
	}

	builder, err := InsertModel("sports", row{ID: "sport-1", Name: "Futsal", Ignored: "x"})
	if err != nil {
		t.Fatalf("InsertModel returned error: %v", err)
	}

	sql, args, err := builder.ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}
	if sql != "INSERT INTO sports (id, name) VALUES ($1, $2)" {
		t.Fatalf("sql = %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"sport-1", "Futsal"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	if _, err := InsertModel("sports", 42); err == nil {
		t.Fatal("expected error for non-struct model")
	}
}
