package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectToSQL(t *testing.T) {
	sql, args, err := Select("name_key", "name", "role").
		From("player_stats").
		Where(Eq("name_key", "virat kohli")).
		OrderBy("name_key ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	want := "SELECT name_key, name, role FROM player_stats WHERE name_key = $1 ORDER BY name_key ASC LIMIT 1"
	if sql != want {
		t.Fatalf("sql mismatch\ngot:  %s\nwant: %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"virat kohli"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectMultipleConditions(t *testing.T) {
	sql, args, err := Select("name").
		From("player_stats").
		Where(Eq("role", "BAT"), Eq("bowling_style", "PACE")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	want := "SELECT name FROM player_stats WHERE role = $1 AND bowling_style = $2"
	if sql != want {
		t.Fatalf("sql mismatch\ngot:  %s\nwant: %s", sql, want)
	}
	if len(args) != 2 || args[0] != "BAT" || args[1] != "PACE" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectInCondition(t *testing.T) {
	sql, args, err := Select("name").
		From("player_stats").
		Where(In("name_key", []any{"a", "b"})).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	want := "SELECT name FROM player_stats WHERE name_key IN ($1, $2)"
	if sql != want {
		t.Fatalf("sql mismatch\ngot:  %s\nwant: %s", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectInConditionEmpty(t *testing.T) {
	sql, args, err := Select("name").
		From("player_stats").
		Where(In("name_key", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	want := "SELECT name FROM player_stats WHERE 1=0"
	if sql != want {
		t.Fatalf("sql mismatch\ngot:  %s\nwant: %s", sql, want)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectValidation(t *testing.T) {
	if _, _, err := Select().From("player_stats").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
	if _, _, err := Select("name").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertToSQL(t *testing.T) {
	sql, args, err := InsertInto("player_stats").
		Columns("name_key", "name").
		Values("virat kohli", "Virat Kohli").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	want := "INSERT INTO player_stats (name_key, name) VALUES ($1, $2)"
	if sql != want {
		t.Fatalf("sql mismatch\ngot:  %s\nwant: %s", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertWithSuffix(t *testing.T) {
	sql, _, err := InsertInto("player_stats").
		Columns("name_key", "name").
		Values("virat kohli", "Virat Kohli").
		Suffix("ON CONFLICT (name_key) DO UPDATE SET name = EXCLUDED.name").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	want := "INSERT INTO player_stats (name_key, name) VALUES ($1, $2) ON CONFLICT (name_key) DO UPDATE SET name = EXCLUDED.name"
	if sql != want {
		t.Fatalf("sql mismatch\ngot:  %s\nwant: %s", sql, want)
	}
}

func TestInsertRowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("player_stats").
		Columns("name_key", "name").
		Values("only one").
		ToSQL()
	if err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		NameKey string `db:"name_key"`
		Name    string `db:"name"`
		Skipped string `db:"-"`
		NoTag   string
	}

	sql, args, err := InsertModel("player_stats", row{NameKey: "virat kohli", Name: "Virat Kohli", Skipped: "x", NoTag: "y"}, "")
	if err != nil {
		t.Fatalf("InsertModel returned error: %v", err)
	}
	want := "INSERT INTO player_stats (name_key, name) VALUES ($1, $2)"
	if sql != want {
		t.Fatalf("sql mismatch\ngot:  %s\nwant: %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"virat kohli", "Virat Kohli"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModelPointer(t *testing.T) {
	type row struct {
		NameKey string `db:"name_key"`
	}

	if _, _, err := InsertModel("player_stats", &row{NameKey: "ms dhoni"}, ""); err != nil {
		t.Fatalf("InsertModel returned error: %v", err)
	}

	if _, _, err := InsertModel("player_stats", (*row)(nil), ""); err == nil {
		t.Fatal("expected error for nil model")
	}
	if _, _, err := InsertModel("player_stats", "not a struct", ""); err == nil {
		t.Fatal("expected error for non-struct model")
	}
}
