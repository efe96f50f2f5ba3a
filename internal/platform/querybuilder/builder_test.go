package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_WhereOrderLimitOffset(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "title").
		From("competitions").
		Where(Eq("sport_category", "배드민턴"), Eq("location_province_city", "서울특별시")).
		OrderBy("id ASC").
		Limit(1000).
		Offset(2000).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSQL := "SELECT id, title FROM competitions WHERE sport_category = $1 AND location_province_city = $2 ORDER BY id ASC LIMIT 1000 OFFSET 2000"
	if sql != wantSQL {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"배드민턴", "서울특별시"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_EmptyInShortCircuits(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("profiles").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "SELECT id FROM profiles WHERE 1=0" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestSelect_ExprRewritesPlaceholders(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("competitions").
		Where(Eq("province", "서울"), Expr("grade IS NOT NULL AND host != ?", "주최미상")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSQL := "SELECT id FROM competitions WHERE province = $1 AND grade IS NOT NULL AND host != $2"
	if sql != wantSQL {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"서울", "주최미상"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_MissingTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
	if _, _, err := Select().From("competitions").ToSQL(); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}

func TestInsert_MultiRow(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("interesting_sports").
		Columns("user_id", "sport_name", "skill").
		Values(int64(1), "배드민턴", "중").
		Values(int64(1), "테니스", "하").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSQL := "INSERT INTO interesting_sports (user_id, sport_name, skill) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT DO NOTHING"
	if sql != wantSQL {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(args))
	}
}

func TestInsert_RowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("profiles").
		Columns("id", "age").
		Values(int64(1)).
		ToSQL()
	if err == nil {
		t.Fatalf("expected arity error")
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	t.Parallel()

	type row struct {
		ID      int64  `db:"id"`
		Title   string `db:"title"`
		Skipped string `db:"-"`
		private string
	}
	_ = row{private: ""}

	sql, args, err := InsertModel("competitions", row{ID: 7, Title: "전국대회", Skipped: "x"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "INSERT INTO competitions (id, title) VALUES ($1, $2)" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{int64(7), "전국대회"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
