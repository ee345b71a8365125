package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionByDialect(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", "title", "", "description")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "(title LIKE ? OR description LIKE ?)" {
		t.Fatalf("unexpected condition: %s", condition)
	}

	condition, _ = buildLikeConditionByDialect("postgres", "title")
	if !strings.Contains(condition, "title ILIKE ?") {
		t.Fatalf("postgres condition should use ILIKE, got %s", condition)
	}
}

func TestBuildLikeConditionEmptyColumns(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", " ")
	if condition != "" || argCount != 0 {
		t.Fatalf("empty columns should yield no condition, got %q %d", condition, argCount)
	}
}

func TestDayExprByDialect(t *testing.T) {
	cases := map[string]string{
		"sqlite":   "CAST(date(created_at) AS TEXT)",
		"postgres": "to_char(created_at, 'YYYY-MM-DD')",
		"mysql":    "DATE_FORMAT(created_at, '%Y-%m-%d')",
	}
	for dialect, want := range cases {
		if got := dayExprByDialect(dialect, "created_at"); got != want {
			t.Fatalf("%s day expr mismatch, want %s got %s", dialect, want, got)
		}
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
