package db

import (
	"context"
	"testing"
	"testing/fstest"
	"time"
)

func sqlFile(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func TestLoadMigrations(t *testing.T) {
	source := fstest.MapFS{
		"001_core.sql":      sqlFile("CREATE TABLE users (id SERIAL PRIMARY KEY);"),
		"002_referrals.sql": sqlFile("CREATE TABLE referrals (id SERIAL PRIMARY KEY);"),
		"003_records.sql":   sqlFile("CREATE TABLE medical_records (id SERIAL PRIMARY KEY);"),
	}

	migrations, err := NewMigrator(nil, source).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 {
		t.Errorf("expected version 1, got %d", migrations[0].Version)
	}
	if migrations[0].Name != "001_core.sql" {
		t.Errorf("expected name 001_core.sql, got %s", migrations[0].Name)
	}
	if migrations[0].SQL != "CREATE TABLE users (id SERIAL PRIMARY KEY);" {
		t.Errorf("unexpected SQL content: %s", migrations[0].SQL)
	}
	if migrations[2].Version != 3 {
		t.Errorf("expected version 3, got %d", migrations[2].Version)
	}
}

func TestLoadMigrations_SortsNumerically(t *testing.T) {
	source := fstest.MapFS{
		"10_late.sql": sqlFile("SELECT 10;"),
		"2_mid.sql":   sqlFile("SELECT 2;"),
		"1_first.sql": sqlFile("SELECT 1;"),
	}

	migrations, err := NewMigrator(nil, source).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	want := []int{1, 2, 10}
	for i, v := range want {
		if migrations[i].Version != v {
			t.Errorf("position %d: expected version %d, got %d", i, v, migrations[i].Version)
		}
	}
}

func TestLoadMigrations_SkipsNonMigrationFiles(t *testing.T) {
	source := fstest.MapFS{
		"001_core.sql":     sqlFile("SELECT 1;"),
		"README.md":        sqlFile("docs"),
		"core.sql":         sqlFile("SELECT 2;"),
		"abc_invalid.sql":  sqlFile("SELECT 3;"),
		"embed.go":         sqlFile("package migrations"),
		"nested/002_x.sql": sqlFile("SELECT 4;"),
	}

	migrations, err := NewMigrator(nil, source).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(migrations))
	}
	if migrations[0].Name != "001_core.sql" {
		t.Errorf("unexpected migration %s", migrations[0].Name)
	}
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	source := fstest.MapFS{
		"001_core.sql":  sqlFile("SELECT 1;"),
		"001_other.sql": sqlFile("SELECT 2;"),
	}
	if _, err := NewMigrator(nil, source).LoadMigrations(); err == nil {
		t.Error("expected error for duplicate migration version")
	}
}

func TestLoadMigrations_Empty(t *testing.T) {
	migrations, err := NewMigrator(nil, fstest.MapFS{}).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migrations) != 0 {
		t.Errorf("expected 0 migrations, got %d", len(migrations))
	}
}

func TestBuildStatuses(t *testing.T) {
	migrations := []Migration{
		{Version: 1, Name: "001_core.sql"},
		{Version: 2, Name: "002_referrals.sql"},
		{Version: 3, Name: "003_records.sql"},
	}
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	statuses := buildStatuses(migrations, map[int]time.Time{1: at})

	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Applied || statuses[0].AppliedAt == nil || !statuses[0].AppliedAt.Equal(at) {
		t.Errorf("expected migration 001 applied at %s, got %+v", at, statuses[0])
	}
	if statuses[1].Applied || statuses[1].AppliedAt != nil {
		t.Error("expected migration 002 to be pending")
	}
	if statuses[2].Name != "003_records.sql" {
		t.Errorf("expected name 003_records.sql, got %s", statuses[2].Name)
	}
}

func TestPending(t *testing.T) {
	migrations := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	got := pending(migrations, map[int]time.Time{1: time.Now(), 3: time.Now()})
	if len(got) != 1 || got[0].Version != 2 {
		t.Errorf("expected only version 2 pending, got %+v", got)
	}
}

func TestEnsureMigrationsTable_RejectsBadSchema(t *testing.T) {
	m := NewMigrator(nil, fstest.MapFS{})
	if err := m.EnsureMigrationsTable(context.Background(), "public; DROP TABLE users"); err == nil {
		t.Error("expected error for invalid schema name")
	}
}
