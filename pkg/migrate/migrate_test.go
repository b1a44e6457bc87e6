package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatimaskitchen/storefront/pkg/config"
	"github.com/fatimaskitchen/storefront/pkg/db"
)

func TestDialect(t *testing.T) {
	cases := map[string]string{
		"":         "postgres",
		"postgres": "postgres",
		"SQLite":   "sqlite3",
	}
	for driver, want := range cases {
		got, err := Dialect(driver)
		if err != nil {
			t.Fatalf("Dialect(%q): %v", driver, err)
		}
		if got != want {
			t.Fatalf("Dialect(%q) = %q, want %q", driver, got, want)
		}
	}
	if _, err := Dialect("mysql"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestSnapshotMigrationContents(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_cart_snapshots.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one cart snapshot migration, got %d", len(matches))
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS cart_snapshots",
		"snapshot_key VARCHAR(128) PRIMARY KEY",
		"DROP TABLE IF EXISTS cart_snapshots",
	} {
		if !strings.Contains(string(data), sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{
		Driver:       config.DBDriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "migrate.db"),
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer client.Close()

	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}

	if err := Run(ctx, sqlDB, config.DBDriverSQLite, "migrations", "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}
	if _, err := sqlDB.ExecContext(ctx, "INSERT INTO cart_snapshots (snapshot_key, payload) VALUES (?, ?)", "k", "{}"); err != nil {
		t.Fatalf("insert after up: %v", err)
	}

	if err := Run(ctx, sqlDB, config.DBDriverSQLite, "migrations", "down"); err != nil {
		t.Fatalf("goose down: %v", err)
	}
	if _, err := sqlDB.ExecContext(ctx, "SELECT 1 FROM cart_snapshots"); err == nil {
		t.Fatal("expected table to be dropped")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Order Notes!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_order_notes.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
	if _, err := CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatal("expected sanitized-empty name error")
	}
}

func TestCreateSQLMigrationVersionsIncrease(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	first, err := CreateSQLMigration(dir, "first")
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := CreateSQLMigration(dir, "second")
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if filepath.Base(first) != "20261001120000_first.sql" {
		t.Fatalf("unexpected first migration %s", first)
	}
	if filepath.Base(second) != "20261001120001_second.sql" {
		t.Fatalf("unexpected second migration %s", second)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migrations should validate: %v", err)
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "create_things.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected misnamed migration to fail")
	}

	dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20261001120000_no_down.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected missing down section to fail")
	}
}
