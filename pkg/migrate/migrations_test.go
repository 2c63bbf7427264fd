package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andresmolina/casamolina-backend/pkg/config"
	"github.com/andresmolina/casamolina-backend/pkg/logger"
	"github.com/andresmolina/casamolina-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestRunRejectsNonPostgresDriver(t *testing.T) {
	err := migrate.Run(context.Background(), nil, "migrations", "sqlite", "up")
	if err == nil || !strings.Contains(err.Error(), "postgres-only") {
		t.Fatalf("expected postgres-only error, got %v", err)
	}
}

func TestMigrateToVersionRejectsNonPostgresDriver(t *testing.T) {
	err := migrate.MigrateToVersion(context.Background(), nil, "migrations", "sqlite", "20250601100000")
	if err == nil || !strings.Contains(err.Error(), "postgres-only") {
		t.Fatalf("expected postgres-only error, got %v", err)
	}
}

func TestMaybeRunDevSkipsNonPostgresDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.DB.Driver = "sqlite"
	cfg.FeatureFlags.AutoMigrate = true

	logg := logger.New(logger.Options{ServiceName: "migrate-test"})

	// A nil client proves the database is never touched on the skip path.
	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, nil); err != nil {
		t.Fatalf("MaybeRunDev: %v", err)
	}
}

func TestMenuItemsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_menu_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS menu_items",
		"CHECK (price >= 0)",
		"CHECK (spice_level BETWEEN 0 AND 4)",
		"DROP TABLE IF EXISTS menu_items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationCascadesLineItems(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_line_items",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestToppingsMigrationSeedsFixedSet(t *testing.T) {
	content := readMigration(t, "*_create_toppings.sql")

	if !strings.Contains(content, "INSERT INTO toppings") {
		t.Fatal("toppings migration does not seed any rows")
	}
	if !strings.Contains(content, "ON CONFLICT (name) DO NOTHING") {
		t.Error("toppings seed should be idempotent on name")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
