package conversation

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestPostgresStoreContract runs the shared store checks against a real
// database. It skips when TRAVELBOT_TEST_DSN is not set.
func TestPostgresStoreContract(t *testing.T) {
	db := setupTestDB(t)
	storeContract(t, NewPostgresStore(db))
}

func TestPostgresStoreAnonymousTurnsAreNull(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := NewPostgresStore(db)

	if _, err := store.Append(ctx, Turn{Message: "anon", Role: RoleUser}); err != nil {
		t.Fatalf("append: %v", err)
	}

	var nulls int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM conversation_turns WHERE user_id IS NULL").Scan(&nulls); err != nil {
		t.Fatalf("query: %v", err)
	}
	if nulls != 1 {
		t.Fatalf("expected 1 anonymous row, got %d", nulls)
	}
}

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TRAVELBOT_TEST_DSN")
	if dsn == "" {
		t.Skip("TRAVELBOT_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE conversation_turns RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate conversation_turns: %v", err)
	}
	return db
}

func applyMigrations(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	paths, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return err
	}
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, stmt := range splitSQL(stripSQLComments(string(content))) {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	var out []string
	for _, p := range strings.Split(input, ";") {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
