package migrations_test

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/msomdec/eco-track/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// :memory: databases are per-connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO users (email, display_name, password_hash) VALUES (?, ?, ?)",
		"test@example.com", "Test User", "hash123",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}
	userID, _ := res.LastInsertId()

	if _, err := db.ExecContext(ctx,
		"INSERT INTO actions (user_id, category, action_date, points) VALUES (?, ?, ?, ?)",
		userID, "cycling", "2024-01-01", 10,
	); err != nil {
		t.Fatalf("insert into actions: %v", err)
	}
}

func TestRun_RejectsUnknownCategory(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO users (email, display_name, password_hash) VALUES (?, ?, ?)",
		"cat@example.com", "Cat", "hash",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}
	userID, _ := res.LastInsertId()

	_, err = db.ExecContext(ctx,
		"INSERT INTO actions (user_id, category, action_date, points) VALUES (?, ?, ?, ?)",
		userID, "flying", "2024-01-01", 10,
	)
	if err == nil {
		t.Fatal("expected CHECK constraint to reject unknown category")
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != len(files) {
		t.Fatalf("expected %d migration records, got %d", len(files), count)
	}
}
