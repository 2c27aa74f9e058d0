package sqlite

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "deals.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}
	require.Equal(t, dbPath, db.Path())
}

func TestNewDB_RunsMigrations(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "deals.db"))
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='deals'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "deals", name)
}

func TestNewDB_ReopenIsIdempotentAndBacksUp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deals.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	_, err = db1.conn.Exec(
		"INSERT INTO deals (id, title, stage, created_at, updated_at) VALUES ('d1', 'Acme', 'quoting', 1, 1)",
	)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err, "second open must not fail on already-applied migrations")
	defer db2.Close()

	var n int
	require.NoError(t, db2.conn.QueryRow("SELECT COUNT(*) FROM deals").Scan(&n))
	require.Equal(t, 1, n)

	info, err := os.Stat(dbPath + ".bak")
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestNewDB_Pragmas(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "deals.db"))
	require.NoError(t, err)
	defer db.Close()

	var journal string
	require.NoError(t, db.conn.QueryRow("PRAGMA journal_mode").Scan(&journal))
	require.Equal(t, "wal", journal)

	var fk int
	require.NoError(t, db.conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	require.Equal(t, 1, fk)

	var busy int
	require.NoError(t, db.conn.QueryRow("PRAGMA busy_timeout").Scan(&busy))
	require.Equal(t, 5000, busy)
}

func TestDealsTable_RejectsUnknownStage(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "deals.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.conn.Exec(
		"INSERT INTO deals (id, title, stage, created_at, updated_at) VALUES ('d1', 'Acme', 'closed_won', 1, 1)",
	)
	require.Error(t, err)
}
