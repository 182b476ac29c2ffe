package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandle(t *testing.T) *sql.DB {
	t.Helper()
	handle, err := open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { handle.Close() })
	return handle
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("enables WAL journaling", func(t *testing.T) {
		handle := testHandle(t)

		var mode string
		require.NoError(t, handle.QueryRow("PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)
	})

	t.Run("rejects an unusable path", func(t *testing.T) {
		_, err := open(filepath.Join(t.TempDir(), "missing", "nested", "test.db"))
		assert.Error(t, err)
	})
}

func TestTransaction(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *sql.DB {
		handle := testHandle(t)
		_, err := handle.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")
		require.NoError(t, err)
		return handle
	}

	countNotes := func(t *testing.T, handle *sql.DB) int {
		var count int
		require.NoError(t, handle.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count))
		return count
	}

	t.Run("commits on success", func(t *testing.T) {
		handle := setup(t)

		err := Transaction(handle, func(tx *sql.Tx) error {
			_, err := tx.Exec("INSERT INTO notes (body) VALUES (?)", "kept")
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, 1, countNotes(t, handle))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		handle := setup(t)
		boom := errors.New("boom")

		err := Transaction(handle, func(tx *sql.Tx) error {
			if _, err := tx.Exec("INSERT INTO notes (body) VALUES (?)", "discarded"); err != nil {
				return err
			}
			return boom
		})

		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, countNotes(t, handle))
	})
}
