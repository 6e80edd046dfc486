package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','sessions')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["sessions"])
}

func TestSQLiteAppendAndRead(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	want := []TradeRecord{
		mustTrade(t, base, "win", "10", "first"),
		mustTrade(t, base.Add(time.Minute), "loss", "5.55", "ñ ↓"),
	}
	for _, rec := range want {
		require.NoError(t, j.AppendTrade(rec))
	}

	got, err := j.ReadTrades()
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.NotEmpty(t, got[i].ID)
		assert.Equal(t, want[i].Row(), got[i].Row())
	}
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestSQLiteRewriteKeepsIDs(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		require.NoError(t, j.AppendTrade(mustTrade(t, base.Add(time.Duration(i)*time.Minute), "win", "10", "")))
	}
	all, err := j.ReadTrades()
	require.NoError(t, err)

	require.NoError(t, j.RewriteTrades([]TradeRecord{all[2], all[0]}))

	got, err := j.ReadTrades()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, all[2].ID, got[0].ID)
	assert.Equal(t, all[0].ID, got[1].ID)
}

func TestSQLiteSessions(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	start := time.Date(2024, 2, 3, 4, 5, 6, 0, time.Local)
	s := NewSession(start, start.Add(30*time.Minute), "")
	require.NoError(t, j.AppendSession(s))

	got, err := j.ReadSessions()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, s.SessionID, got[0].SessionID)
	assert.True(t, got[0].Start.Equal(s.Start))
	assert.True(t, got[0].End.Equal(s.End))
	assert.InDelta(t, 30.0, got[0].DurationMin, 1e-9)
}

func TestJournalImplementations(t *testing.T) {
	t.Parallel()

	var _ Journal = (*CSVJournal)(nil)
	var _ Journal = (*SQLiteJournal)(nil)
}
