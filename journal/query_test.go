package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	rec := mustTrade(t, time.Date(2024, 4, 10, 9, 0, 0, 0, time.Local), "win", "15", "trend")
	rec.ID = "T123"
	require.NoError(t, j.AppendTrade(rec))

	got, err := j.GetTrade("T123")
	require.NoError(t, err)
	assert.Equal(t, "T123", got.ID)
	assert.Equal(t, rec.Row(), got.Row())
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTradesOn(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	day1 := time.Date(2024, 5, 1, 23, 59, 0, 0, time.Local)
	day2 := time.Date(2024, 5, 2, 0, 1, 0, 0, time.Local)
	require.NoError(t, j.AppendTrade(mustTrade(t, day1, "win", "10", "late")))
	require.NoError(t, j.AppendTrade(mustTrade(t, day2, "loss", "10", "early")))
	require.NoError(t, j.AppendTrade(mustTrade(t, day2.Add(time.Hour), "tie", "10", "later")))

	got, err := j.ListTradesOn("2024-05-02")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].Notes)
	assert.Equal(t, "later", got[1].Notes)

	none, err := j.ListTradesOn("2024-06-01")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteTradesByID(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	// identical displayed fields, distinct IDs
	for i := 0; i < 2; i++ {
		require.NoError(t, j.AppendTrade(mustTrade(t, at, "win", "10", "dup")))
	}
	all, err := j.ReadTrades()
	require.NoError(t, err)
	require.Len(t, all, 2)

	n, err := j.DeleteTrades(all[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := j.ReadTrades()
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, all[0].ID, left[0].ID)

	_, err = j.DeleteTrades()
	assert.ErrorIs(t, err, ErrNoSelection)
}
