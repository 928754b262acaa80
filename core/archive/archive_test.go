package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/counters"
)

func openTest(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "data", "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestLatestCountersEmpty(t *testing.T) {
	a := openTest(t)
	_, _, err := a.LatestCounters(context.Background())
	assert.ErrorIs(t, err, ErrNoReadings)
}

func TestCountersRoundTrip(t *testing.T) {
	a := openTest(t)
	ctx := context.Background()

	first := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	_, err := a.SaveCounters(ctx, first, counters.Sanitized{"current_population": counters.Int(1)})
	require.NoError(t, err)

	second := first.Add(time.Minute)
	reading := counters.Sanitized{
		"current_population": counters.Int(8123456789),
		"absolute_growth":    counters.Float(7000.5),
		"births_today":       counters.Absent(),
	}
	id, err := a.SaveCounters(ctx, second, reading)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, takenAt, err := a.LatestCounters(ctx)
	require.NoError(t, err)
	assert.True(t, second.Equal(takenAt))
	assert.Equal(t, reading, got)
}

func TestSaveCountersEmptyBecomesLatest(t *testing.T) {
	a := openTest(t)
	ctx := context.Background()

	first := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := a.SaveCounters(ctx, first, counters.Sanitized{"k": counters.Int(5)})
	require.NoError(t, err)

	second := first.Add(time.Hour)
	id, err := a.SaveCounters(ctx, second, counters.Sanitized{})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, takenAt, err := a.LatestCounters(ctx)
	require.NoError(t, err)
	assert.True(t, second.Equal(takenAt))
	assert.Empty(t, got)
}

func TestDocuments(t *testing.T) {
	a := openTest(t)
	ctx := context.Background()

	older := core.Document{
		Topic:     "largest-cities",
		URL:       "https://www.example.com/population/largest-cities-in-the-world",
		FetchedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		Tables: []core.Table{{
			Name:    "largest-cities",
			Columns: []string{"rank", "urban_area"},
			Rows:    [][]any{{1, "Tokyo-Yokohama"}},
		}},
	}
	newer := older
	newer.FetchedAt = older.FetchedAt.Add(24 * time.Hour)

	_, err := a.SaveDocument(ctx, older)
	require.NoError(t, err)
	newerID, err := a.SaveDocument(ctx, newer)
	require.NoError(t, err)
	_, err = a.SaveDocument(ctx, core.Document{Topic: "country-codes"})
	require.NoError(t, err)

	docs, err := a.Documents(ctx, "largest-cities")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, newerID, docs[0].ID)
	assert.True(t, newer.FetchedAt.Equal(docs[0].Document.FetchedAt))
	assert.Equal(t, []any{float64(1), "Tokyo-Yokohama"}, docs[1].Document.Tables[0].Rows[0])

	none, err := a.Documents(ctx, "no-such-topic")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	a, err := Open(path)
	require.NoError(t, err)
	_, err = a.SaveCounters(context.Background(), time.Now(), counters.Sanitized{"tv": counters.Int(3)})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	a, err = Open(path)
	require.NoError(t, err)
	defer a.Close()
	got, _, err := a.LatestCounters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, counters.Int(3), got.Get("tv"))
}

func TestValueEncoding(t *testing.T) {
	for _, v := range []counters.Value{counters.Absent(), counters.Int(-42), counters.Float(0.125), counters.Float(1e21)} {
		kind, raw := encodeValue(v)
		got, err := decodeValue(kind, raw)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := decodeValue("complex", "1i")
	assert.Error(t, err)
}
