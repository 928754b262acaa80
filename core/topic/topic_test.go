package topic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/counters"
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/materialize"
	"github.com/gaurav-prasanna/worldometer/core/topic"
	"github.com/gaurav-prasanna/worldometer/core/topic/topictest"
)

const citiesURL = "https://www.example.com/population/largest-cities-in-the-world/"

const citiesHTML = `<table class="table">
	<thead><tr><th>#</th><th>City</th><th>Country</th><th>Population</th></tr></thead>
	<tbody>
		<tr><td>1</td><td>Tokyo</td><td>Japan</td><td>37,194,105</td></tr>
		<tr><td>2</td><td>Delhi</td><td>India</td><td>32,941,309</td></tr>
	</tbody>
</table>`

type city struct {
	Rank       int    `col:"rank"`
	City       string `col:"city"`
	Country    string `col:"country"`
	Population int64  `col:"population"`
}

var citiesSource = topic.Source{
	Name:   "largest-cities",
	Path:   "/population/largest-cities-in-the-world/",
	Tables: []extract.Schema{{"rank", "city", "country", "population"}},
}

func newLoader(fetcher core.Fetcher, runner core.ScriptRunner) *topic.Loader {
	loader := topic.NewLoader(fetcher, runner)
	loader.BaseURL = "https://www.example.com"
	return loader
}

func TestHolderReload(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{citiesURL: citiesHTML})
	h := topic.NewRowsHolder[city](newLoader(fetcher, nil), citiesSource)

	assert.False(t, h.Loaded())
	assert.Empty(t, h.Snapshot())

	require.NoError(t, h.Load(context.Background()))
	assert.True(t, h.Loaded())
	assert.Equal(t, topictest.FetchedAt, h.LoadedAt())

	want := topic.Rows[city]{
		{Rank: 1, City: "Tokyo", Country: "Japan", Population: 37194105},
		{Rank: 2, City: "Delhi", Country: "India", Population: 32941309},
	}
	if diff := cmp.Diff(want, h.Snapshot()); diff != "" {
		t.Fatal(diff)
	}

	// Load is a no-op once a snapshot is held.
	require.NoError(t, h.Load(context.Background()))
	assert.Equal(t, 1, fetcher.Calls(citiesURL))
}

func TestHolderReloadIsIdempotent(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{citiesURL: citiesHTML})
	h := topic.NewRowsHolder[city](newLoader(fetcher, nil), citiesSource)

	require.NoError(t, h.Reload(context.Background()))
	first := h.Snapshot()
	require.NoError(t, h.Reload(context.Background()))
	second := h.Snapshot()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatal(diff)
	}
	assert.Equal(t, 2, fetcher.Calls(citiesURL))
}

func TestHolderSnapshotIsDefensiveCopy(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{citiesURL: citiesHTML})
	h := topic.NewRowsHolder[city](newLoader(fetcher, nil), citiesSource)
	require.NoError(t, h.Load(context.Background()))

	snap := h.Snapshot()
	snap[0].City = "Changed"
	_ = append(snap[:1], city{City: "Appended"})

	again := h.Snapshot()
	assert.Equal(t, "Tokyo", again[0].City)
	assert.Equal(t, "Delhi", again[1].City)
}

func TestHolderFailedReloadKeepsSnapshot(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{citiesURL: citiesHTML})
	h := topic.NewRowsHolder[city](newLoader(fetcher, nil), citiesSource)
	require.NoError(t, h.Load(context.Background()))
	before := h.Snapshot()

	fetcher.Set(citiesURL, `<table><tr><td>only</td><td>two</td></tr></table>`)
	err := h.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrColumnNamesLengthMismatch)

	fetcher.Fail(citiesURL, errors.New("connection reset"))
	require.Error(t, h.Reload(context.Background()))

	if diff := cmp.Diff(before, h.Snapshot()); diff != "" {
		t.Fatal(diff)
	}
}

func TestHolderMaterializeError(t *testing.T) {
	type wrong struct {
		Rank int    `col:"rank"`
		Name string `col:"name"`
	}
	fetcher := topictest.NewFetcher(map[string]string{citiesURL: citiesHTML})
	h := topic.NewRowsHolder[wrong](newLoader(fetcher, nil), citiesSource)

	err := h.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, materialize.ErrFieldMismatch)
	assert.False(t, h.Loaded())
}

func TestHolderDocument(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{citiesURL: citiesHTML})
	h := topic.NewRowsHolder[city](newLoader(fetcher, nil), citiesSource)
	require.NoError(t, h.Load(context.Background()))

	doc := h.Document()
	assert.Equal(t, "largest-cities", doc.Topic)
	assert.Equal(t, citiesURL, doc.URL)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "largest-cities", doc.Tables[0].Name)
	assert.Equal(t, []string{"rank", "city", "country", "population"}, doc.Tables[0].Columns)
	assert.Equal(t, []any{1, "Tokyo", "Japan", int64(37194105)}, doc.Tables[0].Rows[0])
}

func TestLoaderRender(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{citiesURL: "<html><body>loading…</body></html>"})
	runner := &topictest.Runner{Rendered: map[string]string{citiesURL: citiesHTML}}

	src := citiesSource
	src.Render = true

	page, err := newLoader(fetcher, runner).Tables(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.Renders())
	require.Len(t, page.Tables, 1)
	assert.Len(t, page.Tables[0].Records, 2)

	_, err = newLoader(fetcher, nil).Tables(context.Background(), src)
	assert.ErrorIs(t, err, topic.ErrNoScriptRunner)
}

func TestLoaderCounters(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{"https://www.example.com": "<html></html>"})
	runner := &topictest.Runner{Scripts: map[string][]byte{
		topic.CountersScript: []byte(`{
			"current_population": {"last_value": 8123456789},
			"births_today": {"last_value": 0},
			"tweets": {"interval": 1}
		}`),
	}}
	loader := newLoader(fetcher, runner)

	got, err := loader.Counters(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"births_today", "current_population", "tweets"}, got.Keys())
	assert.Equal(t, counters.Int(8123456789), got["current_population"])
	assert.False(t, got["births_today"].Valid())

	live, err := loader.Live(context.Background(), "", "current_population")
	require.NoError(t, err)
	assert.Equal(t, int64(8123456789), live.Int64())

	missing, err := loader.Live(context.Background(), "", "no_such_key")
	require.NoError(t, err)
	assert.False(t, missing.Valid())
}

func TestLoaderCountersErrors(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{"https://www.example.com": "<html></html>"})

	_, err := newLoader(fetcher, nil).Counters(context.Background(), "")
	assert.ErrorIs(t, err, topic.ErrNoScriptRunner)

	scriptErr := errors.New("evaluation timed out")
	_, err = newLoader(fetcher, &topictest.Runner{Err: scriptErr}).Counters(context.Background(), "")
	assert.ErrorIs(t, err, scriptErr)

	_, err = newLoader(fetcher, &topictest.Runner{Scripts: map[string][]byte{
		topic.CountersScript: []byte(`"not an object"`),
	}}).Counters(context.Background(), "")
	assert.Error(t, err)
}
