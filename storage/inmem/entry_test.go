package inmemdb_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mindbloom/core/wellness"
	inmemdb "github.com/trezcool/mindbloom/storage/inmem"
	"github.com/trezcool/mindbloom/tests"
)

func seed(t *testing.T, minutes ...string) (*inmemdb.EntryStore, []wellness.Entry) {
	t.Helper()
	store := inmemdb.NewEntryStore()
	entries := make([]wellness.Entry, 0, len(minutes))
	for i, mins := range minutes {
		e := testutil.MustEntry(t, testutil.NewEntry("Student", "Yoga", "Music", mins))
		require.Equal(t, i, store.Add(e))
		entries = append(entries, e)
	}
	return store, entries
}

func ids(entries []wellness.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID().String())
	}
	return out
}

func TestEntryStore_Add(t *testing.T) {
	store := inmemdb.NewEntryStore()
	e := testutil.MustEntry(t, testutil.NewEntry("Asha", "Yoga", "Music", "75"))
	assert.Equal(t, 0, store.Add(e))
	assert.Equal(t, 1, store.Add(e)) // duplicates are kept
	assert.Equal(t, 2, store.Count())
}

func TestEntryStore_DeleteAt(t *testing.T) {
	tests := []struct {
		name    string
		idx     int
		wantErr bool
		wantIdx []int // remaining entries, by seed index
	}{
		{name: "first", idx: 0, wantIdx: []int{1, 2}},
		{name: "middle", idx: 1, wantIdx: []int{0, 2}},
		{name: "last", idx: 2, wantIdx: []int{0, 1}},
		{name: "negative", idx: -1, wantErr: true, wantIdx: []int{0, 1, 2}},
		{name: "past the end", idx: 5, wantErr: true, wantIdx: []int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, seeded := seed(t, "75", "30", "90")
			err := store.DeleteAt(tt.idx)
			if tt.wantErr {
				var idxErr *wellness.IndexOutOfRangeError
				require.ErrorAs(t, err, &idxErr)
				assert.Equal(t, tt.idx, idxErr.Index)
			} else {
				require.NoError(t, err)
			}
			want := make([]wellness.Entry, 0, len(tt.wantIdx))
			for _, i := range tt.wantIdx {
				want = append(want, seeded[i])
			}
			assert.Equal(t, ids(want), ids(store.Entries()))
		})
	}
}

func TestEntryStore_DeleteAt_outOfRangeLeavesStore(t *testing.T) {
	store, seeded := seed(t, "75", "30")
	err := store.DeleteAt(5)
	assert.True(t, errors.Is(err, wellness.ErrIndexOutOfRange))
	assert.Equal(t, 2, store.Count())
	assert.Equal(t, ids(seeded), ids(store.Entries()))
}

func TestEntryStore_ReplaceAt(t *testing.T) {
	store, seeded := seed(t, "75", "30")
	repl := testutil.MustEntry(t, testutil.NewEntry("Chen", "Yoga", "Music", "120"))

	require.NoError(t, store.ReplaceAt(1, repl))
	assert.Equal(t, []string{seeded[0].ID().String(), repl.ID().String()}, ids(store.Entries()))

	assert.True(t, errors.Is(store.ReplaceAt(2, repl), wellness.ErrIndexOutOfRange))
	got, err := store.At(1)
	require.NoError(t, err)
	assert.Equal(t, "Chen", got.StudentName())

	_, err = store.At(-1)
	assert.True(t, errors.Is(err, wellness.ErrIndexOutOfRange))
}

func TestEntryStore_Clear(t *testing.T) {
	store, _ := seed(t, "75", "30")
	store.Clear()
	store.Clear()
	assert.Zero(t, store.Count())
	assert.Empty(t, store.Entries())
	assert.Empty(t, store.ExportRows())
}

func TestEntryStore_Aggregates(t *testing.T) {
	store := inmemdb.NewEntryStore()
	assert.Zero(t, store.AverageScreenFreeMinutes())
	assert.Zero(t, store.HealthyCount())
	assert.Equal(t, wellness.Stats{}, store.Stats())

	store, _ = seed(t, "75", "30", "90", "45")
	assert.Equal(t, 60.0, store.AverageScreenFreeMinutes())
	assert.Equal(t, 2, store.HealthyCount())

	stats := store.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, store.HealthyCount(), stats.Healthy)
	assert.Equal(t, store.AverageScreenFreeMinutes(), stats.AverageMinutes)
}

func TestEntryStore_Filter(t *testing.T) {
	store, seeded := seed(t, "75", "30", "90")

	var healthy []wellness.Entry
	for e := range store.Filter(wellness.Entry.IsHealthy) {
		healthy = append(healthy, e)
	}
	assert.Equal(t, ids([]wellness.Entry{seeded[0], seeded[2]}), ids(healthy))

	calls := 0
	for range store.Filter(func(wellness.Entry) bool { calls++; return true }) {
		break
	}
	assert.Equal(t, 1, calls) // lazy

	n := 0
	for range store.Filter(nil) {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestEntryStore_Entries_isCopy(t *testing.T) {
	store, seeded := seed(t, "75", "30")
	entries := store.Entries()
	entries[0] = seeded[1]
	got, err := store.At(0)
	require.NoError(t, err)
	assert.Equal(t, seeded[0].ID(), got.ID())
}

func TestEntryStore_Recent(t *testing.T) {
	store, seeded := seed(t, "75", "30", "90")
	assert.Equal(t, ids([]wellness.Entry{seeded[2], seeded[1]}), ids(store.Recent(2)))
	assert.Equal(t, ids([]wellness.Entry{seeded[2], seeded[1], seeded[0]}), ids(store.Recent(10)))
	assert.Empty(t, store.Recent(0))
}

func TestEntryStore_ExportRows(t *testing.T) {
	store, seeded := seed(t, "75", "30", "90")
	want := make([]wellness.Row, 0, len(seeded))
	for _, e := range seeded {
		want = append(want, e.Row())
	}
	if diff := cmp.Diff(want, store.ExportRows()); diff != "" {
		t.Errorf("ExportRows() mismatch (-want +got):\n%s", diff)
	}
}
