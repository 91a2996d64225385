package inmemdb

import (
	"iter"
	"slices"

	"github.com/trezcool/mindbloom/core/wellness"
)

// EntryStore keeps the entries of one session in memory, in insertion order.
// It is not safe for concurrent use: callers own it from a single goroutine.
type EntryStore struct {
	table []wellness.Entry
}

var _ wellness.Store = (*EntryStore)(nil)

func NewEntryStore() *EntryStore {
	return &EntryStore{}
}

// Add appends e and returns its index. Duplicates are allowed.
func (s *EntryStore) Add(e wellness.Entry) int {
	s.table = append(s.table, e)
	return len(s.table) - 1
}

func (s *EntryStore) At(i int) (wellness.Entry, error) {
	if err := wellness.CheckIndex(i, len(s.table)); err != nil {
		return wellness.Entry{}, err
	}
	return s.table[i], nil
}

// DeleteAt removes the entry at i, shifting the following ones down by one.
func (s *EntryStore) DeleteAt(i int) error {
	if err := wellness.CheckIndex(i, len(s.table)); err != nil {
		return err
	}
	s.table = slices.Delete(s.table, i, i+1)
	return nil
}

// ReplaceAt swaps the entry at i for e.
func (s *EntryStore) ReplaceAt(i int, e wellness.Entry) error {
	if err := wellness.CheckIndex(i, len(s.table)); err != nil {
		return err
	}
	s.table[i] = e
	return nil
}

func (s *EntryStore) Clear() {
	s.table = nil
}

func (s *EntryStore) Count() int {
	return len(s.table)
}

func (s *EntryStore) HealthyCount() int {
	var n int
	for _, e := range s.table {
		if e.IsHealthy() {
			n++
		}
	}
	return n
}

// AverageScreenFreeMinutes is 0 for an empty store.
func (s *EntryStore) AverageScreenFreeMinutes() float64 {
	if len(s.table) == 0 {
		return 0
	}
	var total float64
	for _, e := range s.table {
		total += e.ScreenFreeMinutes()
	}
	return total / float64(len(s.table))
}

// Filter yields the entries matching pred, evaluated lazily as the sequence is ranged over.
func (s *EntryStore) Filter(pred func(wellness.Entry) bool) iter.Seq[wellness.Entry] {
	return func(yield func(wellness.Entry) bool) {
		for _, e := range s.table {
			if pred != nil && !pred(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Entries returns a copy of all entries.
func (s *EntryStore) Entries() []wellness.Entry {
	return slices.Clone(s.table)
}

// Recent returns the last n entries, newest first.
func (s *EntryStore) Recent(n int) []wellness.Entry {
	if n <= 0 {
		return nil
	}
	n = min(n, len(s.table))
	recent := make([]wellness.Entry, 0, n)
	for i := len(s.table) - 1; i >= len(s.table)-n; i-- {
		recent = append(recent, s.table[i])
	}
	return recent
}

func (s *EntryStore) Stats() wellness.Stats {
	return wellness.ComputeStats(slices.Values(s.table))
}

// ExportRows flattens the entries, in insertion order.
func (s *EntryStore) ExportRows() []wellness.Row {
	rows := make([]wellness.Row, 0, len(s.table))
	for _, e := range s.table {
		rows = append(rows, e.Row())
	}
	return rows
}
