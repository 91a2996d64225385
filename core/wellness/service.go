package wellness

import (
	"iter"

	"github.com/kat-co/vala"

	"github.com/trezcool/mindbloom/core"
)

type (
	// Store holds the entries of one session, in insertion order.
	Store interface {
		Add(e Entry) int
		At(i int) (Entry, error)
		DeleteAt(i int) error
		ReplaceAt(i int, e Entry) error
		Clear()
		Count() int
		HealthyCount() int
		AverageScreenFreeMinutes() float64
		// Filter returns a lazy read-only view of the entries matching pred.
		Filter(pred func(Entry) bool) iter.Seq[Entry]
		Entries() []Entry
		Recent(n int) []Entry
		Stats() Stats
		ExportRows() []Row
	}

	Service struct {
		store     Store
		validator *Validator
		logger    core.Logger
	}
)

func NewService(store Store, validator *Validator, logger core.Logger) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(validator, "validator"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &Service{store: store, validator: validator, logger: logger}
}

func (svc *Service) Validator() *Validator { return svc.validator }

// Log validates ne and appends the resulting Entry. It returns the entry and its index.
func (svc *Service) Log(ne NewEntry) (Entry, int, error) {
	e, err := svc.validator.Validate(ne)
	if err != nil {
		svc.logger.Debug("entry rejected", err)
		return Entry{}, -1, err
	}
	idx := svc.store.Add(e)
	svc.logger.Info("entry added", entryFields(e, idx))
	return e, idx, nil
}

// Edit replaces the entry at index i with a new Entry built from ne.
// Nothing changes unless both the index and ne are valid.
func (svc *Service) Edit(i int, ne NewEntry) (Entry, error) {
	if _, err := svc.store.At(i); err != nil {
		return Entry{}, err
	}
	e, err := svc.validator.Validate(ne)
	if err != nil {
		svc.logger.Debug("entry edit rejected", err)
		return Entry{}, err
	}
	if err := svc.store.ReplaceAt(i, e); err != nil {
		return Entry{}, err
	}
	svc.logger.Info("entry updated", entryFields(e, i))
	return e, nil
}

func (svc *Service) Delete(i int) error {
	if err := svc.store.DeleteAt(i); err != nil {
		svc.logger.Warn("entry delete failed", err)
		return err
	}
	svc.logger.Info("entry deleted", map[string]interface{}{"index": i})
	return nil
}

// Clear removes every entry. It returns how many were removed.
func (svc *Service) Clear() int {
	n := svc.store.Count()
	svc.store.Clear()
	svc.logger.Info("entries cleared", map[string]interface{}{"count": n})
	return n
}

func (svc *Service) Preview(ne NewEntry) Preview {
	return svc.validator.PreviewStatus(ne)
}

func (svc *Service) Get(i int) (Entry, error) {
	return svc.store.At(i)
}

func (svc *Service) Count() int {
	return svc.store.Count()
}

// List returns the entries matching filter (all of them when nil), sorted by orderings.
func (svc *Service) List(filter func(Entry) bool, orderings ...core.Ordering) ([]Entry, error) {
	if err := CheckOrderings(orderings); err != nil {
		return nil, err
	}
	var entries []Entry
	if filter == nil {
		entries = svc.store.Entries()
	} else {
		for e := range svc.store.Filter(filter) {
			entries = append(entries, e)
		}
	}
	if err := SortEntries(entries, orderings); err != nil {
		return nil, err
	}
	return entries, nil
}

func (svc *Service) Summary() Stats {
	return svc.store.Stats()
}

func (svc *Service) Recent(n int) []Entry {
	return svc.store.Recent(n)
}

// Rows returns the export rows, in insertion order unless orderings are given.
func (svc *Service) Rows(orderings ...core.Ordering) ([]Row, error) {
	if len(orderings) == 0 {
		return svc.store.ExportRows(), nil
	}
	entries, err := svc.List(nil, orderings...)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.Row())
	}
	return rows, nil
}

func entryFields(e Entry, idx int) map[string]interface{} {
	return map[string]interface{}{
		"index":  idx,
		"id":     e.ID().String(),
		"status": e.Status().String(),
	}
}
