package testutil

import (
	"testing"

	"github.com/trezcool/mindbloom/core/wellness"
	logsvc "github.com/trezcool/mindbloom/services/logger"
	inmemdb "github.com/trezcool/mindbloom/storage/inmem"
)

// NewService returns a service over an empty in-memory store, with the default policy and no logging.
func NewService(t *testing.T) *wellness.Service {
	t.Helper()
	v, err := wellness.NewDefaultValidator(wellness.DefaultPolicy())
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return wellness.NewService(inmemdb.NewEntryStore(), v, logsvc.NewNop())
}

// MustEntry validates ne with the default policy.
func MustEntry(t *testing.T, ne wellness.NewEntry) wellness.Entry {
	t.Helper()
	v, err := wellness.NewDefaultValidator(wellness.DefaultPolicy())
	if err != nil {
		t.Fatalf("MustEntry() failed: %v", err)
	}
	e, err := v.Validate(ne)
	if err != nil {
		t.Fatalf("MustEntry() failed: %v", err)
	}
	return e
}

func NewEntry(name, wellnessActivity, meTimeActivity, minutes string) wellness.NewEntry {
	return wellness.NewEntry{
		StudentName:       name,
		WellnessActivity:  wellnessActivity,
		MeTimeActivity:    meTimeActivity,
		ScreenFreeMinutes: minutes,
	}
}

// CreateEntry logs a new entry through svc.
func CreateEntry(t *testing.T, svc *wellness.Service, name, wellnessActivity, meTimeActivity, minutes string) wellness.Entry {
	t.Helper()
	e, _, err := svc.Log(NewEntry(name, wellnessActivity, meTimeActivity, minutes))
	if err != nil {
		t.Fatalf("CreateEntry() failed: %v", err)
	}
	return e
}
