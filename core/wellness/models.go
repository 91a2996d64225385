package wellness

import (
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field names, as reported by validation errors.
const (
	FieldName              = "name"
	FieldWellnessActivity  = "wellness_activity"
	FieldMeTimeActivity    = "me_time_activity"
	FieldScreenFreeMinutes = "screen_free_minutes"
	FieldNotes             = "notes"
)

// DateLayout is how Entry.CreatedAt is rendered in exported rows.
const DateLayout = "2006-01-02 15:04"

type Status string

const (
	StatusHealthy         Status = "Healthy"
	StatusNeedsMoreMeTime Status = "Needs More Me-Time"
)

func (s Status) String() string { return string(s) }

// Preview is the live feedback computed while an entry is being typed.
type Preview int

const (
	PreviewIncomplete Preview = iota
	PreviewInvalid
	PreviewHealthy
	PreviewNeedsMoreMeTime
)

func (p Preview) String() string {
	switch p {
	case PreviewIncomplete:
		return "Incomplete"
	case PreviewInvalid:
		return "Invalid"
	case PreviewHealthy:
		return StatusHealthy.String()
	case PreviewNeedsMoreMeTime:
		return StatusNeedsMoreMeTime.String()
	default:
		return "Unknown"
	}
}

// Message is the text shown next to the form.
func (p Preview) Message() string {
	switch p {
	case PreviewIncomplete:
		return "Fill all fields to see status"
	case PreviewInvalid:
		return "Invalid entry: check names and screen-free time"
	default:
		return "Status: " + p.String()
	}
}

// Status returns the computed status, if any.
func (p Preview) Status() (Status, bool) {
	switch p {
	case PreviewHealthy:
		return StatusHealthy, true
	case PreviewNeedsMoreMeTime:
		return StatusNeedsMoreMeTime, true
	default:
		return "", false
	}
}

func previewOf(s Status) Preview {
	if s == StatusHealthy {
		return PreviewHealthy
	}
	return PreviewNeedsMoreMeTime
}

// NewEntry contains the raw field values needed to create a new Entry.
type NewEntry struct {
	StudentName       string `json:"name" validate:"required,alphaspace"`
	WellnessActivity  string `json:"wellness_activity" validate:"required,alphaspace"`
	MeTimeActivity    string `json:"me_time_activity" validate:"required,alphaspace"`
	ScreenFreeMinutes string `json:"screen_free_minutes" validate:"required,posnumber"`
	Notes             string `json:"notes"`
}

// Clean returns a copy with all leading and trailing whitespace trimmed.
func (ne NewEntry) Clean() NewEntry {
	return NewEntry{
		StudentName:       strings.TrimSpace(ne.StudentName),
		WellnessActivity:  strings.TrimSpace(ne.WellnessActivity),
		MeTimeActivity:    strings.TrimSpace(ne.MeTimeActivity),
		ScreenFreeMinutes: strings.TrimSpace(ne.ScreenFreeMinutes),
		Notes:             strings.TrimSpace(ne.Notes),
	}
}

// Entry is a validated wellness record. It can only be built by a Validator and is never modified.
type Entry struct {
	id                uuid.UUID
	studentName       string
	wellnessActivity  string
	meTimeActivity    string
	screenFreeMinutes float64
	notes             string
	status            Status
	createdAt         time.Time
}

func (e Entry) ID() uuid.UUID              { return e.id }
func (e Entry) StudentName() string        { return e.studentName }
func (e Entry) WellnessActivity() string   { return e.wellnessActivity }
func (e Entry) MeTimeActivity() string     { return e.meTimeActivity }
func (e Entry) ScreenFreeMinutes() float64 { return e.screenFreeMinutes }
func (e Entry) Notes() string              { return e.notes }
func (e Entry) Status() Status             { return e.status }
func (e Entry) CreatedAt() time.Time       { return e.createdAt }
func (e Entry) IsHealthy() bool            { return e.status == StatusHealthy }
func (e Entry) IsZero() bool               { return e.id == uuid.Nil }

// AsNewEntry returns the raw values of e, eg. to pre-fill an edit form.
func (e Entry) AsNewEntry() NewEntry {
	return NewEntry{
		StudentName:       e.studentName,
		WellnessActivity:  e.wellnessActivity,
		MeTimeActivity:    e.meTimeActivity,
		ScreenFreeMinutes: FormatMinutes(e.screenFreeMinutes),
		Notes:             e.notes,
	}
}

// Row returns e as a flat export record.
func (e Entry) Row() Row {
	return Row{
		Name:       e.studentName,
		Wellness:   e.wellnessActivity,
		MeTime:     e.meTimeActivity,
		ScreenTime: e.screenFreeMinutes,
		Status:     e.status.String(),
		Notes:      e.notes,
		Date:       e.createdAt.Format(DateLayout),
	}
}

// Columns is the fixed column order of exported rows.
var Columns = []string{"Name", "Wellness", "MeTime", "ScreenTime", "Status", "Notes", "Date"}

// Row is an Entry flattened for the file writers.
type Row struct {
	Name       string  `json:"Name" yaml:"Name"`
	Wellness   string  `json:"Wellness" yaml:"Wellness"`
	MeTime     string  `json:"MeTime" yaml:"MeTime"`
	ScreenTime float64 `json:"ScreenTime" yaml:"ScreenTime"`
	Status     string  `json:"Status" yaml:"Status"`
	Notes      string  `json:"Notes" yaml:"Notes"`
	Date       string  `json:"Date" yaml:"Date"`
}

// Values returns the row's cells in Columns order.
func (r Row) Values() []string {
	return []string{r.Name, r.Wellness, r.MeTime, FormatMinutes(r.ScreenTime), r.Status, r.Notes, r.Date}
}

// FormatMinutes renders minutes without trailing zeros, eg. 75 or 42.5.
func FormatMinutes(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', -1, 64)
}

// Stats are the aggregate figures shown on the dashboard.
type Stats struct {
	Total           int     `json:"total"`
	Healthy         int     `json:"healthy"`
	NeedsMoreMeTime int     `json:"needs_more_me_time"`
	TotalMinutes    float64 `json:"total_minutes"`
	AverageMinutes  float64 `json:"average_minutes"`
	BestMinutes     float64 `json:"best_minutes"`
	LowestMinutes   float64 `json:"lowest_minutes"`
}

// HealthyRatio is the share of Healthy entries, 0 when there are none.
func (s Stats) HealthyRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Healthy) / float64(s.Total)
}

// ComputeStats aggregates entries. All figures are 0 when there are no entries.
func ComputeStats(entries iter.Seq[Entry]) Stats {
	var stats Stats
	for e := range entries {
		mins := e.ScreenFreeMinutes()
		if stats.Total == 0 || mins > stats.BestMinutes {
			stats.BestMinutes = mins
		}
		if stats.Total == 0 || mins < stats.LowestMinutes {
			stats.LowestMinutes = mins
		}
		stats.Total++
		stats.TotalMinutes += mins
		if e.IsHealthy() {
			stats.Healthy++
		}
	}
	stats.NeedsMoreMeTime = stats.Total - stats.Healthy
	if stats.Total > 0 {
		stats.AverageMinutes = stats.TotalMinutes / float64(stats.Total)
	}
	return stats
}

// Search returns a filter matching entries whose student name or status contains text, ignoring case.
// An empty text matches everything.
func Search(text string) func(Entry) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return func(e Entry) bool {
		if text == "" {
			return true
		}
		return strings.Contains(strings.ToLower(e.studentName), text) ||
			strings.Contains(strings.ToLower(e.status.String()), text)
	}
}
