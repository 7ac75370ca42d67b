// Package query filters and sorts the test history and incident
// report views. All functions are pure and recompute on every call;
// nothing here caches results or holds a cursor.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
)

// SortKey selects the history ordering
type SortKey string

const (
	SortByDate    SortKey = "date"    // newest first (default)
	SortByAge     SortKey = "age"     // oldest test first, i.e. most overdue on top
	SortByMachine SortKey = "machine" // machine name ascending
	SortByDevice  SortKey = "device"  // device name ascending
)

// HistoryField extracts a searchable string from a history entry
type HistoryField func(models.HistoryEntry) string

// DefaultHistoryFields are the fields matched by free-text search:
// device name, machine name and tester username.
var DefaultHistoryFields = []HistoryField{
	func(e models.HistoryEntry) string { return e.DeviceName },
	func(e models.HistoryEntry) string { return e.MachineName },
	func(e models.HistoryEntry) string { return e.Username },
}

// FilterHistory returns the entries matching the given criteria.
// freeText is a case-insensitive substring match against any of the
// given fields (DefaultHistoryFields when none are passed); empty
// means match-all. machineFilter and userFilter are exact matches
// AND'd with the free text. The input slice is not modified and
// relative order is preserved.
func FilterHistory(entries []models.HistoryEntry, freeText, machineFilter, userFilter string, fields ...HistoryField) []models.HistoryEntry {
	if len(fields) == 0 {
		fields = DefaultHistoryFields
	}
	needle := strings.ToLower(strings.TrimSpace(freeText))

	out := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if machineFilter != "" && e.MachineName != machineFilter {
			continue
		}
		if userFilter != "" && e.Username != userFilter {
			continue
		}
		if needle != "" && !matchesAny(e, needle, fields) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesAny(e models.HistoryEntry, needle string, fields []HistoryField) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f(e)), needle) {
			return true
		}
	}
	return false
}

// SortHistory orders entries by the given key. date and age sort
// descending (most recent / most overdue first); machine and device
// sort ascending with a date-descending tiebreak. The sort is stable:
// entries with equal keys keep their relative order. Unknown keys fall
// back to date ordering. Returns a new slice.
func SortHistory(entries []models.HistoryEntry, key SortKey) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)

	switch key {
	case SortByAge:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AgeDays > out[j].AgeDays
		})
	case SortByMachine:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].MachineName != out[j].MachineName {
				return out[i].MachineName < out[j].MachineName
			}
			return out[i].TestDate.After(out[j].TestDate)
		})
	case SortByDevice:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].DeviceName != out[j].DeviceName {
				return out[i].DeviceName < out[j].DeviceName
			}
			return out[i].TestDate.After(out[j].TestDate)
		})
	default: // SortByDate
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TestDate.After(out[j].TestDate)
		})
	}
	return out
}

// ReportFilter holds the incident report query criteria. Status and
// Severity are exact matches; From/To bound the incident date
// inclusively. Zero values mean "no constraint".
type ReportFilter struct {
	Status   models.ReportStatus
	Severity models.ReportSeverity
	From     *time.Time
	To       *time.Time
}

// FilterReports returns the reports matching the filter, preserving
// relative order.
func FilterReports(reports []models.IncidentReport, f ReportFilter) []models.IncidentReport {
	out := make([]models.IncidentReport, 0, len(reports))
	for _, r := range reports {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Severity != "" && r.Severity != f.Severity {
			continue
		}
		if f.From != nil && r.IncidentDate.Before(*f.From) {
			continue
		}
		if f.To != nil && r.IncidentDate.After(*f.To) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortReports orders reports by incident date, newest first, stable
// under equal dates. Returns a new slice.
func SortReports(reports []models.IncidentReport) []models.IncidentReport {
	out := make([]models.IncidentReport, len(reports))
	copy(out, reports)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IncidentDate.After(out[j].IncidentDate)
	})
	return out
}
