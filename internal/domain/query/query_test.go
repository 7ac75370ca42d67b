package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func sampleHistory() []models.HistoryEntry {
	return []models.HistoryEntry{
		{RecordID: 1, MachineName: "Hydraulic Press 1", DeviceName: "Main E-Stop Button", Username: "mhiggins", TestDate: day(10), AgeDays: 20},
		{RecordID: 2, MachineName: "Conveyor Line 2", DeviceName: "Pull Cord East", Username: "jdoe", TestDate: day(25), AgeDays: 5},
		{RecordID: 3, MachineName: "Conveyor Line 2", DeviceName: "Pull Cord West", Username: "mhiggins", TestDate: day(5), AgeDays: 25},
		{RecordID: 4, MachineName: "CNC Mill 3", DeviceName: "Door Interlock", Username: "asmith", TestDate: day(15), AgeDays: 15},
	}
}

func recordIDs(entries []models.HistoryEntry) []uint {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.RecordID)
	}
	return ids
}

func TestFilterHistoryEmptyTextMatchesAll(t *testing.T) {
	entries := sampleHistory()

	out := FilterHistory(entries, "", "", "")
	assert.Len(t, out, len(entries))

	out = FilterHistory(entries, "   ", "", "")
	assert.Len(t, out, len(entries), "whitespace-only search matches all")
}

func TestFilterHistoryCaseInsensitive(t *testing.T) {
	entries := sampleHistory()

	for _, needle := range []string{"pull cord", "PULL CORD", "Pull Cord"} {
		out := FilterHistory(entries, needle, "", "")
		assert.Equal(t, []uint{2, 3}, recordIDs(out), "needle %q", needle)
	}
}

func TestFilterHistorySearchesAllFields(t *testing.T) {
	entries := sampleHistory()

	// machine name
	out := FilterHistory(entries, "cnc", "", "")
	assert.Equal(t, []uint{4}, recordIDs(out))

	// device name
	out = FilterHistory(entries, "interlock", "", "")
	assert.Equal(t, []uint{4}, recordIDs(out))

	// tester username
	out = FilterHistory(entries, "mhiggins", "", "")
	assert.Equal(t, []uint{1, 3}, recordIDs(out))
}

func TestFilterHistoryExactFiltersAnd(t *testing.T) {
	entries := sampleHistory()

	out := FilterHistory(entries, "", "Conveyor Line 2", "")
	assert.Equal(t, []uint{2, 3}, recordIDs(out))

	out = FilterHistory(entries, "", "Conveyor Line 2", "mhiggins")
	assert.Equal(t, []uint{3}, recordIDs(out))

	// exact machine filter does not substring-match
	out = FilterHistory(entries, "", "Conveyor", "")
	assert.Empty(t, out)

	// all criteria AND together
	out = FilterHistory(entries, "west", "Conveyor Line 2", "jdoe")
	assert.Empty(t, out)
}

func TestFilterHistoryPreservesInputOrder(t *testing.T) {
	entries := sampleHistory()

	out := FilterHistory(entries, "", "", "mhiggins")
	assert.Equal(t, []uint{1, 3}, recordIDs(out))
}

func TestSortHistoryDateDefault(t *testing.T) {
	entries := sampleHistory()

	out := SortHistory(entries, "")
	assert.Equal(t, []uint{2, 4, 1, 3}, recordIDs(out), "newest first")

	out = SortHistory(entries, SortByDate)
	assert.Equal(t, []uint{2, 4, 1, 3}, recordIDs(out))

	out = SortHistory(entries, "nonsense")
	assert.Equal(t, []uint{2, 4, 1, 3}, recordIDs(out), "unknown key falls back to date")
}

func TestSortHistoryAgeDescending(t *testing.T) {
	out := SortHistory(sampleHistory(), SortByAge)
	assert.Equal(t, []uint{3, 1, 4, 2}, recordIDs(out), "most overdue first")
}

func TestSortHistoryMachineAscendingWithDateTiebreak(t *testing.T) {
	out := SortHistory(sampleHistory(), SortByMachine)

	// CNC Mill 3, then Conveyor Line 2 (newest of its two first), then
	// Hydraulic Press 1
	assert.Equal(t, []uint{4, 2, 3, 1}, recordIDs(out))
}

func TestSortHistoryDeviceAscending(t *testing.T) {
	out := SortHistory(sampleHistory(), SortByDevice)
	assert.Equal(t, []uint{4, 1, 2, 3}, recordIDs(out))
}

func TestSortHistoryDoesNotMutateInput(t *testing.T) {
	entries := sampleHistory()
	before := recordIDs(entries)

	SortHistory(entries, SortByAge)
	assert.Equal(t, before, recordIDs(entries))
}

func TestSortHistoryIdempotent(t *testing.T) {
	once := SortHistory(sampleHistory(), SortByMachine)
	twice := SortHistory(once, SortByMachine)
	assert.Equal(t, recordIDs(once), recordIDs(twice))
}

func TestSortHistoryStableOnEqualKeys(t *testing.T) {
	entries := []models.HistoryEntry{
		{RecordID: 1, AgeDays: 10, TestDate: day(3)},
		{RecordID: 2, AgeDays: 10, TestDate: day(3)},
		{RecordID: 3, AgeDays: 10, TestDate: day(3)},
	}

	out := SortHistory(entries, SortByAge)
	assert.Equal(t, []uint{1, 2, 3}, recordIDs(out), "equal ages keep input order")

	out = SortHistory(entries, SortByDate)
	assert.Equal(t, []uint{1, 2, 3}, recordIDs(out), "equal timestamps keep input order")
}

func sampleReports() []models.IncidentReport {
	return []models.IncidentReport{
		{ID: 1, Status: models.ReportStatusOpen, Severity: models.SeverityHigh, IncidentDate: day(10)},
		{ID: 2, Status: models.ReportStatusResolved, Severity: models.SeverityLow, IncidentDate: day(20)},
		{ID: 3, Status: models.ReportStatusOpen, Severity: models.SeverityCritical, IncidentDate: day(15)},
	}
}

func reportIDs(reports []models.IncidentReport) []uint {
	ids := make([]uint, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestFilterReports(t *testing.T) {
	reports := sampleReports()

	out := FilterReports(reports, ReportFilter{})
	assert.Len(t, out, 3, "zero filter matches all")

	out = FilterReports(reports, ReportFilter{Status: models.ReportStatusOpen})
	assert.Equal(t, []uint{1, 3}, reportIDs(out))

	out = FilterReports(reports, ReportFilter{Severity: models.SeverityCritical})
	assert.Equal(t, []uint{3}, reportIDs(out))

	out = FilterReports(reports, ReportFilter{Status: models.ReportStatusOpen, Severity: models.SeverityHigh})
	assert.Equal(t, []uint{1}, reportIDs(out))
}

func TestFilterReportsDateRangeInclusive(t *testing.T) {
	reports := sampleReports()
	from := day(10)
	to := day(15)

	out := FilterReports(reports, ReportFilter{From: &from, To: &to})
	assert.Equal(t, []uint{1, 3}, reportIDs(out), "bounds are inclusive")

	out = FilterReports(reports, ReportFilter{From: &to})
	assert.Equal(t, []uint{2, 3}, reportIDs(out))
}

func TestSortReportsNewestIncidentFirst(t *testing.T) {
	out := SortReports(sampleReports())
	assert.Equal(t, []uint{2, 3, 1}, reportIDs(out))
}
