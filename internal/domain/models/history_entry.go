package models

import "time"

// HistoryEntry is one row of the test history view: a ledger record
// joined with its machine/device names plus the age classification
// computed at read time.
type HistoryEntry struct {
	RecordID    uint       `json:"record_id"`
	MachineID   uint       `json:"machine_id"`
	DeviceID    uint       `json:"device_id"`
	MachineName string     `json:"machine_name"`
	DeviceName  string     `json:"device_name"`
	Username    string     `json:"username"`
	Result      TestResult `json:"result"`
	Notes       string     `json:"notes,omitempty"`
	TestDate    time.Time  `json:"test_date"`

	// Derived status fields
	AgeDays   int    `json:"days_since_test"`
	Bucket    string `json:"bucket"`
	Color     string `json:"color"`
	Anomalous bool   `json:"anomalous,omitempty"` // test date in the future
}
