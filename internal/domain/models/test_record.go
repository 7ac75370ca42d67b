package models

import "time"

// TestResult represents the outcome of a safety device test
type TestResult string

const (
	TestResultPass TestResult = "PASS"
	TestResultFail TestResult = "FAIL"
)

// ValidTestResult reports whether r is one of the known results
func ValidTestResult(r TestResult) bool {
	return r == TestResultPass || r == TestResultFail
}

// TestRecord is one entry in the append-only test ledger. Records are
// never updated or deleted after insertion; they are the audit trail.
// TestDate is server-assigned at insert time.
type TestRecord struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	MachineID uint       `gorm:"not null;index" json:"machine_id"`
	DeviceID  uint       `gorm:"not null;index" json:"device_id"`
	Username  string     `gorm:"type:varchar(50);not null" json:"username"`
	Result    TestResult `gorm:"type:varchar(10);not null" json:"result"`
	Notes     string     `gorm:"type:varchar(500)" json:"notes,omitempty"`
	TestDate  time.Time  `gorm:"index" json:"test_date"`

	// Relations
	Machine *Machine      `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
	Device  *SafetyDevice `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
}
