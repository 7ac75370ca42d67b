package models

// DeviceType classifies a safety device
type DeviceType string

const (
	DeviceTypeButton    DeviceType = "button"
	DeviceTypeCurtain   DeviceType = "curtain"
	DeviceTypeInterlock DeviceType = "interlock"
	DeviceTypeLifeline  DeviceType = "lifeline"
	DeviceTypeOther     DeviceType = "other"
)

// ValidDeviceType reports whether t is one of the known device types
func ValidDeviceType(t DeviceType) bool {
	switch t {
	case DeviceTypeButton, DeviceTypeCurtain, DeviceTypeInterlock, DeviceTypeLifeline, DeviceTypeOther:
		return true
	}
	return false
}

// SafetyDevice represents a safety device mounted on a machine
// (emergency stop button, light curtain, door interlock, ...).
// Created at setup/import time. Its compliance status is derived from
// its most recent TestRecord, never stored here.
type SafetyDevice struct {
	BaseModel
	MachineID  uint       `gorm:"not null;index" json:"machine_id"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	DeviceType DeviceType `gorm:"type:varchar(50);default:'other'" json:"device_type"`

	// Relations
	Machine     *Machine     `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
	TestRecords []TestRecord `gorm:"foreignKey:DeviceID" json:"test_records,omitempty"`
}
