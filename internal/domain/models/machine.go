package models

// Machine represents an industrial machine carrying safety devices.
// Machines are created by setup/import and never deleted through the
// API once devices reference them.
type Machine struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Location string `gorm:"type:varchar(100)" json:"location"`

	// Relations
	SafetyDevices []SafetyDevice `gorm:"foreignKey:MachineID" json:"safety_devices,omitempty"`
}
