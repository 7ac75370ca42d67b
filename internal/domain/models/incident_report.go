package models

import "time"

// ReportSeverity classifies how serious an incident was
type ReportSeverity string

const (
	SeverityLow      ReportSeverity = "low"
	SeverityMedium   ReportSeverity = "medium"
	SeverityHigh     ReportSeverity = "high"
	SeverityCritical ReportSeverity = "critical"
)

// ValidReportSeverity reports whether s is one of the known severities
func ValidReportSeverity(s ReportSeverity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ReportStatus tracks an incident report through its lifecycle
type ReportStatus string

const (
	ReportStatusOpen       ReportStatus = "open"
	ReportStatusInProgress ReportStatus = "in-progress"
	ReportStatusResolved   ReportStatus = "resolved"
	ReportStatusClosed     ReportStatus = "closed"
)

// ValidReportStatus reports whether s is one of the known statuses
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportStatusOpen, ReportStatusInProgress, ReportStatusResolved, ReportStatusClosed:
		return true
	}
	return false
}

// IncidentReport describes a safety incident. Reports are editable by
// supervisors and admins; every edit restamps ModifiedAt/ModifiedBy.
// CreatedAt/CreatedBy are stamped once at creation and never change.
type IncidentReport struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	IncidentDate      time.Time      `gorm:"index" json:"incident_date"`
	Location          string         `gorm:"type:varchar(100)" json:"location"`
	Severity          ReportSeverity `gorm:"type:varchar(20);not null" json:"severity"`
	Status            ReportStatus   `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Title             string         `gorm:"type:varchar(200)" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	CorrectiveActions string         `gorm:"type:text" json:"corrective_actions"`
	EquipmentInvolved string         `gorm:"type:varchar(200)" json:"equipment_involved"`
	Witnesses         string         `gorm:"type:varchar(200)" json:"witnesses"`
	ReportedBy        string         `gorm:"type:varchar(50)" json:"reported_by"`
	AssignedTo        string         `gorm:"type:varchar(50)" json:"assigned_to,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	CreatedBy         string         `gorm:"type:varchar(50)" json:"created_by"`
	ModifiedAt        time.Time      `json:"modified_at"`
	ModifiedBy        string         `gorm:"type:varchar(50)" json:"modified_by"`
}

// ReportSummary aggregates report counts by status and severity
type ReportSummary struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
	Low        int `json:"low"`
	Medium     int `json:"medium"`
	High       int `json:"high"`
	Critical   int `json:"critical"`
}
