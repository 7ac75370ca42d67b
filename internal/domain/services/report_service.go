package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/manjito26/ESTOP-System/internal/domain/access"
	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/domain/query"
	"github.com/manjito26/ESTOP-System/pkg/logger"
)

// ReportRepository owns incident report storage and id allocation. It
// is injected into the service so tests can swap in an in-memory
// implementation.
type ReportRepository interface {
	Create(report *models.IncidentReport) error
	Update(report *models.IncidentReport) error
	GetByID(id uint) (*models.IncidentReport, error)
	List() ([]models.IncidentReport, error)
}

// ReportDraft carries the unvalidated fields of a report create/update
type ReportDraft struct {
	IncidentDate      time.Time `json:"incident_date" binding:"required"`
	Location          string    `json:"location"`
	Severity          string    `json:"severity" binding:"required" example:"high"` // low, medium, high, critical
	Status            string    `json:"status" example:"open"`                     // open, in-progress, resolved, closed
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description"`
	CorrectiveActions string    `json:"corrective_actions"`
	EquipmentInvolved string    `json:"equipment_involved"`
	Witnesses         string    `json:"witnesses"`
	ReportedBy        string    `json:"reported_by"`
	AssignedTo        string    `json:"assigned_to"`
}

// InterfaceReportService defines the incident report manager
type InterfaceReportService interface {
	CreateReport(actor Actor, draft ReportDraft) (*models.IncidentReport, error)
	UpdateReport(actor Actor, id uint, draft ReportDraft) (*models.IncidentReport, error)
	GetReport(actor Actor, id uint) (*models.IncidentReport, error)
	ListReports(actor Actor, filter query.ReportFilter) ([]models.IncidentReport, error)
	Summary(actor Actor) (*models.ReportSummary, error)
}

// ReportService manages the incident report lifecycle. Concurrent
// edits to the same report are last-writer-wins; there is no
// version check.
type ReportService struct {
	Repo ReportRepository
	Now  func() time.Time
}

// NewReportService creates a new report service
func NewReportService(repo ReportRepository) InterfaceReportService {
	return &ReportService{
		Repo: repo,
		Now:  time.Now,
	}
}

// validateDraft rejects out-of-enum severity/status before anything
// touches the repository. An empty status is allowed on create and
// defaults to open.
func validateDraft(draft ReportDraft, allowEmptyStatus bool) error {
	if !models.ValidReportSeverity(models.ReportSeverity(draft.Severity)) {
		return &ValidationError{Field: "severity", Reason: "must be one of low, medium, high, critical"}
	}
	if draft.Status == "" {
		if !allowEmptyStatus {
			return &ValidationError{Field: "status", Reason: "must not be empty"}
		}
		return nil
	}
	if !models.ValidReportStatus(models.ReportStatus(draft.Status)) {
		return &ValidationError{Field: "status", Reason: "must be one of open, in-progress, resolved, closed"}
	}
	return nil
}

// CreateReport creates a new report. Supervisors and admins only.
// CreatedAt/CreatedBy are stamped here and never change afterwards.
func (s *ReportService) CreateReport(actor Actor, draft ReportDraft) (*models.IncidentReport, error) {
	if !access.Authorize(actor.Role, access.ActionEditReport, access.ResourceReport) {
		return nil, ErrNotPermitted
	}

	if err := validateDraft(draft, true); err != nil {
		return nil, err
	}

	now := s.Now()
	reportStatus := models.ReportStatus(draft.Status)
	if draft.Status == "" {
		reportStatus = models.ReportStatusOpen
	}

	report := &models.IncidentReport{
		IncidentDate:      draft.IncidentDate,
		Location:          draft.Location,
		Severity:          models.ReportSeverity(draft.Severity),
		Status:            reportStatus,
		Title:             draft.Title,
		Description:       draft.Description,
		CorrectiveActions: draft.CorrectiveActions,
		EquipmentInvolved: draft.EquipmentInvolved,
		Witnesses:         draft.Witnesses,
		ReportedBy:        draft.ReportedBy,
		AssignedTo:        draft.AssignedTo,
		CreatedAt:         now,
		CreatedBy:         actor.Username,
		ModifiedAt:        now,
		ModifiedBy:        actor.Username,
	}

	if err := s.Repo.Create(report); err != nil {
		return nil, err
	}

	logger.Info("Report %d created by %s", report.ID, actor.Username)
	return report, nil
}

// UpdateReport edits an existing report. Supervisors and admins only;
// an unknown id is an error, never a silent create.
func (s *ReportService) UpdateReport(actor Actor, id uint, draft ReportDraft) (*models.IncidentReport, error) {
	if !access.Authorize(actor.Role, access.ActionEditReport, access.ResourceReport) {
		return nil, ErrNotPermitted
	}

	if err := validateDraft(draft, false); err != nil {
		return nil, err
	}

	report, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	report.IncidentDate = draft.IncidentDate
	report.Location = draft.Location
	report.Severity = models.ReportSeverity(draft.Severity)
	report.Status = models.ReportStatus(draft.Status)
	report.Title = draft.Title
	report.Description = draft.Description
	report.CorrectiveActions = draft.CorrectiveActions
	report.EquipmentInvolved = draft.EquipmentInvolved
	report.Witnesses = draft.Witnesses
	report.ReportedBy = draft.ReportedBy
	report.AssignedTo = draft.AssignedTo
	report.ModifiedAt = s.Now()
	report.ModifiedBy = actor.Username

	if err := s.Repo.Update(report); err != nil {
		return nil, err
	}

	logger.Info("Report %d updated by %s", report.ID, actor.Username)
	return report, nil
}

// GetReport returns a single report
func (s *ReportService) GetReport(actor Actor, id uint) (*models.IncidentReport, error) {
	if !access.Authorize(actor.Role, access.ActionViewHistory, access.ResourceReport) {
		return nil, ErrNotPermitted
	}
	return s.Repo.GetByID(id)
}

// ListReports returns the reports matching the filter, newest incident
// first
func (s *ReportService) ListReports(actor Actor, filter query.ReportFilter) ([]models.IncidentReport, error) {
	if !access.Authorize(actor.Role, access.ActionViewHistory, access.ResourceReport) {
		return nil, ErrNotPermitted
	}

	if filter.Status != "" && !models.ValidReportStatus(filter.Status) {
		return nil, &ValidationError{Field: "status", Reason: "must be one of open, in-progress, resolved, closed"}
	}
	if filter.Severity != "" && !models.ValidReportSeverity(filter.Severity) {
		return nil, &ValidationError{Field: "severity", Reason: "must be one of low, medium, high, critical"}
	}

	reports, err := s.Repo.List()
	if err != nil {
		return nil, err
	}

	reports = query.FilterReports(reports, filter)
	return query.SortReports(reports), nil
}

// Summary aggregates report counts by status and severity
func (s *ReportService) Summary(actor Actor) (*models.ReportSummary, error) {
	if !access.Authorize(actor.Role, access.ActionViewSummary, access.ResourceReport) {
		return nil, ErrNotPermitted
	}

	reports, err := s.Repo.List()
	if err != nil {
		return nil, err
	}

	summary := &models.ReportSummary{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case models.ReportStatusOpen:
			summary.Open++
		case models.ReportStatusInProgress:
			summary.InProgress++
		case models.ReportStatusResolved:
			summary.Resolved++
		case models.ReportStatusClosed:
			summary.Closed++
		}
		switch r.Severity {
		case models.SeverityLow:
			summary.Low++
		case models.SeverityMedium:
			summary.Medium++
		case models.SeverityHigh:
			summary.High++
		case models.SeverityCritical:
			summary.Critical++
		}
	}
	return summary, nil
}

// GormReportRepository is the GORM implementation of the report
// repository
type GormReportRepository struct {
	DB *gorm.DB
}

// NewGormReportRepository creates a GORM-backed report repository
func NewGormReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{DB: db}
}

// Create inserts a report; the database allocates the id
func (r *GormReportRepository) Create(report *models.IncidentReport) error {
	if err := r.DB.Create(report).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Update saves an existing report
func (r *GormReportRepository) Update(report *models.IncidentReport) error {
	var count int64
	if err := r.DB.Model(&models.IncidentReport{}).Where("id = ?", report.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if count == 0 {
		return fmt.Errorf("report %d: %w", report.ID, ErrNotFound)
	}
	if err := r.DB.Save(report).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// GetByID returns a report by id
func (r *GormReportRepository) GetByID(id uint) (*models.IncidentReport, error) {
	var report models.IncidentReport
	if err := r.DB.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &report, nil
}

// List returns all reports
func (r *GormReportRepository) List() ([]models.IncidentReport, error) {
	var reports []models.IncidentReport
	if err := r.DB.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return reports, nil
}
