package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/manjito26/ESTOP-System/internal/domain/access"
	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/domain/query"
	"github.com/manjito26/ESTOP-System/internal/domain/status"
	"github.com/manjito26/ESTOP-System/pkg/logger"
)

// LedgerStore is the narrow surface of the test ledger the service
// depends on. The ledger is append-only: there is no update or delete.
type LedgerStore interface {
	InsertTestRecord(record *models.TestRecord) error
	ListRecordsForDevice(deviceID uint) ([]models.TestRecord, error)
	ListAllRecords() ([]models.HistoryEntry, error)
	GetDevice(deviceID uint) (*models.SafetyDevice, error)
}

// HistoryQuery carries the test history search criteria
type HistoryQuery struct {
	Search  string        `form:"search"`
	Machine string        `form:"machine"`
	User    string        `form:"user"`
	Sort    query.SortKey `form:"sort"`
}

// InterfaceTestRecordService defines the ledger service
type InterfaceTestRecordService interface {
	RecordTest(actor Actor, deviceID uint, result models.TestResult, notes string) (*models.TestRecord, error)
	GetHistory(actor Actor, q HistoryQuery) ([]models.HistoryEntry, error)
	GetDeviceStatus(actor Actor, deviceID uint) (*status.Classification, error)
}

// TestRecordService owns the append-only test ledger and the derived
// history view. The clock is injectable so classification is
// deterministic under test.
type TestRecordService struct {
	Store  LedgerStore
	Alerts InterfaceAlertService // optional; nil disables alerting
	Now    func() time.Time
}

// NewTestRecordService creates a new test record service
func NewTestRecordService(store LedgerStore, alerts InterfaceAlertService) InterfaceTestRecordService {
	return &TestRecordService{
		Store:  store,
		Alerts: alerts,
		Now:    time.Now,
	}
}

// RecordTest appends a test result to the ledger. The timestamp is
// server-assigned; the record is immutable from here on. A FAIL result
// additionally publishes an alert, best effort.
func (s *TestRecordService) RecordTest(actor Actor, deviceID uint, result models.TestResult, notes string) (*models.TestRecord, error) {
	if !access.Authorize(actor.Role, access.ActionRecordTest, access.ResourceTestRecord) {
		return nil, ErrNotPermitted
	}

	if !models.ValidTestResult(result) {
		return nil, &ValidationError{Field: "result", Reason: "must be PASS or FAIL"}
	}

	device, err := s.Store.GetDevice(deviceID)
	if err != nil {
		return nil, err
	}

	record := &models.TestRecord{
		MachineID: device.MachineID,
		DeviceID:  device.ID,
		Username:  actor.Username,
		Result:    result,
		Notes:     notes,
		TestDate:  s.Now(),
	}

	if err := s.Store.InsertTestRecord(record); err != nil {
		return nil, err
	}

	logger.Info("Test recorded: machine %d, device %d, result %s by %s", record.MachineID, record.DeviceID, record.Result, actor.Username)

	if result == models.TestResultFail && s.Alerts != nil {
		machineName := ""
		if device.Machine != nil {
			machineName = device.Machine.Name
		}
		if err := s.Alerts.PublishTestFailure(record, machineName, device.Name); err != nil {
			logger.Warning("Failed to publish test failure alert for device %d: %v", device.ID, err)
		}
	}

	return record, nil
}

// GetHistory returns the filtered, sorted history view. Every entry is
// classified against the service clock at read time; anomalous
// (future-dated) entries are surfaced with a warning flag, not hidden.
func (s *TestRecordService) GetHistory(actor Actor, q HistoryQuery) ([]models.HistoryEntry, error) {
	if !access.Authorize(actor.Role, access.ActionViewHistory, access.ResourceTestRecord) {
		return nil, ErrNotPermitted
	}

	entries, err := s.Store.ListAllRecords()
	if err != nil {
		return nil, err
	}

	now := s.Now()
	for i := range entries {
		c := status.Classify(now, entries[i].TestDate)
		entries[i].AgeDays = c.AgeDays
		entries[i].Bucket = string(c.Bucket)
		entries[i].Color = c.Color
		entries[i].Anomalous = c.Anomalous
		if c.Anomalous {
			logger.Warning("Test record %d has a future timestamp: %s", entries[i].RecordID, entries[i].TestDate)
			if s.Alerts != nil {
				if err := s.Alerts.PublishClockAnomaly(entries[i].DeviceID, entries[i].TestDate); err != nil {
					logger.Warning("Failed to publish clock anomaly alert: %v", err)
				}
			}
		}
	}

	entries = query.FilterHistory(entries, q.Search, q.Machine, q.User)
	entries = query.SortHistory(entries, q.Sort)
	return entries, nil
}

// GetDeviceStatus derives the current status of a device from its most
// recent test record. A device with no records classifies as unknown.
func (s *TestRecordService) GetDeviceStatus(actor Actor, deviceID uint) (*status.Classification, error) {
	if !access.Authorize(actor.Role, access.ActionViewHistory, access.ResourceTestRecord) {
		return nil, ErrNotPermitted
	}

	if _, err := s.Store.GetDevice(deviceID); err != nil {
		return nil, err
	}

	records, err := s.Store.ListRecordsForDevice(deviceID)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		c := status.Unclassified()
		return &c, nil
	}

	latest := records[0].TestDate
	for _, r := range records[1:] {
		if r.TestDate.After(latest) {
			latest = r.TestDate
		}
	}

	c := status.Classify(s.Now(), latest)
	return &c, nil
}

// GormLedgerStore is the GORM implementation of the ledger store
type GormLedgerStore struct {
	DB *gorm.DB
}

// NewGormLedgerStore creates a GORM-backed ledger store
func NewGormLedgerStore(db *gorm.DB) LedgerStore {
	return &GormLedgerStore{DB: db}
}

// InsertTestRecord appends a record to the ledger
func (s *GormLedgerStore) InsertTestRecord(record *models.TestRecord) error {
	if err := s.DB.Create(record).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ListRecordsForDevice returns all records for a device
func (s *GormLedgerStore) ListRecordsForDevice(deviceID uint) ([]models.TestRecord, error) {
	var records []models.TestRecord
	if err := s.DB.Where("device_id = ?", deviceID).Order("test_date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return records, nil
}

// ListAllRecords returns the full ledger joined with machine and
// device names, newest first
func (s *GormLedgerStore) ListAllRecords() ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := s.DB.Table("test_records tr").
		Select("tr.id AS record_id, tr.machine_id, tr.device_id, m.name AS machine_name, sd.name AS device_name, tr.username, tr.result, tr.notes, tr.test_date").
		Joins("JOIN machines m ON tr.machine_id = m.id").
		Joins("JOIN safety_devices sd ON tr.device_id = sd.id").
		Order("tr.test_date DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return entries, nil
}

// GetDevice returns a safety device with its machine preloaded
func (s *GormLedgerStore) GetDevice(deviceID uint) (*models.SafetyDevice, error) {
	var device models.SafetyDevice
	if err := s.DB.Preload("Machine").First(&device, deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("safety device %d: %w", deviceID, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &device, nil
}
