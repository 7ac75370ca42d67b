package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/domain/status"
)

// fakeLedgerStore is an in-memory LedgerStore for tests
type fakeLedgerStore struct {
	devices map[uint]models.SafetyDevice
	records []models.TestRecord
	nextID  uint
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{devices: map[uint]models.SafetyDevice{}, nextID: 1}
}

func (f *fakeLedgerStore) addDevice(id, machineID uint, name, machineName string) {
	f.devices[id] = models.SafetyDevice{
		BaseModel:  models.BaseModel{ID: id},
		MachineID:  machineID,
		Name:       name,
		DeviceType: models.DeviceTypeButton,
		Machine:    &models.Machine{BaseModel: models.BaseModel{ID: machineID}, Name: machineName},
	}
}

func (f *fakeLedgerStore) InsertTestRecord(record *models.TestRecord) error {
	record.ID = f.nextID
	f.nextID++
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeLedgerStore) ListRecordsForDevice(deviceID uint) ([]models.TestRecord, error) {
	var out []models.TestRecord
	for _, r := range f.records {
		if r.DeviceID == deviceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLedgerStore) ListAllRecords() ([]models.HistoryEntry, error) {
	out := make([]models.HistoryEntry, 0, len(f.records))
	for _, r := range f.records {
		device := f.devices[r.DeviceID]
		machineName := ""
		if device.Machine != nil {
			machineName = device.Machine.Name
		}
		out = append(out, models.HistoryEntry{
			RecordID:    r.ID,
			MachineID:   r.MachineID,
			DeviceID:    r.DeviceID,
			MachineName: machineName,
			DeviceName:  device.Name,
			Username:    r.Username,
			Result:      r.Result,
			Notes:       r.Notes,
			TestDate:    r.TestDate,
		})
	}
	return out, nil
}

func (f *fakeLedgerStore) GetDevice(deviceID uint) (*models.SafetyDevice, error) {
	d, ok := f.devices[deviceID]
	if !ok {
		return nil, fmt.Errorf("safety device %d: %w", deviceID, ErrNotFound)
	}
	return &d, nil
}

// recordingAlerts captures published alerts for assertions
type recordingAlerts struct {
	failures  int
	anomalies int
}

func (a *recordingAlerts) Connect() error { return nil }
func (a *recordingAlerts) Disconnect()    {}
func (a *recordingAlerts) PublishTestFailure(record *models.TestRecord, machineName, deviceName string) error {
	a.failures++
	return nil
}
func (a *recordingAlerts) PublishClockAnomaly(deviceID uint, testDate time.Time) error {
	a.anomalies++
	return nil
}

func newTestLedgerService(store LedgerStore, alerts InterfaceAlertService, now time.Time) *TestRecordService {
	return &TestRecordService{
		Store:  store,
		Alerts: alerts,
		Now:    func() time.Time { return now },
	}
}

func TestRecordTestAppendsWithServerTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeLedgerStore()
	store.addDevice(1, 7, "Main E-Stop Button", "Hydraulic Press 1")
	svc := newTestLedgerService(store, nil, now)

	record, err := svc.RecordTest(userActor, 1, models.TestResultPass, "monthly check")
	require.NoError(t, err)

	assert.Equal(t, uint(7), record.MachineID)
	assert.Equal(t, uint(1), record.DeviceID)
	assert.Equal(t, "worker", record.Username)
	assert.Equal(t, now, record.TestDate, "the timestamp is server-assigned")
	assert.Equal(t, "monthly check", record.Notes)
	require.Len(t, store.records, 1)
}

func TestRecordTestAllRolesMayRecord(t *testing.T) {
	store := newFakeLedgerStore()
	store.addDevice(1, 7, "Main E-Stop Button", "Hydraulic Press 1")
	svc := newTestLedgerService(store, nil, time.Now())

	for _, actor := range []Actor{userActor, supervisorActor, adminActor} {
		_, err := svc.RecordTest(actor, 1, models.TestResultPass, "")
		assert.NoError(t, err, "role %s", actor.Role)
	}
	assert.Len(t, store.records, 3)
}

func TestRecordTestRejectsInvalidResult(t *testing.T) {
	store := newFakeLedgerStore()
	store.addDevice(1, 7, "Main E-Stop Button", "Hydraulic Press 1")
	svc := newTestLedgerService(store, nil, time.Now())

	_, err := svc.RecordTest(userActor, 1, "MAYBE", "")
	assert.True(t, IsValidation(err))

	_, err = svc.RecordTest(userActor, 1, "pass", "")
	assert.True(t, IsValidation(err), "results are case-sensitive")

	assert.Empty(t, store.records)
}

func TestRecordTestUnknownDevice(t *testing.T) {
	svc := newTestLedgerService(newFakeLedgerStore(), nil, time.Now())

	_, err := svc.RecordTest(userActor, 99, models.TestResultPass, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordTestFailPublishesAlert(t *testing.T) {
	store := newFakeLedgerStore()
	store.addDevice(1, 7, "Main E-Stop Button", "Hydraulic Press 1")
	alerts := &recordingAlerts{}
	svc := newTestLedgerService(store, alerts, time.Now())

	_, err := svc.RecordTest(userActor, 1, models.TestResultPass, "")
	require.NoError(t, err)
	assert.Equal(t, 0, alerts.failures, "PASS publishes nothing")

	_, err = svc.RecordTest(userActor, 1, models.TestResultFail, "button stuck")
	require.NoError(t, err)
	assert.Equal(t, 1, alerts.failures)
}

func TestGetHistoryClassifiesAtReadTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeLedgerStore()
	store.addDevice(1, 7, "Main E-Stop Button", "Hydraulic Press 1")
	svc := newTestLedgerService(store, nil, now)

	_, err := svc.RecordTest(userActor, 1, models.TestResultPass, "")
	require.NoError(t, err)

	entries, err := svc.GetHistory(userActor, HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, 0, entries[0].AgeDays)
	assert.Equal(t, string(status.BucketRecent), entries[0].Bucket)
	assert.Equal(t, status.ColorGreen, entries[0].Color)
	assert.Equal(t, "Hydraulic Press 1", entries[0].MachineName)
	assert.Equal(t, "Main E-Stop Button", entries[0].DeviceName)

	// the same ledger read 100 days later lands in a different bucket
	svc.Now = func() time.Time { return now.AddDate(0, 0, 100) }
	entries, err = svc.GetHistory(userActor, HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 100, entries[0].AgeDays)
	assert.Equal(t, string(status.BucketAttention), entries[0].Bucket)
}

func TestGetHistoryFlagsFutureTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeLedgerStore()
	store.addDevice(1, 7, "Main E-Stop Button", "Hydraulic Press 1")
	store.records = append(store.records, models.TestRecord{
		ID: 1, MachineID: 7, DeviceID: 1, Username: "worker",
		Result: models.TestResultPass, TestDate: now.Add(72 * time.Hour),
	})
	alerts := &recordingAlerts{}
	svc := newTestLedgerService(store, alerts, now)

	entries, err := svc.GetHistory(userActor, HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 1, "anomalous entries are surfaced, not hidden")

	assert.True(t, entries[0].Anomalous)
	assert.Equal(t, 0, entries[0].AgeDays)
	assert.Equal(t, 1, alerts.anomalies)
}

func TestGetHistoryAppliesQuery(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeLedgerStore()
	store.addDevice(1, 7, "Main E-Stop Button", "Hydraulic Press 1")
	store.addDevice(2, 8, "Pull Cord East", "Conveyor Line 2")
	svc := newTestLedgerService(store, nil, now)

	_, err := svc.RecordTest(userActor, 1, models.TestResultPass, "")
	require.NoError(t, err)
	_, err = svc.RecordTest(supervisorActor, 2, models.TestResultPass, "")
	require.NoError(t, err)

	entries, err := svc.GetHistory(userActor, HistoryQuery{Search: "conveyor"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Pull Cord East", entries[0].DeviceName)

	entries, err = svc.GetHistory(userActor, HistoryQuery{User: "worker"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Main E-Stop Button", entries[0].DeviceName)
}

func TestGetDeviceStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeLedgerStore()
	store.addDevice(1, 7, "Main E-Stop Button", "Hydraulic Press 1")
	svc := newTestLedgerService(store, nil, now)

	// never tested
	c, err := svc.GetDeviceStatus(userActor, 1)
	require.NoError(t, err)
	assert.Equal(t, status.BucketUnknown, c.Bucket)

	// classification follows the most recent record, not the first
	store.records = append(store.records,
		models.TestRecord{ID: 1, DeviceID: 1, TestDate: now.AddDate(0, 0, -200)},
		models.TestRecord{ID: 2, DeviceID: 1, TestDate: now.AddDate(0, 0, -40)},
	)

	c, err = svc.GetDeviceStatus(userActor, 1)
	require.NoError(t, err)
	assert.Equal(t, 40, c.AgeDays)
	assert.Equal(t, status.BucketGood, c.Bucket)
}

func TestGetDeviceStatusUnknownDevice(t *testing.T) {
	svc := newTestLedgerService(newFakeLedgerStore(), nil, time.Now())

	_, err := svc.GetDeviceStatus(userActor, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
