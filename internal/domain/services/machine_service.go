package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/config"
)

// InterfaceMachineService defines the machine/device catalogue service.
// Machines and their safety devices are reference data created at
// setup/import time; there is no delete path.
type InterfaceMachineService interface {
	GetAllMachines(q models.PaginationQuery) ([]models.Machine, models.PaginationResult, error)
	GetMachineByID(id uint) (*models.Machine, error)
	GetDevicesForMachine(machineID uint) ([]models.SafetyDevice, error)
	CreateMachine(machine *models.Machine) error
	CreateDevice(device *models.SafetyDevice) error
}

// MachineService provides machine and safety device lookups
type MachineService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMachineService creates a new machine service
func NewMachineService(db *gorm.DB, cfg *config.Config) InterfaceMachineService {
	return &MachineService{
		DB:     db,
		Config: cfg,
	}
}

// GetAllMachines returns one page of machines ordered by name
func (s *MachineService) GetAllMachines(q models.PaginationQuery) ([]models.Machine, models.PaginationResult, error) {
	var total int64
	if err := s.DB.Model(&models.Machine{}).Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	pageNum, pageSize := q.Normalize()
	order := "name"
	if q.Desc {
		order = "name DESC"
	}

	var machines []models.Machine
	if err := s.DB.Order(order).Offset((pageNum - 1) * pageSize).Limit(pageSize).Find(&machines).Error; err != nil {
		return nil, models.PaginationResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return machines, models.NewPaginationResult(int(total), pageNum, pageSize), nil
}

// GetMachineByID returns a machine by id
func (s *MachineService) GetMachineByID(id uint) (*models.Machine, error) {
	var machine models.Machine
	if err := s.DB.First(&machine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("machine %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &machine, nil
}

// GetDevicesForMachine returns the safety devices mounted on a
// machine, ordered by device name
func (s *MachineService) GetDevicesForMachine(machineID uint) ([]models.SafetyDevice, error) {
	if _, err := s.GetMachineByID(machineID); err != nil {
		return nil, err
	}

	var devices []models.SafetyDevice
	if err := s.DB.Where("machine_id = ?", machineID).Order("name").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return devices, nil
}

// CreateMachine inserts a machine (setup/import path)
func (s *MachineService) CreateMachine(machine *models.Machine) error {
	if machine.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := s.DB.Create(machine).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// CreateDevice inserts a safety device (setup/import path)
func (s *MachineService) CreateDevice(device *models.SafetyDevice) error {
	if device.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !models.ValidDeviceType(device.DeviceType) {
		return &ValidationError{Field: "device_type", Reason: "must be one of button, curtain, interlock, lifeline, other"}
	}
	if _, err := s.GetMachineByID(device.MachineID); err != nil {
		return err
	}
	if err := s.DB.Create(device).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
