package container

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/config"
)

// ServiceContainer manages dependency injection for all services
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	users  services.UserStore

	// Base services
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
	alertService services.InterfaceAlertService

	// Domain services
	machineService    services.InterfaceMachineService
	testRecordService services.InterfaceTestRecordService
	reportService     services.InterfaceReportService
	userService       services.InterfaceUserService

	mu sync.RWMutex
}

// NewServiceContainer creates a new service container
func NewServiceContainer(db *gorm.DB, cfg *config.Config, users services.UserStore) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}
	if users == nil {
		panic("user store is nil")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		users:  users,
	}
	container.initializeServices()
	return container
}

// initializeServices wires up all services
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Redis-backed token blacklist
	c.redisService = services.NewRedisService(c.config)

	// MQTT alert publisher; a broker outage must not stop the server
	c.alertService = services.NewAlertService(c.config)
	if err := c.alertService.Connect(); err != nil {
		log.Printf("MQTT alert broker connection failed: %v (alerts disabled until reconnect)", err)
	}

	// Identity
	c.userService = services.NewUserService(c.users)
	c.jwtService = services.NewJWTService(c.config, c.userService)

	// Domain services
	c.machineService = services.NewMachineService(c.db, c.config)
	c.testRecordService = services.NewTestRecordService(services.NewGormLedgerStore(c.db), c.alertService)
	c.reportService = services.NewReportService(services.NewGormReportRepository(c.db))
}

// GetService returns the service with the given name
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "alert":
		return c.alertService
	case "machine":
		return c.machineService
	case "test_record":
		return c.testRecordService
	case "report":
		return c.reportService
	case "user":
		return c.userService
	default:
		return nil
	}
}

// GetDB returns the database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
