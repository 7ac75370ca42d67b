// @title           ESTOP Test Record Service API
// @version         1.0
// @description     Safety device test ledger with compliance status tracking and incident report management

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/manjito26/ESTOP-System/internal/app/routes"
	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/config"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/database"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/userstore"
	Logger "github.com/manjito26/ESTOP-System/pkg/logger"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		Logger.Warning("No .env file loaded: %v", err)
		// environment variables may already be set another way
	} else {
		Logger.Info("Loaded .env file")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("Failed to create database connection pool: %v", err)
	}
	db := pool.GetDB()

	if cfg.DBMigrationMode == "drop" {
		log.Println("Warning: running in drop mode, all tables will be dropped and recreated")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("Failed to drop and recreate tables: %v", err)
		}
	} else {
		log.Println("Running in standard mode, only new columns and tables will be added")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("Auto migration failed: %v", err)
		}
	}

	users, err := userstore.NewFileStore(cfg.UsersFilePath)
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}

	ensureAdminExists(users, cfg)

	if cfg.SeedSampleData {
		if err := seedSampleData(db); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	r := routes.SetupRouter(db, cfg, users)

	port := cfg.ServerPort

	Logger.Info("Server starting on http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// autoMigrate adds new columns and tables without dropping anything
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Machine{},
		&models.SafetyDevice{},
		&models.TestRecord{},
		&models.IncidentReport{},
	)
	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables drops all tables and rebuilds them
func dropAndRecreateTables(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	_, err = sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0")
	if err != nil {
		log.Printf("Failed to disable foreign key checks: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")

	tables := []string{
		"test_records", "safety_devices", "machines", "incident_reports",
	}

	for _, table := range tables {
		log.Printf("Dropping table: %s", table)
		if _, err := sqlDB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			log.Printf("Failed to drop table: %v", err)
		}
	}

	return autoMigrate(db)
}

// ensureAdminExists creates the default admin account when the user
// store holds no admin
func ensureAdminExists(users *userstore.FileStore, cfg *config.Config) {
	accounts, err := users.List()
	if err != nil {
		log.Fatalf("Failed to read user store: %v", err)
	}

	for _, u := range accounts {
		if u.Role == models.RoleAdmin {
			return
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash default admin password: %v", err)
	}

	admin := models.UserAccount{
		Username:  "admin",
		FirstName: "System",
		LastName:  "Admin",
		Password:  string(hashedPassword),
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().Format("2006-01-02 15:04:05"),
	}

	if err := users.Add(admin); err != nil {
		log.Fatalf("Failed to create default admin account: %v", err)
	}

	log.Println("Created default admin account")
}

// seedSampleData inserts a small machine/device fixture for fresh
// installations. Existing machines are left untouched.
func seedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Machine{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	machines := []models.Machine{
		{
			Name:     "Hydraulic Press 1",
			Location: "Building A - Floor 1",
			SafetyDevices: []models.SafetyDevice{
				{Name: "Main E-Stop Button", DeviceType: models.DeviceTypeButton},
				{Name: "Light Curtain Front", DeviceType: models.DeviceTypeCurtain},
			},
		},
		{
			Name:     "Conveyor Line 2",
			Location: "Building A - Floor 2",
			SafetyDevices: []models.SafetyDevice{
				{Name: "Pull Cord East", DeviceType: models.DeviceTypeLifeline},
				{Name: "Pull Cord West", DeviceType: models.DeviceTypeLifeline},
				{Name: "Emergency Stop Panel", DeviceType: models.DeviceTypeButton},
			},
		},
		{
			Name:     "CNC Mill 3",
			Location: "Building B - Floor 1",
			SafetyDevices: []models.SafetyDevice{
				{Name: "Door Interlock", DeviceType: models.DeviceTypeInterlock},
				{Name: "Spindle E-Stop", DeviceType: models.DeviceTypeButton},
			},
		},
	}

	for i := range machines {
		if err := db.Create(&machines[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d sample machines", len(machines))
	return nil
}
