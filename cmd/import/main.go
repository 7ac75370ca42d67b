// Command import loads a machine/device manifest into the database.
// The manifest is a JSON array of machines, each carrying its safety
// devices. Machines that already exist (by name) are skipped.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/config"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/database"
)

type deviceManifest struct {
	Name       string `json:"name"`
	DeviceType string `json:"device_type"`
}

type machineManifest struct {
	Name     string           `json:"name"`
	Location string           `json:"location"`
	Devices  []deviceManifest `json:"devices"`
}

func main() {
	manifestPath := flag.String("file", "machines.json", "path to the machine manifest")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := pool.GetDB()

	if err := db.AutoMigrate(&models.Machine{}, &models.SafetyDevice{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	manifest, err := loadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	imported, skipped, err := importMachines(db, manifest)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete: %d machines imported, %d skipped", imported, skipped)
}

func loadManifest(path string) ([]machineManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest []machineManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return manifest, nil
}

func importMachines(db *gorm.DB, manifest []machineManifest) (imported, skipped int, err error) {
	for _, m := range manifest {
		if m.Name == "" {
			return imported, skipped, fmt.Errorf("manifest entry without a machine name")
		}

		var count int64
		if err := db.Model(&models.Machine{}).Where("name = ?", m.Name).Count(&count).Error; err != nil {
			return imported, skipped, err
		}
		if count > 0 {
			log.Printf("Skipping existing machine %q", m.Name)
			skipped++
			continue
		}

		machine := models.Machine{
			Name:     m.Name,
			Location: m.Location,
		}
		for _, d := range m.Devices {
			deviceType := models.DeviceType(d.DeviceType)
			if !models.ValidDeviceType(deviceType) {
				return imported, skipped, fmt.Errorf("machine %q: unknown device type %q", m.Name, d.DeviceType)
			}
			machine.SafetyDevices = append(machine.SafetyDevices, models.SafetyDevice{
				Name:       d.Name,
				DeviceType: deviceType,
			})
		}

		if err := db.Create(&machine).Error; err != nil {
			return imported, skipped, err
		}
		imported++
	}
	return imported, skipped, nil
}
