package db

import (
	"github.com/fleetflash/backend/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(database *gorm.DB) error {
	err := database.AutoMigrate(
		&domain.DeviceType{},
		&domain.ResourceType{},
		&domain.FirmwareVersion{},
		&domain.FlashRecord{},
		&domain.User{},
	)
	if err != nil {
		return err
	}

	return createCustomIndexes(database)
}

func createCustomIndexes(database *gorm.DB) error {
	// Flash record history is queried newest-first per device
	if err := database.Exec(`
		CREATE INDEX IF NOT EXISTS idx_flash_records_device_started
		ON flash_records (device_ip, start_time DESC)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	// Resource listing filters by category
	if err := database.Exec(`
		CREATE INDEX IF NOT EXISTS idx_resource_types_category_created
		ON resource_types (category, created_at DESC)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	return nil
}
