package main

import (
	"os"

	"gorm.io/gorm"

	"github.com/fleetflash/backend/internal/config"
	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/db"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
)

// Seeds the catalog with demo data plus an admin user. Existing rows are kept;
// the seed only inserts what is missing, so it is safe to rerun.
func main() {
	configPath := "config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "../config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	database, err := db.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	seedDeviceTypes(database, log)
	seedResourceTypes(database, log)
	seedVersions(database, log)
	seedAdminUser(database, log)

	log.Info("seed completed")
}

func seedDeviceTypes(database *gorm.DB, log *logger.Logger) {
	deviceTypes := []domain.DeviceType{
		{Name: "Industrial Robot A", Model: "RB-A1000", Manufacturer: "RobotCorp"},
		{Name: "Industrial Robot B", Model: "RB-B2000", Manufacturer: "RobotCorp"},
		{Name: "Service Robot C", Model: "SV-C3000", Manufacturer: "ServiceTech"},
		{Name: "Collaborative Robot D", Model: "CO-D4000", Manufacturer: "CoRobot"},
		{Name: "Special Purpose Robot E", Model: "SP-E5000", Manufacturer: "SpecialTech"},
	}
	for _, dt := range deviceTypes {
		var count int64
		database.Model(&domain.DeviceType{}).Where("model = ?", dt.Model).Count(&count)
		if count > 0 {
			continue
		}
		if err := database.Create(&dt).Error; err != nil {
			log.Errorw("seed_device_type_failed", "model", dt.Model, "error", err)
		}
	}
	log.Info("device types seeded")
}

func seedResourceTypes(database *gorm.DB, log *logger.Logger) {
	resourceTypes := []domain.ResourceType{
		{Name: "Control Software", Category: domain.ResourceCategorySoftware, Type: "control", Description: "Robot control software"},
		{Name: "Monitoring Tool", Category: domain.ResourceCategorySoftware, Type: "monitoring", Description: "Device monitoring tool"},
		{Name: "System Config", Category: domain.ResourceCategorySystem, OSType: "Linux", Architecture: "x86_64", Description: "System configuration files"},
		{Name: "Firmware Package", Category: domain.ResourceCategoryDevice, Model: "RB-A1000", Manufacturer: "RobotCorp", Description: "Device firmware"},
		{Name: "Hardware Driver", Category: domain.ResourceCategorySoftware, Type: "driver", Description: "Hardware driver package"},
	}
	for _, rt := range resourceTypes {
		var count int64
		database.Model(&domain.ResourceType{}).Where("name = ?", rt.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := database.Create(&rt).Error; err != nil {
			log.Errorw("seed_resource_type_failed", "name", rt.Name, "error", err)
		}
	}
	log.Info("resource types seeded")
}

func seedVersions(database *gorm.DB, log *logger.Logger) {
	versions := []domain.FirmwareVersion{
		{
			VersionNumber: "v1.0.0",
			ReleaseDate:   "2024-01-15",
			Description:   "Initial stable release",
			FileSize:      "125MB",
			FileName:      "firmware-v1.0.0.bin",
			FilePath:      "/uploads/firmware-v1.0.0.bin",
			IsStable:      true,
		},
		{
			VersionNumber: "v1.1.0",
			ReleaseDate:   "2024-02-20",
			Description:   "Performance optimizations and bug fixes",
			FileSize:      "128MB",
			FileName:      "firmware-v1.1.0.bin",
			FilePath:      "/uploads/firmware-v1.1.0.bin",
			IsStable:      true,
		},
		{
			VersionNumber: "v2.0.0",
			ReleaseDate:   "2024-03-10",
			Description:   "Major feature update with new AI module",
			FileSize:      "135MB",
			FileName:      "firmware-v2.0.0.bin",
			FilePath:      "/uploads/firmware-v2.0.0.bin",
			IsStable:      true,
		},
		{
			VersionNumber: "v2.1.0",
			ReleaseDate:   "2024-04-05",
			Description:   "Security update and performance improvements",
			FileSize:      "137MB",
			FileName:      "firmware-v2.1.0.bin",
			FilePath:      "/uploads/firmware-v2.1.0.bin",
			IsStable:      true,
		},
	}
	for _, v := range versions {
		var count int64
		database.Model(&domain.FirmwareVersion{}).Where("version_number = ?", v.VersionNumber).Count(&count)
		if count > 0 {
			continue
		}
		if err := database.Create(&v).Error; err != nil {
			log.Errorw("seed_version_failed", "version", v.VersionNumber, "error", err)
		}
	}
	log.Info("firmware versions seeded")
}

func seedAdminUser(database *gorm.DB, log *logger.Logger) {
	var count int64
	database.Model(&domain.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("FLEETFLASH_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Warn("FLEETFLASH_ADMIN_PASSWORD not set, using default admin password")
	}

	admin := domain.User{
		Username:     "admin",
		PasswordHash: services.HashPassword(password),
		Role:         domain.UserRoleAdmin,
		Status:       domain.UserStatusActive,
		FullName:     "Administrator",
	}
	if err := database.Create(&admin).Error; err != nil {
		log.Errorw("seed_admin_failed", "error", err)
		return
	}
	log.Info("admin user seeded")
}
