package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fleetflash/backend/internal/config"
	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/events"
	"github.com/fleetflash/backend/internal/infrastructure/db"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/fleetflash/backend/internal/transport/http/handlers"
	httpmw "github.com/fleetflash/backend/internal/transport/http/middleware"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
}

// SetupRoutes wires repositories, services and handlers onto the app and
// returns the flash runner so the caller can drain it on shutdown.
func SetupRoutes(app *fiber.App, cfg RouterConfig) *services.FlashRunner {
	// Initialize repositories
	deviceTypeRepo := db.NewDeviceTypeRepository(cfg.DB, cfg.Logger)
	resourceTypeRepo := db.NewResourceTypeRepository(cfg.DB, cfg.Logger)
	versionRepo := db.NewVersionRepository(cfg.DB, cfg.Logger)
	flashRecordRepo := db.NewFlashRecordRepository(cfg.DB, cfg.Logger)
	userRepo := db.NewUserRepository(cfg.DB, cfg.Logger)

	// Task subsystem: store, event bus and runner share one canonical state
	store := services.NewTaskStore()
	bus := events.NewBus(cfg.Logger)
	runner := services.NewFlashRunner(cfg.Config.Simulator, store, bus, cfg.Logger)

	taskService := services.NewTaskService(services.TaskServiceConfig{
		Store:      store,
		Bus:        bus,
		RecordRepo: flashRecordRepo,
		Runner:     runner,
		Logger:     cfg.Logger,
	})

	authService := services.NewAuthService(userRepo, cfg.Config.Auth.SessionTTL, cfg.Logger)
	deviceTypeService := services.NewDeviceTypeService(deviceTypeRepo, cfg.Logger)
	resourceTypeService := services.NewResourceTypeService(resourceTypeRepo, cfg.Logger)
	versionService := services.NewVersionService(versionRepo, cfg.Logger)
	flashRecordService := services.NewFlashRecordService(flashRecordRepo, cfg.Logger)
	userService := services.NewUserService(userRepo, cfg.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Logger)
	taskHandler := handlers.NewTaskHandler(taskService, cfg.Logger)
	deviceTypeHandler := handlers.NewDeviceTypeHandler(deviceTypeService, cfg.Logger)
	resourceTypeHandler := handlers.NewResourceTypeHandler(resourceTypeService, cfg.Logger)
	versionHandler := handlers.NewVersionHandler(versionService, cfg.Logger)
	flashRecordHandler := handlers.NewFlashRecordHandler(flashRecordService, cfg.Logger)
	userHandler := handlers.NewUserHandler(userService, cfg.Logger)
	streamHandler := handlers.NewTaskStreamHandler(store, bus, cfg.Logger)

	// Task stream route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})

	app.Get("/ws/tasks", websocket.New(streamHandler.Handle))

	// API v1 routes
	api := app.Group("/api/v1")

	// Auth routes (login is the only public endpoint)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	sessionAuth := httpmw.SessionAuth(cfg.Config, authService)

	// Task routes
	tasks := api.Group("/tasks", sessionAuth)
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Get("/", taskHandler.GetTasks)
	tasks.Get("/stats", taskHandler.GetStats)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Patch("/:id/status", taskHandler.UpdateStatus)
	tasks.Delete("/:id", taskHandler.DeleteTask)

	// Device type routes
	deviceTypes := api.Group("/device-types", sessionAuth)
	deviceTypes.Post("/", deviceTypeHandler.Create)
	deviceTypes.Get("/", deviceTypeHandler.List)
	deviceTypes.Get("/:id", deviceTypeHandler.Get)
	deviceTypes.Put("/:id", deviceTypeHandler.Update)
	deviceTypes.Delete("/:id", deviceTypeHandler.Delete)

	// Resource type routes
	resourceTypes := api.Group("/resource-types", sessionAuth)
	resourceTypes.Post("/", resourceTypeHandler.Create)
	resourceTypes.Get("/", resourceTypeHandler.List)
	resourceTypes.Get("/:id", resourceTypeHandler.Get)
	resourceTypes.Put("/:id", resourceTypeHandler.Update)
	resourceTypes.Delete("/:id", resourceTypeHandler.Delete)

	// Firmware version routes
	versions := api.Group("/versions", sessionAuth)
	versions.Post("/", versionHandler.Create)
	versions.Get("/", versionHandler.List)
	versions.Get("/:id", versionHandler.Get)
	versions.Put("/:id", versionHandler.Update)
	versions.Delete("/:id", versionHandler.Delete)

	// Flash record routes (records are created by the task service on
	// terminal transitions, not through the API)
	flashRecords := api.Group("/flash-records", sessionAuth)
	flashRecords.Get("/", flashRecordHandler.List)
	flashRecords.Get("/:id", flashRecordHandler.Get)
	flashRecords.Put("/:id", flashRecordHandler.Update)
	flashRecords.Delete("/:id", flashRecordHandler.Delete)

	// User routes
	users := api.Group("/users", sessionAuth)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	return runner
}
