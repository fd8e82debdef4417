package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-api/internal/handler"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/router"
	"go-inventory-api/internal/service"
	"go-inventory-api/internal/ws"
	"go-inventory-api/pkg/config"
	"go-inventory-api/pkg/database"
	"go-inventory-api/pkg/jwt"
	"go-inventory-api/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load config
	cfg, help, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrHelpWanted) {
			fmt.Println(help)
			return
		}
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(model.Tables()...); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
	}

	// 3. Setup WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	wsHub := ws.NewHub(64)
	go wsHub.Run(hubCtx)

	// 4. Dependency Injection (Wiring Layers)
	store := repository.NewStore(db)
	statsRepo := repository.NewStatsRepo(db)

	supplierService := service.NewSupplierService(store, wsHub)
	inventoryService := service.NewInventoryService(store, wsHub)
	dashService := service.NewDashboardService(statsRepo)

	var signer *jwt.Signer
	if cfg.Auth.Enabled() {
		signer, err = jwt.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
		if err != nil {
			log.Fatalf("Failed to configure token signer: %v", err)
		}
		log.Println("Write routes require a bearer token")
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: response.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins(),
	}))

	// 6. Routes
	router.Setup(app, router.Handlers{
		Supplier:  handler.NewSupplierHandler(supplierService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Dashboard: handler.NewDashboardHandler(dashService),
	}, router.Options{
		AppName: cfg.AppName,
		Signer:  signer,
		Hub:     wsHub,
	})

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopHub()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
