package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-backoffice-api/internal/handler"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"
	"go-backoffice-api/internal/ws"
	"go-backoffice-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Databases
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Product{},
		&model.Category{},
		&model.Transaction{},
		&model.DetailTransaction{},
		&model.CodeSequence{},
	)

	// Vendedor tables live in a separate MySQL database when configured
	vendedorDB := database.ConnectVendedorDB()
	if vendedorDB == nil {
		vendedorDB = db
	}
	vendedorDB.AutoMigrate(&model.Vendedor{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	seqRepo := repository.NewSequenceRepo(db)
	vendedorRepo := repository.NewVendedorRepo(vendedorDB)

	codes := service.NewCodeGenerator(seqRepo, nil)

	productService := service.NewProductService(productRepo, categoryRepo, codes, wsHub)
	txService := service.NewTransactionService(db, productRepo, txRepo, codes, wsHub)
	reportService := service.NewReportService(productRepo, txRepo)
	vendedorService := service.NewVendedorService(vendedorRepo)

	productHandler := handler.NewProductHandler(productService)
	txHandler := handler.NewTransactionHandler(txService)
	reportHandler := handler.NewReportHandler(reportService)
	vendedorHandler := handler.NewVendedorHandler(vendedorService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Commerce Back Office v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// Product & category routes
	api.Get("/products", productHandler.GetProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Post("/products", productHandler.CreateProduct)
	api.Put("/products/:id", productHandler.UpdateProduct)
	api.Delete("/products/:id", productHandler.DeleteProduct)
	api.Get("/categories", productHandler.GetCategories)
	api.Post("/categories", productHandler.CreateCategory)
	api.Put("/categories/:id", productHandler.UpdateCategory)
	api.Delete("/categories/:id", productHandler.DeleteCategory)

	// Transaction routes
	api.Get("/transactions", txHandler.GetTransactions)
	api.Get("/transactions/type/:type", txHandler.GetTransactionsByType)
	api.Get("/transactions/date-range", txHandler.GetTransactionsByDateRange)
	api.Get("/transactions/:id", txHandler.GetTransaction)
	api.Post("/transactions", txHandler.CreateTransaction)
	api.Put("/transactions/:id", txHandler.UpdateTransactionStatus)
	api.Put("/transactions/:id/full", txHandler.UpdateTransactionFull)
	api.Post("/transactions/:id/cancel", txHandler.CancelTransaction)
	api.Post("/transactions/:id/details", txHandler.AddDetail)
	api.Delete("/transactions/:id/details/:detailId", txHandler.RemoveDetail)

	// Report routes
	api.Get("/reports/products/all", reportHandler.GetAllProductsReport)
	api.Get("/reports/products/code/:code", reportHandler.GetProductReportByCode)
	api.Get("/reports/products/:productId", reportHandler.GetProductReport)
	api.Post("/reports/products", reportHandler.GetMultipleProductsReport)

	// Vendedor routes
	api.Get("/vendedores", vendedorHandler.GetVendedores)
	api.Post("/vendedores", vendedorHandler.CreateVendedor)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
