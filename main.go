package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"Employee-Attendance-Management/config"
	"Employee-Attendance-Management/pkg/paseto"
	"Employee-Attendance-Management/repository"
	"Employee-Attendance-Management/router"
	"Employee-Attendance-Management/seeder"

	_ "time/tzdata"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.LoadConfig()

	if err := paseto.Init(cfg.PasetoSecret); err != nil {
		log.Fatalf("Failed to initialize token layer: %v", err)
	}

	config.MongoConnect()
	config.InitDatabase()
	defer config.DisconnectDB()

	if cfg.RunSeeder {
		seeder.SeedUsers(repository.NewUserRepository())
	}

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
