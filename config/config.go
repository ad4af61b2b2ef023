package config

import (
	"encoding/base64"
	"log"
	"os"

	"github.com/joho/godotenv"

	util "Employee-Attendance-Management/pkg/utils"
)

type AppConfig struct {
	Port         string
	MongoURI     string
	PasetoSecret string
	RunSeeder    bool
}

// LoadConfig loads configuration from .env / environment variables.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	}

	secretBase64 := getEnv("PASETO_SECRET", "")
	if secretBase64 == "" {
		// Tokens issued under a generated key do not survive a restart.
		generated, err := util.GenerateBase64Key(32)
		if err != nil {
			log.Fatalf("PASETO_SECRET is not set and key generation failed: %v", err)
		}
		log.Printf("Warning: PASETO_SECRET is not set, using an ephemeral key for this run")
		secretBase64 = generated
	}

	secretBytes, err := base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		log.Fatalf("PASETO_SECRET is not a valid Base64 URL-encoded string: %v", err)
	}
	if len(secretBytes) != 32 {
		log.Fatalf("PASETO_SECRET (decoded) must be exactly 32 bytes long, got %d", len(secretBytes))
	}

	return &AppConfig{
		Port:         getEnv("PORT", "3000"),
		MongoURI:     getEnv("MONGOSTRING", ""),
		PasetoSecret: secretBase64,
		RunSeeder:    getEnv("RUN_SEEDER", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
