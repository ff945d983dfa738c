package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file if one exists. Missing files are fine; real
// environment variables always win.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
