package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// Google OAuth refresh flow (single user)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
	// Groq (OpenAI-compatible) language model
	GroqAPIKey string
	GroqModel  string
	// Keepalive ping target; empty disables the job
	RenderServerURL string
	// Spreadsheet backing the auxiliary memory store; empty disables /memory
	MemorySheetID string
	// Fallback display name when the Google profile has no given_name
	DefaultUserName string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:               getEnvDefault("PORT", "10000"),
		AllowedOrigin:      getEnvDefault("ALLOWED_ORIGIN", "*"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GroqModel:          getEnvDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		RenderServerURL:    os.Getenv("RENDER_SERVER_URL"),
		MemorySheetID:      os.Getenv("MEMORY_SHEET_ID"),
		DefaultUserName:    getEnvDefault("DEFAULT_USER_NAME", "Samuel"),
	}
	if cfg.GroqAPIKey == "" {
		log.Println("warning: GROQ_API_KEY is not set; chat requests will fail until provided")
	}
	if cfg.GoogleRefreshToken == "" {
		log.Println("warning: GOOGLE_REFRESH_TOKEN is not set; Google API calls will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
