package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings read from the environment
type Config struct {
	Port   string
	Env    string
	AppURL string

	// SiteAPIKey is handed to the browser as is
	SiteAPIKey string

	RedisURL    string
	DatabaseURL string

	FirebaseCredentialsPath string
	FirebaseAPIKey          string
	FirebaseAuthDomain      string
	FirebaseProjectID       string

	SessionTTL        time.Duration
	DemoSubmitTimeout time.Duration
	DemoRateLimit     int
	DemoRateWindow    time.Duration

	SalesEmail    string
	SalesWhatsapp string

	WorkerInterval   time.Duration
	DigestRecipients []string
}

// Load reads .env (if present) and the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() *Config {
	apiKey := os.Getenv("SITE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		Env:    getEnv("ENV", "development"),
		AppURL: getEnv("APP_URL", "http://localhost:8080"),

		SiteAPIKey: apiKey,

		RedisURL:    os.Getenv("REDIS_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase-service-account.json"),
		FirebaseAPIKey:          os.Getenv("FIREBASE_API_KEY"),
		FirebaseAuthDomain:      os.Getenv("FIREBASE_AUTH_DOMAIN"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),

		SessionTTL:        getDuration("SESSION_TTL", 24*time.Hour),
		DemoSubmitTimeout: getDuration("DEMO_SUBMIT_TIMEOUT", 15*time.Second),
		DemoRateLimit:     getInt("DEMO_RATE_LIMIT", 5),
		DemoRateWindow:    getDuration("DEMO_RATE_WINDOW", time.Hour),

		SalesEmail:    os.Getenv("SALES_EMAIL"),
		SalesWhatsapp: os.Getenv("SALES_WHATSAPP"),

		WorkerInterval:   getDuration("WORKER_INTERVAL", 5*time.Minute),
		DigestRecipients: getList("DIGEST_RECIPIENTS", os.Getenv("SALES_EMAIL")),
	}
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// getList splits a comma separated value, dropping empty items
func getList(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
