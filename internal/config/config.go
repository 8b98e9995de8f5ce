package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type Config struct {
	AppName        string
	AppPort        string
	DBUrl          string
	RentCronSpec   string
	SeedDemoData   bool
	AllowedOrigins []string
}

// LoadConfig reads the environment, preferring a local .env file when
// one exists. Only DATABASE_URL is mandatory.
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		utils.Logger.Info("Loaded environment from .env file")
	}

	cfg := &Config{
		AppName:      getEnv("APP_NAME", "rental-service"),
		AppPort:      getEnv("APP_PORT", "8080"),
		DBUrl:        os.Getenv("DATABASE_URL"),
		RentCronSpec: getEnv("RENT_INVOICE_CRON", "0 6 * * *"),
	}
	if cfg.DBUrl == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}

	if v := os.Getenv("SEED_DEMO_DATA"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			utils.Logger.Fatalf("Invalid SEED_DEMO_DATA value %q", v)
		}
		cfg.SeedDemoData = seed
	}

	origins := getEnv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
