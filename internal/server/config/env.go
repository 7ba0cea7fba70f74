package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a .env
// file from the working directory first if one exists. A missing .env is not
// an error; explicit environment variables win over .env values because
// godotenv does not overwrite existing keys.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("RANKING_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("RANKING_DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("RANKING_SESSION_TTL"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.SessionValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("RANKING_S3_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := os.LookupEnv("RANKING_S3_PASSWORD"); ok {
		config.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("RANKING_S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("RANKING_S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("RANKING_S3_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
}
