package configuration

import (
	"os"

	"github.com/joho/godotenv"

	"yt-dashboard/infrastructure/logger"
)

// LoadEnvFromFile loads KEY=VALUE pairs from one or more files (e.g., config.env, .env).
// Missing files are skipped. Existing env vars are not overridden.
func LoadEnvFromFile(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.GetLogger().WithField("error", err).WithField("file", p).Warn("Failed to load env file")
		}
	}
}
