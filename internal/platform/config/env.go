// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvVar names an alternative .env file to load before parsing.
const DotEnvVar = "MYSTIC_NUMBERS_ENV_FILE"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from a .env file without overriding variables
// already set. The file named by MYSTIC_NUMBERS_ENV_FILE wins over paths;
// with neither, ".env" is tried. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if explicit := strings.TrimSpace(os.Getenv(DotEnvVar)); explicit != "" {
		paths = []string{explicit}
	}
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
