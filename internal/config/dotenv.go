package config

import (
	"os"

	"github.com/joho/godotenv"
)

// dotEnvFiles in load order. godotenv never overwrites variables that
// are already set, so the process environment beats .env.local, which
// in turn beats the checked-in .env.
var dotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv reads the env files that exist next to the binary and
// reports which ones were picked up, for the startup log.
func LoadDotEnv() []string {
	var loaded []string
	for _, name := range dotEnvFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			continue
		}
		loaded = append(loaded, name)
	}
	return loaded
}
