package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "PORTAL"

// dotenvFiles are loaded before the environment is read. Variables that are
// already set in the process environment win over the file.
var dotenvFiles = []string{".env"}

// parseEnv overlays config with environment variables. Unset variables leave
// the current values untouched. A missing .env file is not an error; a
// malformed one, or a value of the wrong type, panics like the other layers.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if err := envconfig.Process(envPrefix, config); err != nil {
		panic(err)
	}
}
