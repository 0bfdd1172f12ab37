package env

import (
	"fmt"
	"os"
	"strconv"
	"wheel_backend/internal/config"
)

const (
	appEnvEnvName    = "APP_ENV"
	wheelSeedEnvName = "WHEEL_SEED"

	envDevelopment = "development"
	envProduction  = "production"
)

type runtimeConfig struct {
	env     string
	seed    uint64
	hasSeed bool
}

func NewRuntimeConfig() (config.RuntimeConfig, error) {
	appEnv := os.Getenv(appEnvEnvName)
	if len(appEnv) == 0 {
		appEnv = envProduction
	}

	cfg := &runtimeConfig{env: appEnv}

	if raw := os.Getenv(wheelSeedEnvName); len(raw) != 0 {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", wheelSeedEnvName, err)
		}
		cfg.seed = seed
		cfg.hasSeed = true
	}

	return cfg, nil
}

func (r *runtimeConfig) Env() string {
	return r.env
}

// Strict В development нарушения инвариантов роняют процесс
func (r *runtimeConfig) Strict() bool {
	return r.env == envDevelopment
}

func (r *runtimeConfig) Seed() (uint64, bool) {
	return r.seed, r.hasSeed
}
