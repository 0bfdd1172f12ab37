package env

import (
	"fmt"
	"os"
	"time"
	"wheel_backend/internal/config"
)

const (
	sessionSecretEnvName  = "SESSION_SECRET"
	sessionTTLEnvName     = "SESSION_TTL"
	sessionIdleTTLEnvName = "SESSION_IDLE_TTL"

	defaultSessionTTL     = 24 * time.Hour
	defaultSessionIdleTTL = 30 * time.Minute
)

type sessionConfig struct {
	secretKey string
	tokenTTL  time.Duration
	idleTTL   time.Duration
}

func NewSessionConfig() (config.SessionConfig, error) {
	secret := os.Getenv(sessionSecretEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret key not found")
	}

	tokenTTL, err := durationOr(sessionTTLEnvName, defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	idleTTL, err := durationOr(sessionIdleTTLEnvName, defaultSessionIdleTTL)
	if err != nil {
		return nil, err
	}

	return &sessionConfig{
		secretKey: secret,
		tokenTTL:  tokenTTL,
		idleTTL:   idleTTL,
	}, nil
}

func (s *sessionConfig) SecretKey() []byte {
	return []byte(s.secretKey)
}

func (s *sessionConfig) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *sessionConfig) IdleTTL() time.Duration {
	return s.idleTTL
}

// durationOr Значение по умолчанию, если переменная не задана
func durationOr(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return d, nil
}
