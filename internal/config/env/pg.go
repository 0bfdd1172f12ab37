package env

import (
	"errors"
	"os"
	"wheel_backend/internal/config"
)

const (
	dsnName = "PG_DSN"
)

// ErrPGNotConfigured PG_DSN не задан, журнал вращений живет в памяти
var ErrPGNotConfigured = errors.New("pg dsn not found")

type pgConfig struct {
	dsn string
}

func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, ErrPGNotConfigured
	}

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
