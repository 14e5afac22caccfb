package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"GATEHOUSE_ADDR", "GATEHOUSE_DB_HOST", "GATEHOUSE_DB_USER",
		"GATEHOUSE_DB_PASSWORD", "GATEHOUSE_DB_NAME", "GATEHOUSE_JWT_SECRET",
		"GATEHOUSE_TOKEN_TTL", "GATEHOUSE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8000", cfg.Addr)
	require.Equal(t, "127.0.0.1", cfg.DBHost)
	require.Equal(t, "gatehouse_db", cfg.DBName)
	require.Equal(t, 720*time.Hour, cfg.TokenTTL)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GATEHOUSE_ADDR", ":9999")
	t.Setenv("GATEHOUSE_DB_HOST", "db.internal")
	t.Setenv("GATEHOUSE_TOKEN_TTL", "12h")
	t.Setenv("GATEHOUSE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "db.internal", cfg.DBHost)
	require.Equal(t, 12*time.Hour, cfg.TokenTTL)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("GATEHOUSE_TOKEN_TTL", "soon")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("GATEHOUSE_TOKEN_TTL", "-1h")
	_, err = Load()
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "10.0.0.5",
		DBUser: "gatehouse",
		DBPass: "hunter2",
		DBName: "gatehouse_db",
	}
	require.Equal(t,
		"gatehouse:hunter2@tcp(10.0.0.5:3306)/gatehouse_db?parseTime=true",
		cfg.DSN())
}
