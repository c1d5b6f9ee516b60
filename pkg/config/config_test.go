package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentadante-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, 30, cfg.Workflow.DefaultLoanDays)
	assert.Equal(t, 7, cfg.Dashboard.DueSoonDays)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.CacheTTL)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("WORKFLOW_DEFAULT_LOAN_DAYS", "15")
	t.Setenv("DASHBOARD_CACHE_TTL_SECONDS", "0")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("TRACING_SAMPLE_RATIO", "0.25")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 15, cfg.Workflow.DefaultLoanDays)
	assert.Equal(t, time.Duration(0), cfg.Dashboard.CacheTTL)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRatio, 1e-9)
}

func TestLoad_ProduccionExigeSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PlazoInvalido(t *testing.T) {
	t.Setenv("WORKFLOW_DEFAULT_LOAN_DAYS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "sena", Password: "p@ss/word", DBName: "cuentadante", SSLMode: "disable"}
	assert.Equal(t, "postgres://sena:p%40ss%2Fword@db:5432/cuentadante?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://otro"
	assert.Equal(t, "postgresql://otro", c.ConnectionString())
}
