package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-secret-that-is-long-enough")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{JWTSecret: "a-secret-that-is-long-enough", Database: DatabaseConfig{Driver: "mysql"}}
	assert.ErrorContains(t, cfg.Validate(), "unsupported DB_DRIVER")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", pg.DSN())

	lite := DatabaseConfig{Driver: DriverSQLite, SQLitePath: "/tmp/x.db"}
	assert.Contains(t, lite.DSN(), "file:/tmp/x.db?")
	assert.Contains(t, lite.DSN(), "foreign_keys(1)")
}
