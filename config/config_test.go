package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "portal.db", cfg.DatabaseURL)
	assert.True(t, cfg.Seed)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.CORSOrigins)

	assert.Equal(t, "https://api.quran.com/api/v4", cfg.Quran.BaseURL)
	assert.Equal(t, 20, cfg.Quran.TranslationID)
	assert.Equal(t, 7, cfg.Quran.ReciterID)
	assert.Equal(t, 10*time.Second, cfg.Quran.Timeout)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"PORT":             "3000",
		"STORAGE_BACKEND":  "sql",
		"DATABASE_URL":     "postgres://portal@localhost/portal?sslmode=disable",
		"SEED":             "false",
		"CORS_ORIGINS":     "https://portal.example.com",
		"UPSTREAM_TIMEOUT": "2500ms",
	})
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, BackendSQL, cfg.Backend)
	assert.False(t, cfg.Seed)
	assert.Equal(t, []string{"https://portal.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 2500*time.Millisecond, cfg.Quran.Timeout)
}

func TestFromMap_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "redis"}},
		{"port not a number", map[string]string{"PORT": "eighty"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "2"}},
		{"bad duration", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.vars)
			assert.Error(t, err)
		})
	}
}

func TestValidate_SQLNeedsDatabase(t *testing.T) {
	cfg, err := FromMap(map[string]string{"STORAGE_BACKEND": "sql"})
	require.NoError(t, err)

	cfg.DatabaseURL = ""
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
}

func TestLoad_EnvFile(t *testing.T) {
	// GIVEN: a .env file and one variable already set in the process
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORAGE_BACKEND=proxy\nQURAN_RECITER_ID=9\nBCRYPT_COST=12\n"), 0o600))
	t.Setenv("BCRYPT_COST", "11")

	t.Cleanup(func() {
		os.Unsetenv("STORAGE_BACKEND")
		os.Unsetenv("QURAN_RECITER_ID")
	})

	// WHEN: loading
	cfg, err := Load(path)
	require.NoError(t, err)

	// THEN: the file fills the gaps and the process environment wins
	assert.Equal(t, BackendProxy, cfg.Backend)
	assert.Equal(t, 9, cfg.Quran.ReciterID)
	assert.Equal(t, 11, cfg.BcryptCost)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
