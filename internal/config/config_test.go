package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VIEWSYNC_CONFIG_PATH", "")
	t.Setenv("VIEWSYNC_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("VIEWSYNC_STATE_DIR", filepath.Join(dir, "state"))
	return dir
}

func TestLoadAndGet(t *testing.T) {
	isolate(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	assert.Equal(t, "sqlite", Get("cache_backend", ""))
	assert.Equal(t, 500*time.Millisecond, GetDuration("debounce_ms", 0))
	assert.Equal(t, 0, GetInt("remote_retry_max", -1))
	assert.False(t, GetBool("logging_enabled", true))
}

func TestLoadDerivesCachePath(t *testing.T) {
	dir := isolate(t)

	t.Setenv("VIEWSYNC_CACHE_BACKEND", "badger")
	Load()
	assert.Equal(t, filepath.Join(dir, "state", "preferences.badger"), Get("cache_path", ""))

	t.Setenv("VIEWSYNC_CACHE_BACKEND", "sqlite")
	Load()
	assert.Equal(t, filepath.Join(dir, "state", "preferences.db"), Get("cache_path", ""))

	t.Setenv("VIEWSYNC_CACHE_BACKEND", "memory")
	Load()
	assert.Equal(t, "", Get("cache_path", "x"))
}

func TestLoadFromTOMLFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
api_base_url = "https://drive.example.com/api/v4/"
debounce_ms = 250
logging_enabled = true
cache_backend = "memory"
`
	require.NoError(t, os.WriteFile(path, []byte(content), FileModeFile))
	t.Setenv("VIEWSYNC_CONFIG_PATH", path)
	t.Setenv("VIEWSYNC_DEBOUNCE_MS", "750")

	Load()

	assert.Equal(t, "https://drive.example.com/api/v4", Get("api_base_url", ""))
	assert.Equal(t, 750, GetInt("debounce_ms", 0), "env overrides file")
	assert.True(t, GetBool("logging_enabled", false))
	assert.Equal(t, "memory", Get("cache_backend", ""))
}

func TestValidatorsFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
		key   string
		want  string
	}{
		{"negative debounce", "VIEWSYNC_DEBOUNCE_MS", "-5", "debounce_ms", "500"},
		{"non numeric timeout", "VIEWSYNC_REQUEST_TIMEOUT_MS", "soon", "request_timeout_ms", "10000"},
		{"unknown backend", "VIEWSYNC_CACHE_BACKEND", "redis", "cache_backend", "sqlite"},
		{"backend case folded", "VIEWSYNC_CACHE_BACKEND", "BADGER", "cache_backend", "badger"},
		{"bool alias", "VIEWSYNC_DEBUG", "yes", "debug", "true"},
		{"bad bool", "VIEWSYNC_DEBUG", "maybe", "debug", "false"},
		{"bad url", "VIEWSYNC_API_BASE_URL", "ftp://x", "api_base_url", "http://localhost:5212/api/v4"},
		{"bad level", "VIEWSYNC_LOGGING_LEVEL", "trace", "logging_level", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.value)
			Load()
			assert.Equal(t, tt.want, Get(tt.key, ""))
		})
	}
}

func TestCurrentSettingsValidate(t *testing.T) {
	isolate(t)
	Load()

	s := Current()
	require.NoError(t, s.Validate())
	assert.Equal(t, 10*time.Second, s.RequestTimeout)

	s.CacheBackend = "sqlite"
	s.CachePath = ""
	require.Error(t, s.Validate())

	s.CacheBackend = "memory"
	require.NoError(t, s.Validate())
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		RegisterValidator("debug", BoolValidator())
	})
}
