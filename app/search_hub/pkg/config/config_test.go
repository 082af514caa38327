package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "googlecse", cfg.Providers.Web.Name)
	assert.Equal(t, "imagesearch", cfg.Providers.Image.Name)
	assert.Equal(t, "gnews", cfg.Providers.News.Name)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "search_hub.db", cfg.Store.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigValues(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
providers:
  web:
    name: searxng
    base_url: http://localhost:8888
    timeout: 5s
cache:
  ttl: 10m
store:
  driver: memory
defaults:
  region: us
  safe_search: false
  page_size: 20
`))
	require.NoError(t, err)

	assert.Equal(t, "searxng", cfg.Providers.Web.Name)
	assert.Equal(t, 5*time.Second, cfg.Providers.Web.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "memory", cfg.Store.Driver)
	require.NotNil(t, cfg.Defaults.SafeSearch)
	assert.False(t, *cfg.Defaults.SafeSearch)
	assert.Equal(t, 20, cfg.Defaults.PageSize)

	p := cfg.Defaults.Preferences()
	assert.Equal(t, "us", p.Region)
	assert.False(t, p.SafeSearch)
	assert.Equal(t, 20, p.PageSize)
	assert.True(t, Default().Defaults.Preferences().SafeSearch)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Driver = "redis"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Providers.Image.Name = "gnews"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Providers.News.Name = "tavily"
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SEARCH_HUB_GOOGLE_CSE_KEY", "cse-key")
	t.Setenv("SEARCH_HUB_GOOGLE_CSE_CX", "cx-id")
	t.Setenv("SEARCH_HUB_RAPIDAPI_KEY", "rapid")
	t.Setenv("SEARCH_HUB_GNEWS_API_KEY", "gnews-key")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "cse-key", cfg.Providers.Web.APIKey)
	assert.Equal(t, "cx-id", cfg.Providers.Web.SearchID)
	assert.Equal(t, "rapid", cfg.Providers.Image.APIKey)
	assert.Equal(t, "gnews-key", cfg.Providers.News.APIKey)
}

func TestApplyEnvImageKeyWins(t *testing.T) {
	t.Setenv("SEARCH_HUB_RAPIDAPI_KEY", "rapid")
	t.Setenv("SEARCH_HUB_IMAGE_API_KEY", "image")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "image", cfg.Providers.Image.APIKey)
}
