package app

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/game"
)

func TestConfigSource_EffectOverride(t *testing.T) {
	fetcher, cache, url, err := configSource(Config{App: config.DefaultAppConfig(), Effect: config.EffectSakura})
	require.NoError(t, err)
	assert.Equal(t, "memory://sakura", url)
	assert.IsType(t, &game.MemoryCache{}, cache)

	data, err := fetcher.Fetch(context.Background(), url)
	require.NoError(t, err)
	cfg, err := config.ParseEffectConfig(data)
	require.NoError(t, err)
	require.Len(t, cfg.Effects, 1)
	assert.Equal(t, config.EffectSakura, cfg.Effects[0].EffectType)
}

func TestConfigSource_UnknownEffect(t *testing.T) {
	_, _, _, err := configSource(Config{App: config.DefaultAppConfig(), Effect: "confetti"})
	assert.Error(t, err)
}

func TestConfigSource_Bundled(t *testing.T) {
	bundled := []byte(`{"enabled":false}`)
	fetcher, _, url, err := configSource(Config{App: config.DefaultAppConfig(), Bundled: bundled})
	require.NoError(t, err)
	assert.Equal(t, "bundled://effects.json", url)
	data, err := fetcher.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, bundled, data)
}

func TestConfigSource_NoURL(t *testing.T) {
	_, _, _, err := configSource(Config{App: config.DefaultAppConfig()})
	assert.Error(t, err)
}

func TestConfigSource_RemoteUsesGdataCache(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	appCfg := config.DefaultAppConfig()
	appCfg.ConfigURL = "https://example.com/effects.json"
	appCfg.StorageAppName = "test_festfx_app"

	fetcher, cache, url, err := configSource(Config{App: appCfg})
	require.NoError(t, err)
	assert.Equal(t, appCfg.ConfigURL, url)
	assert.IsType(t, &game.HTTPFetcher{}, fetcher)
	require.IsType(t, &game.GdataCache{}, cache)
	assert.True(t, cache.(*game.GdataCache).Persistent())
}

func TestConfigSource_BadScheme(t *testing.T) {
	appCfg := config.DefaultAppConfig()
	appCfg.ConfigURL = "gopher://example.com/effects"
	_, _, _, err := configSource(Config{App: appCfg})
	assert.Error(t, err)
}
