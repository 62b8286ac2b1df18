package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-catalog/logging"
	"map-catalog/mapcache/mtag"
	"map-catalog/query/qsort"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParse(t *testing.T) {
	input := `
log_level: debug
view_cache_size: 10
query:
  sort: duration
  ascending: false
  limit: 25
presets:
  fast:
    min_nps: 7.5
    enabled_tags: [speed]
`
	cfg, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.ViewCacheSize)
	assert.Equal(t, QueryConfig{Sort: qsort.MapDuration, Ascending: false, Limit: 25}, cfg.Query)

	fast, err := cfg.Preset("fast")
	require.NoError(t, err)
	assert.Equal(t, 7.5, *fast.MinNPS)
	assert.Equal(t, mtag.NewSet(mtag.Speed), fast.EnabledTags)

	ranked, err := cfg.Preset("ranked")
	require.NoError(t, err)
	assert.True(t, ranked.Ranked)

	_, err = cfg.Preset("slow")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	empty, err := cfg.Preset("")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("log_level: loud"))
	assert.ErrorIs(t, err, logging.ErrUnknownLevel)

	_, err = Parse([]byte("query: [1, 2"))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	cfg := DefaultConfig()
	cfg.Query.Limit = 3
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Query, loaded.Query)
	assert.Equal(t, cfg.LogLevel, loaded.LogLevel)
	assert.Equal(t, cfg.Presets["ranked"], loaded.Presets["ranked"])

	require.NoError(t, os.WriteFile(path, []byte("log_level: [x"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
