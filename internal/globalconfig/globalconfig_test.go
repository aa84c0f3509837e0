package globalconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPersistentConfig_Missing(t *testing.T) {
	cfg, err := LoadPersistentConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadPersistentConfig_Apply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := "version_url: https://example.test/latest\nfreshness_window: 1m\ntimeout: 3s\ncache_dir: /tmp/instr-cache\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	pc, err := LoadPersistentConfig(path)
	require.NoError(t, err)
	require.NotNil(t, pc)

	c := config.DefaultConfig()
	require.NoError(t, pc.Apply(&c))

	assert.Equal(t, "https://example.test/latest", c.VersionURL)
	assert.Equal(t, config.DefaultConfig().ResourceURL, c.ResourceURL)
	assert.Equal(t, time.Minute, c.FreshnessWindow)
	assert.Equal(t, 3*time.Second, c.Timeout)
	assert.Equal(t, "/tmp/instr-cache", c.CacheDir)
}

func TestApply_BadDurationKeepsDefaultAndOtherFields(t *testing.T) {
	c := config.DefaultConfig()
	err := (&PersistentConfig{
		FreshnessWindow: "often",
		Timeout:         "3s",
		VersionURL:      "https://example.com/releases/latest",
	}).Apply(&c)

	assert.ErrorContains(t, err, "freshness_window")
	assert.Equal(t, config.DefaultFreshnessWindow, c.FreshnessWindow)
	assert.Equal(t, 3*time.Second, c.Timeout)
	assert.Equal(t, "https://example.com/releases/latest", c.VersionURL)
}

func TestSave_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	in := &PersistentConfig{ResourceURL: "https://example.test/{version}/doc.md", Timeout: "5s"}
	require.NoError(t, in.Save(path))

	out, err := LoadPersistentConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
