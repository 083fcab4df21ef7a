package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, v, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, v.ConfigFileUsed())
	assert.Equal(t, DefaultMaxFileSize, cfg.Upload.MaxFileSize)
	assert.Equal(t, DefaultAllowedMIMETypes, cfg.Upload.AllowedMIMETypes)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("upload:\n  max_file_size: 2048\n"), 0o600))

	cfg, v, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.yaml"), v.ConfigFileUsed())
	assert.Equal(t, int64(2048), cfg.Upload.MaxFileSize)
}

func TestApplyReloadRunsHooks(t *testing.T) {
	reloadMu.Lock()
	saved := reloadHooks
	reloadHooks = nil
	reloadMu.Unlock()

	t.Cleanup(func() {
		reloadMu.Lock()
		reloadHooks = saved
		reloadMu.Unlock()
	})

	var got []int64

	OnReload(func(c AppConfig) { got = append(got, c.Upload.MaxFileSize) })

	cfg := &AppConfig{Upload: UploadConfig{MaxFileSize: 10}}
	applyReload(cfg, &AppConfig{Upload: UploadConfig{MaxFileSize: 20}})

	assert.Equal(t, int64(20), cfg.Upload.MaxFileSize)
	assert.Equal(t, []int64{20}, got)
}
