package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "aleph", cfg.AppName)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "$RefreshReg$", cfg.Refresh.RegFunc)
	assert.Equal(t, "$RefreshSig$", cfg.Refresh.SigFunc)
}

// chdir changes the working directory for the duration of the test.
// It mirrors testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(old))
	})
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	data := `app_name: demo
server:
  host: 0.0.0.0
  port: 8080
refresh:
  sig_func: $sig$
dev:
  exclude:
    - dist
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aleph.yaml"), []byte(data), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.AppName)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "$sig$", cfg.Refresh.SigFunc)
	// Entry points not set in the file keep their defaults.
	assert.Equal(t, "$RefreshReg$", cfg.Refresh.RegFunc)
	assert.Equal(t, []string{"dist"}, cfg.Dev.Exclude)
}
