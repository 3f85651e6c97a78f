package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Empty(t, cfg.PathFile)
	assert.False(t, cfg.Verbose)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("prompt: '$ '\npath_file: /etc/tinysh.path\nverbose: true\n"))
	require.NoError(t, err)

	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, "/etc/tinysh.path", cfg.PathFile)
	assert.True(t, cfg.Verbose)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("promt: oops\n"))
	assert.Error(t, err)
}

func TestParseRejectsEmptyPrompt(t *testing.T) {
	_, err := Parse([]byte("prompt: ''\n"))
	assert.Error(t, err)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "does-not-exist.yaml")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	appFS := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(appFS, ConfigurationName, []byte("verbose: true\n"), 0644))

	cfg, err := Load(appFS, ConfigurationName)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
}

func TestLoadPathList(t *testing.T) {
	appFS := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(appFS, ".path", []byte("/bin/\n\n/usr/bin/\n"), 0644))

	dirs, err := LoadPathList(appFS, ".path")
	require.NoError(t, err)

	assert.Equal(t, []string{"/bin/", "/usr/bin/"}, dirs)
}

func TestLoadPathListMissing(t *testing.T) {
	_, err := LoadPathList(afero.NewMemMapFs(), ".path")
	assert.Error(t, err)
}
