package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverrides(t *testing.T, filename string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesTOML(t *testing.T) {
	path := writeOverrides(t, "license-tool.toml", `
[overrides."foo-1.2.3"]
license = "MIT"

[overrides.bar]
origin = "https://example.org/bar"
`)

	adapter := NewOverrideFileAdapter()
	overrides, err := adapter.Load(path)
	require.NoError(t, err)

	entry, ok := overrides.Lookup("foo", "1.2.3")
	require.True(t, ok)
	assert.Equal(t, "MIT", entry.License)

	entry, ok = overrides.Lookup("bar", "9.9.9")
	require.True(t, ok)
	assert.Equal(t, "https://example.org/bar", entry.Origin)
}

func TestLoadOverridesYAML(t *testing.T) {
	path := writeOverrides(t, "license-tool.yaml", `
overrides:
  foo-1.2.3:
    license: MIT
`)

	adapter := NewOverrideFileAdapter()
	overrides, err := adapter.Load(path)
	require.NoError(t, err)

	entry, ok := overrides.Lookup("foo", "1.2.3")
	require.True(t, ok)
	assert.Equal(t, "MIT", entry.License)
}

func TestLoadOverridesMissingFileIsEmpty(t *testing.T) {
	adapter := NewOverrideFileAdapter()
	overrides, err := adapter.Load(filepath.Join(t.TempDir(), "license-tool.toml"))
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestLoadOverridesMalformedTOMLFails(t *testing.T) {
	path := writeOverrides(t, "license-tool.toml", "[overrides\nlicense =")

	adapter := NewOverrideFileAdapter()
	_, err := adapter.Load(path)
	require.Error(t, err)
}
