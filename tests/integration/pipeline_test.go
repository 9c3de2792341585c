package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"license-manifest/internal/adapters"
	"license-manifest/internal/app"
	"license-manifest/internal/types"
)

// stubMetadata replaces the cargo invocation; everything downstream of
// the provider runs against real files.
type stubMetadata struct {
	meta types.Metadata
}

func (s stubMetadata) Load(_ context.Context, _ string) (types.Metadata, error) {
	return s.meta, nil
}

func writePackage(t *testing.T, root string, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644))
	}
	return filepath.Join(dir, "Cargo.toml")
}

func fixtureService(t *testing.T, root string) app.Service {
	t.Helper()
	serdeManifest := writePackage(t, root, "serde", map[string]string{
		"Cargo.toml": "[package]\nname = \"serde\"\nversion = \"1.0.200\"\n",
		"LICENSE":    "Copyright (c) 2014 Erick Tryzelaar\n",
	})
	leftPadManifest := writePackage(t, root, "left-pad", map[string]string{
		"Cargo.toml": "[package]\nname = \"left-pad\"\nversion = \"0.9.0\"\n",
	})

	const source = "registry+https://github.com/rust-lang/crates.io-index"
	meta := types.Metadata{
		Packages: []types.Package{
			{
				ID:           "serde",
				Name:         "serde",
				Version:      "1.0.200",
				License:      "MIT/Apache-2.0",
				Repository:   "https://github.com/serde-rs/serde.git",
				Source:       source,
				ManifestPath: serdeManifest,
			},
			{
				ID:           "left-pad",
				Name:         "left-pad",
				Version:      "0.9.0",
				Authors:      []string{"Jane Doe <jane@example.org>"},
				Source:       source,
				ManifestPath: leftPadManifest,
			},
		},
		Resolve: types.Resolve{
			Root: "root",
			Nodes: map[types.PackageID]types.Node{
				"root": {ID: "root", Deps: []types.Dep{
					{Pkg: "serde", Kinds: []types.DepKind{types.DepKindNormal}},
					{Pkg: "left-pad", Kinds: []types.DepKind{types.DepKindNormal}},
				}},
				"serde":    {ID: "serde"},
				"left-pad": {ID: "left-pad"},
			},
		},
	}

	service := app.NewService()
	service.Metadata = stubMetadata{meta: meta}
	return service
}

func TestPipelineWriteThenCheck(t *testing.T) {
	root := t.TempDir()
	service := fixtureService(t, root)

	// left-pad has neither repository nor homepage and no license; the
	// override file supplies both.
	overridesPath := filepath.Join(root, "license-tool.toml")
	require.NoError(t, os.WriteFile(overridesPath, []byte(`
[overrides."left-pad-0.9.0"]
license = "WTFPL"
origin = "https://github.com/acme/left-pad"
`), 0o644))

	build := app.BuildRequest{ManifestPath: "Cargo.toml", OverridesPath: overridesPath}
	output := filepath.Join(root, "LICENSE-3rdparty.csv")

	result, err := service.Write(t.Context(), app.WriteRequest{Build: build, OutputPath: output})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordCount)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Component,Origin,License,Copyright", lines[0])
	assert.Contains(t, lines[1], "left-pad")
	assert.Contains(t, lines[1], "Jane Doe <jane@example.org>")
	assert.Contains(t, lines[2], "MIT OR Apache-2.0")
	assert.Contains(t, lines[2], "Copyright (c) 2014 Erick Tryzelaar")

	check, err := service.Check(t.Context(), app.CheckRequest{Build: build, OutputPath: output})
	require.NoError(t, err)
	assert.Empty(t, check.Mismatches)
}

func TestPipelineCheckDetectsDrift(t *testing.T) {
	root := t.TempDir()
	service := fixtureService(t, root)

	overridesPath := filepath.Join(root, "license-tool.toml")
	require.NoError(t, os.WriteFile(overridesPath, []byte(`
[overrides."left-pad"]
license = "WTFPL"
origin = "https://github.com/acme/left-pad"
`), 0o644))

	build := app.BuildRequest{ManifestPath: "Cargo.toml", OverridesPath: overridesPath}
	output := filepath.Join(root, "LICENSE-3rdparty.csv")

	// Persist a stale manifest by hand.
	store := adapters.NewRecordCSVAdapter()
	require.NoError(t, store.Write(output, []types.Record{
		{Component: "gone", Origin: "https://example.org/gone", License: "MIT", Copyright: "x"},
	}))

	check, err := service.Check(t.Context(), app.CheckRequest{Build: build, OutputPath: output})
	require.NoError(t, err)
	assert.Len(t, check.Mismatches, 3)
}

func TestPipelineCheckAgainstAbsentFileReportsAllRecords(t *testing.T) {
	root := t.TempDir()
	service := fixtureService(t, root)

	overridesPath := filepath.Join(root, "license-tool.toml")
	require.NoError(t, os.WriteFile(overridesPath, []byte(`
[overrides."left-pad"]
license = "WTFPL"
origin = "https://github.com/acme/left-pad"
`), 0o644))

	build := app.BuildRequest{ManifestPath: "Cargo.toml", OverridesPath: overridesPath}
	output := filepath.Join(root, "LICENSE-3rdparty.csv")

	check, err := service.Check(t.Context(), app.CheckRequest{Build: build, OutputPath: output})
	require.NoError(t, err)
	assert.Len(t, check.Mismatches, 2)
}
