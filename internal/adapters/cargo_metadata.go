package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"license-manifest/internal/ports"
	"license-manifest/internal/types"
)

// CargoMetadataAdapter obtains the resolved dependency graph and package
// metadata by running `cargo metadata` against a build manifest.
type CargoMetadataAdapter struct {
	CargoBin string
}

func NewCargoMetadataAdapter() CargoMetadataAdapter {
	return CargoMetadataAdapter{CargoBin: "cargo"}
}

func (a CargoMetadataAdapter) Load(ctx context.Context, manifestPath string) (types.Metadata, error) {
	args := []string{"metadata", "--format-version", "1", "--manifest-path", manifestPath}
	cmd := exec.CommandContext(ctx, a.CargoBin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return types.Metadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("running cargo metadata failed: " + strings.TrimSpace(stderr.String())).
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("manifest", manifestPath).Msg("cargo metadata loaded")
	return parseMetadata(output)
}

func parseMetadata(data []byte) (types.Metadata, error) {
	var raw cargoMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Metadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("could not parse cargo metadata output").
			WithCause(err)
	}
	if raw.Resolve == nil {
		return types.Metadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("metadata is missing a dependency tree")
	}

	meta := types.Metadata{
		Resolve: types.Resolve{Nodes: make(map[types.PackageID]types.Node, len(raw.Resolve.Nodes))},
	}
	if raw.Resolve.Root != nil {
		meta.Resolve.Root = types.PackageID(*raw.Resolve.Root)
	}
	for _, node := range raw.Resolve.Nodes {
		converted := types.Node{ID: types.PackageID(node.ID)}
		for _, dep := range node.Deps {
			kinds := make([]types.DepKind, 0, len(dep.DepKinds))
			for _, kind := range dep.DepKinds {
				kinds = append(kinds, depKind(kind.Kind))
			}
			converted.Deps = append(converted.Deps, types.Dep{
				Pkg:   types.PackageID(dep.Pkg),
				Kinds: kinds,
			})
		}
		meta.Resolve.Nodes[converted.ID] = converted
	}

	meta.Packages = make([]types.Package, 0, len(raw.Packages))
	for _, pkg := range raw.Packages {
		meta.Packages = append(meta.Packages, types.Package{
			ID:           types.PackageID(pkg.ID),
			Name:         pkg.Name,
			Version:      pkg.Version,
			License:      stringOrEmpty(pkg.License),
			LicenseFile:  stringOrEmpty(pkg.LicenseFile),
			Repository:   stringOrEmpty(pkg.Repository),
			Homepage:     stringOrEmpty(pkg.Homepage),
			Authors:      pkg.Authors,
			Source:       stringOrEmpty(pkg.Source),
			ManifestPath: pkg.ManifestPath,
		})
	}
	return meta, nil
}

// depKind maps the wire encoding to the internal enum; cargo encodes a
// normal dependency as a null kind.
func depKind(kind *string) types.DepKind {
	if kind == nil {
		return types.DepKindNormal
	}
	switch *kind {
	case "build":
		return types.DepKindBuild
	case "dev":
		return types.DepKindDev
	default:
		return types.DepKind(*kind)
	}
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

type cargoMetadata struct {
	Packages []cargoPackage `json:"packages"`
	Resolve  *cargoResolve  `json:"resolve"`
}

type cargoPackage struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	License      *string  `json:"license"`
	LicenseFile  *string  `json:"license_file"`
	Repository   *string  `json:"repository"`
	Homepage     *string  `json:"homepage"`
	Authors      []string `json:"authors"`
	Source       *string  `json:"source"`
	ManifestPath string   `json:"manifest_path"`
}

type cargoResolve struct {
	Root  *string     `json:"root"`
	Nodes []cargoNode `json:"nodes"`
}

type cargoNode struct {
	ID   string         `json:"id"`
	Deps []cargoNodeDep `json:"deps"`
}

type cargoNodeDep struct {
	Pkg      string         `json:"pkg"`
	DepKinds []cargoDepKind `json:"dep_kinds"`
}

type cargoDepKind struct {
	Kind *string `json:"kind"`
}

var _ ports.MetadataPort = CargoMetadataAdapter{}
