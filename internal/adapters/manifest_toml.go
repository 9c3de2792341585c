package adapters

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"license-manifest/internal/ports"
)

// ManifestFileAdapter reads a package's own Cargo.toml to recover its
// self-declared name.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

func (a ManifestFileAdapter) PackageName(manifestPath string) (string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("could not read manifest " + manifestPath).
			WithCause(err)
	}
	var manifest manifestFile
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("could not parse manifest " + manifestPath).
			WithCause(err)
	}
	if manifest.Package.Name == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest " + manifestPath + " has no package name")
	}
	return manifest.Package.Name, nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
