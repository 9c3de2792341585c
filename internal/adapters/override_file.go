package adapters

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"license-manifest/internal/ports"
	"license-manifest/internal/types"
)

// OverrideFileAdapter loads the per-package override table from a TOML
// or YAML configuration file. A missing file means no overrides.
type OverrideFileAdapter struct{}

func NewOverrideFileAdapter() OverrideFileAdapter {
	return OverrideFileAdapter{}
}

type overrideFile struct {
	Overrides types.Overrides `toml:"overrides" yaml:"overrides"`
}

func (a OverrideFileAdapter) Load(path string) (types.Overrides, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.Overrides{}, nil
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("could not load " + path).
			WithCause(err)
	}

	var parsed overrideFile
	switch {
	case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
		err = yaml.Unmarshal(data, &parsed)
	default:
		err = toml.Unmarshal(data, &parsed)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("could not parse " + path).
			WithCause(err)
	}
	if parsed.Overrides == nil {
		parsed.Overrides = types.Overrides{}
	}
	return parsed.Overrides, nil
}

var _ ports.OverridePort = OverrideFileAdapter{}
