package ports

import (
	"context"

	"license-manifest/internal/types"
)

// MetadataPort provides the resolved dependency graph and per-package
// metadata for one build manifest.
type MetadataPort interface {
	Load(ctx context.Context, manifestPath string) (types.Metadata, error)
}
