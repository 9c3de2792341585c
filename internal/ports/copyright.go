package ports

import "license-manifest/internal/types"

// CopyrightPort derives a copyright string for one package from its
// on-disk files, falling back to the author list or a synthesized
// "The {name} Authors" string.
type CopyrightPort interface {
	Lookup(pkg types.Package) (string, error)
}
