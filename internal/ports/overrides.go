package ports

import "license-manifest/internal/types"

// OverridePort loads the user-supplied override table. A missing file
// yields an empty table, not an error.
type OverridePort interface {
	Load(path string) (types.Overrides, error)
}
