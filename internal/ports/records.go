package ports

import (
	"io"

	"license-manifest/internal/types"
)

// RecordStorePort persists and recalls the attribution table.
type RecordStorePort interface {
	// Read loads a previously persisted table. A missing file yields an
	// empty table, not an error.
	Read(path string) ([]types.Record, error)

	// Dump encodes the table to the writer.
	Dump(w io.Writer, records []types.Record) error

	// Write persists the table atomically: the destination is either
	// fully replaced or left untouched.
	Write(path string, records []types.Record) error
}
