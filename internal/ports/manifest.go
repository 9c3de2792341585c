package ports

// ManifestPort re-reads a package's own manifest to recover its
// self-declared name, which can differ from the name the resolver knows
// it by.
type ManifestPort interface {
	PackageName(manifestPath string) (string, error)
}
