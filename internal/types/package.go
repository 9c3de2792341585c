package types

// PackageID uniquely identifies a package in the resolved graph by its
// (name, version, source) triple. It is a graph key only and never
// appears in output.
type PackageID string

type DepKind string

const (
	DepKindNormal DepKind = "normal"
	DepKindBuild  DepKind = "build"
	DepKindDev    DepKind = "dev"
)

// Dep is one outgoing edge of a resolve node. An edge may carry several
// kinds at once when the same dependency is declared in multiple
// sections.
type Dep struct {
	Pkg   PackageID
	Kinds []DepKind
}

// Shipped reports whether following this edge can put code into the
// built artifact, i.e. at least one of its kinds is normal.
func (d Dep) Shipped() bool {
	for _, kind := range d.Kinds {
		if kind == DepKindNormal {
			return true
		}
	}
	return false
}

type Node struct {
	ID   PackageID
	Deps []Dep
}

// Resolve is the resolved dependency graph. Root is empty for virtual
// workspace manifests, in which case every node is treated as a root.
type Resolve struct {
	Root  PackageID
	Nodes map[PackageID]Node
}

// Package is the full metadata of one package as reported by the
// provider. Source is empty for local workspace packages. License may be
// a composite expression joined by "/". Copyright is set exactly once by
// the copyright scanner before record synthesis.
type Package struct {
	ID           PackageID
	Name         string
	Version      string
	License      string
	LicenseFile  string
	Repository   string
	Homepage     string
	Authors      []string
	Source       string
	ManifestPath string
	Copyright    string
}

// Metadata is everything the provider returns for one build manifest.
type Metadata struct {
	Packages []Package
	Resolve  Resolve
}
