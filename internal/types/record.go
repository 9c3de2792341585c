package types

// Record is the canonical output unit of the manifest: one attribution
// row. Two records are equal iff all four fields match exactly, which
// makes the struct usable directly as a map key for set operations.
type Record struct {
	Component string
	Origin    string
	License   string
	Copyright string
}

// Less orders records by component name first, then by the remaining
// fields so that sorting is total and deterministic.
func (r Record) Less(other Record) bool {
	if r.Component != other.Component {
		return r.Component < other.Component
	}
	if r.Origin != other.Origin {
		return r.Origin < other.Origin
	}
	if r.License != other.License {
		return r.License < other.License
	}
	return r.Copyright < other.Copyright
}
