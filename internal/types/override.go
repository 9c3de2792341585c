package types

// Override replaces computed values for one package. Entries are keyed
// by "name-version" or bare name; either field may be empty, meaning the
// computed value stands.
type Override struct {
	License string `toml:"license" yaml:"license"`
	Origin  string `toml:"origin" yaml:"origin"`
}

type Overrides map[string]Override

// Lookup finds the override for a package, trying the versioned key
// first and falling back to the bare name.
func (o Overrides) Lookup(name string, version string) (Override, bool) {
	if entry, ok := o[name+"-"+version]; ok {
		return entry, true
	}
	entry, ok := o[name]
	return entry, ok
}
