package adapters

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"license-manifest/internal/ports"
	"license-manifest/internal/types"
)

// Files searched for copyright notices, in priority order. A license
// file declared in the package manifest is always tried first.
var copyrightLocations = []string{
	"license",
	"LICENSE",
	"license.md",
	"LICENSE.md",
	"LICENSE.txt",
	"License.txt",
	"license.txt",
	"LICENSE-APACHE",
	"LICENSE-MIT",
	"COPYING",
	"NOTICE",
	"README",
	"README.md",
	"README.mdown",
	"README.markdown",
	"COPYRIGHT",
	"COPYRIGHT.txt",
}

// General match for anything that looks like a copyright declaration.
var reCopyright = regexp.MustCompile(`(?im)copyright\s+(?:©|\(c\)\s+)?(?:(?:[0-9 ,-]|present)+\s+)?(?:by\s+)?.*$`)

// Copyright strings to skip because they name no owner; most come from
// boilerplate license files. Matched against the start of a candidate.
var reCopyrightIgnore = regexp.MustCompile(`(?i)^(copyright(?: and license)?$|copyright (?:holder|owner|notice|license|statement)|Copyright & License -|copyright .yyyy. .name of copyright owner)`)

// CopyrightScanAdapter searches a package's on-disk files for a
// copyright declaration.
type CopyrightScanAdapter struct{}

func NewCopyrightScanAdapter() CopyrightScanAdapter {
	return CopyrightScanAdapter{}
}

func (a CopyrightScanAdapter) Lookup(pkg types.Package) (string, error) {
	dir := filepath.Dir(pkg.ManifestPath)
	if pkg.LicenseFile != "" {
		copyright, err := scanFile(filepath.Join(dir, pkg.LicenseFile))
		if err != nil {
			return "", err
		}
		if copyright != "" {
			return copyright, nil
		}
	}
	for _, location := range copyrightLocations {
		path := filepath.Join(dir, location)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		copyright, err := scanFile(path)
		if err != nil {
			return "", err
		}
		if copyright != "" {
			return copyright, nil
		}
	}
	if len(pkg.Authors) > 0 {
		return strings.Join(pkg.Authors, ", "), nil
	}
	return "The " + pkg.Name + " Authors", nil
}

func scanFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("could not read " + path).
			WithCause(err)
	}
	if found := reCopyright.FindString(string(data)); found != "" {
		if !reCopyrightIgnore.MatchString(found) {
			return strings.TrimRight(found, "\r"), nil
		}
	}
	return "", nil
}

var _ ports.CopyrightPort = CopyrightScanAdapter{}
