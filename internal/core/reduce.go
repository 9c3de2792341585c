package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"license-manifest/internal/types"
)

// BuildRecords converts normalized packages into the final attribution
// table: one candidate record per package, grouped by everything except
// the component name, each group collapsed to as few records as the
// naming heuristics allow, and the result sorted for deterministic
// output.
func BuildRecords(ctx context.Context, packages []types.Package) []types.Record {
	groups := collectGroups(ctx, packages)
	var records []types.Record
	for key, names := range groups {
		records = append(records, reduceNames(key, names)...)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Less(records[j])
	})
	log.Ctx(ctx).Debug().Int("packages", len(packages)).Int("records", len(records)).Msg("attribution records built")
	return records
}

// collectGroups keys candidate records by their component-less form so
// that packages published under different names from the same upstream
// project share one group.
func collectGroups(ctx context.Context, packages []types.Package) map[types.Record]map[string]struct{} {
	groups := map[types.Record]map[string]struct{}{}
	for _, pkg := range packages {
		record := packageRecord(ctx, pkg)
		name := record.Component
		record.Component = ""
		if groups[record] == nil {
			groups[record] = map[string]struct{}{}
		}
		groups[record][name] = struct{}{}
	}
	return groups
}

func packageRecord(ctx context.Context, pkg types.Package) types.Record {
	// Repository and license were fixed up by RewritePackages and the
	// copyright was set by the scanner; their absence here is a contract
	// violation between pipeline stages.
	assert.NotEmpty(ctx, pkg.Repository, fmt.Sprintf("repository for %s should have been set", pkg.Name))
	assert.NotEmpty(ctx, pkg.License, fmt.Sprintf("license for %s should have been set", pkg.Name))
	assert.NotEmpty(ctx, pkg.Copyright, fmt.Sprintf("copyright for %s should have been set", pkg.Name))
	return types.Record{
		Component: pkg.Name,
		Origin:    pkg.Repository,
		License:   strings.ReplaceAll(pkg.License, "/", " OR "),
		Copyright: pkg.Copyright,
	}
}

// reduceNames rehydrates a component-less group key into records. A
// group with several names is collapsed to one record when the origin
// URL's last path segment identifies a canonical name, trying in order:
// the raw suffix, the suffix with a leading "rust-" stripped, and the
// suffix with a trailing "-rs" stripped. First match wins. When nothing
// matches, every name gets its own record; that is a fallback, not a
// failure.
func reduceNames(key types.Record, names map[string]struct{}) []types.Record {
	if len(names) == 1 {
		for name := range names {
			key.Component = name
		}
		return []types.Record{key}
	}

	if _, suffix, ok := lastSegment(key.Origin); ok {
		candidates := []string{suffix}
		if stripped := strings.TrimPrefix(suffix, "rust-"); stripped != suffix {
			candidates = append(candidates, stripped)
		}
		if stripped := strings.TrimSuffix(suffix, "-rs"); stripped != suffix {
			candidates = append(candidates, stripped)
		}
		for _, candidate := range candidates {
			if _, ok := names[candidate]; ok {
				key.Component = candidate
				return []types.Record{key}
			}
		}
		// More patterns may be added here as needed to shrink the table.
	}

	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)
	records := make([]types.Record, 0, len(ordered))
	for _, name := range ordered {
		record := key
		record.Component = name
		records = append(records, record)
	}
	return records
}

func lastSegment(origin string) (string, string, bool) {
	i := strings.LastIndexByte(origin, '/')
	if i < 0 {
		return "", "", false
	}
	return origin[:i], origin[i+1:], true
}
