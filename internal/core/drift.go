package core

import (
	"sort"

	"license-manifest/internal/types"
)

type MismatchKind string

const (
	// MismatchMissing means a freshly built record has no exact match in
	// the persisted table: it is either new or a field changed. Matching
	// is by whole-record equality, so the two cases are not
	// distinguishable at this granularity.
	MismatchMissing MismatchKind = "missing or changed"

	// MismatchExtraneous means a persisted record matched no freshly
	// built one.
	MismatchExtraneous MismatchKind = "extraneous"
)

type Mismatch struct {
	Kind   MismatchKind
	Record types.Record
}

// CheckDrift compares a freshly built table against the persisted one
// using multiset semantics over whole-record equality. Every mismatch is
// reported; an empty result means the persisted table is up to date.
func CheckDrift(fresh []types.Record, persisted []types.Record) []Mismatch {
	remaining := map[types.Record]int{}
	for _, record := range persisted {
		remaining[record]++
	}

	var mismatches []Mismatch
	for _, record := range fresh {
		if remaining[record] > 0 {
			remaining[record]--
			continue
		}
		mismatches = append(mismatches, Mismatch{Kind: MismatchMissing, Record: record})
	}
	var extraneous []types.Record
	for record, count := range remaining {
		for i := 0; i < count; i++ {
			extraneous = append(extraneous, record)
		}
	}
	sort.Slice(extraneous, func(i, j int) bool {
		return extraneous[i].Less(extraneous[j])
	})
	for _, record := range extraneous {
		mismatches = append(mismatches, Mismatch{Kind: MismatchExtraneous, Record: record})
	}
	return mismatches
}
