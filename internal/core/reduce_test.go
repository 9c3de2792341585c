package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"license-manifest/internal/types"
)

func shippedPackage(name string, origin string) types.Package {
	return types.Package{
		Name:       name,
		Version:    "1.0.0",
		License:    "MIT",
		Repository: origin,
		Source:     registrySource,
		Copyright:  "Copyright (c) 2020 Acme",
	}
}

func TestBuildRecordsSinglePackageRoundTrips(t *testing.T) {
	records := BuildRecords(t.Context(), []types.Package{
		shippedPackage("serde", "https://github.com/serde-rs/serde"),
	})

	expected := []types.Record{
		{
			Component: "serde",
			Origin:    "https://github.com/serde-rs/serde",
			License:   "MIT",
			Copyright: "Copyright (c) 2020 Acme",
		},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestBuildRecordsRewritesCompositeLicense(t *testing.T) {
	pkg := shippedPackage("serde", "https://github.com/serde-rs/serde")
	pkg.License = "MIT/Apache-2.0"

	records := BuildRecords(t.Context(), []types.Package{pkg})

	require.Len(t, records, 1)
	assert.Equal(t, "MIT OR Apache-2.0", records[0].License)
}

func TestBuildRecordsCollapsesOnOriginSuffix(t *testing.T) {
	records := BuildRecords(t.Context(), []types.Package{
		shippedPackage("foo", "https://github.com/acme/foo"),
		shippedPackage("foo-rs", "https://github.com/acme/foo"),
	})

	require.Len(t, records, 1)
	assert.Equal(t, "foo", records[0].Component)
}

func TestBuildRecordsCollapsesOnRustPrefixStripped(t *testing.T) {
	records := BuildRecords(t.Context(), []types.Package{
		shippedPackage("foo", "https://github.com/acme/rust-foo"),
		shippedPackage("foo-extras", "https://github.com/acme/rust-foo"),
	})

	require.Len(t, records, 1)
	assert.Equal(t, "foo", records[0].Component)
}

func TestBuildRecordsCollapsesOnRsSuffixStripped(t *testing.T) {
	records := BuildRecords(t.Context(), []types.Package{
		shippedPackage("foo", "https://github.com/acme/foo-rs"),
		shippedPackage("foo-macros", "https://github.com/acme/foo-rs"),
	})

	require.Len(t, records, 1)
	assert.Equal(t, "foo", records[0].Component)
}

func TestBuildRecordsExactSuffixWinsOverStrippedForms(t *testing.T) {
	// Both "rust-foo" (exact) and "foo" (prefix-stripped) are in the
	// group; the cascade tries the exact suffix first.
	records := BuildRecords(t.Context(), []types.Package{
		shippedPackage("foo", "https://github.com/acme/rust-foo"),
		shippedPackage("rust-foo", "https://github.com/acme/rust-foo"),
	})

	require.Len(t, records, 1)
	assert.Equal(t, "rust-foo", records[0].Component)
}

func TestBuildRecordsUnreducibleGroupKeepsAllNames(t *testing.T) {
	records := BuildRecords(t.Context(), []types.Package{
		shippedPackage("alpha", "https://github.com/acme/unrelated"),
		shippedPackage("beta", "https://github.com/acme/unrelated"),
	})

	require.Len(t, records, 2)
	assert.Equal(t, "alpha", records[0].Component)
	assert.Equal(t, "beta", records[1].Component)
	assert.Equal(t, records[0].Origin, records[1].Origin)
}

func TestBuildRecordsDistinctLicensesStayDistinct(t *testing.T) {
	mit := shippedPackage("foo", "https://github.com/acme/foo")
	apache := shippedPackage("foo-derive", "https://github.com/acme/foo")
	apache.License = "Apache-2.0"

	records := BuildRecords(t.Context(), []types.Package{mit, apache})

	require.Len(t, records, 2)
}

func TestBuildRecordsNeverEmitsDuplicates(t *testing.T) {
	records := BuildRecords(t.Context(), []types.Package{
		shippedPackage("foo", "https://github.com/acme/foo"),
		shippedPackage("foo", "https://github.com/acme/foo"),
	})

	require.Len(t, records, 1)
}

func TestBuildRecordsDeterministicAcrossInputOrder(t *testing.T) {
	packages := []types.Package{
		shippedPackage("zeta", "https://github.com/acme/zeta"),
		shippedPackage("alpha", "https://github.com/acme/alpha"),
		shippedPackage("mid", "https://github.com/acme/mid"),
	}
	reversed := []types.Package{packages[2], packages[1], packages[0]}

	first := BuildRecords(t.Context(), packages)
	second := BuildRecords(t.Context(), reversed)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("output depends on input order (-first +second):\n%s", diff)
	}
	require.Len(t, first, 3)
	assert.Equal(t, "alpha", first[0].Component)
	assert.Equal(t, "mid", first[1].Component)
	assert.Equal(t, "zeta", first[2].Component)
}
