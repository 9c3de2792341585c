package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"license-manifest/internal/types"
)

// FilterShipped walks the resolved graph and returns the set of package
// ids reachable through at least one all-normal-kind path from the root.
// Packages reachable only via build or dev edges never enter the set,
// nor does anything reachable only through them.
//
// A manifest without an explicit root is a workspace: the walk runs from
// every node independently and the results are unioned.
func FilterShipped(ctx context.Context, resolve types.Resolve) map[types.PackageID]struct{} {
	shipped := map[types.PackageID]struct{}{}
	visited := map[types.PackageID]struct{}{}
	if resolve.Root != "" {
		filterNode(ctx, resolve.Root, resolve.Nodes, shipped, visited)
	} else {
		for id := range resolve.Nodes {
			filterNode(ctx, id, resolve.Nodes, shipped, visited)
		}
	}
	log.Ctx(ctx).Debug().Int("shipped", len(shipped)).Int("nodes", len(resolve.Nodes)).Msg("dependency graph filtered")
	return shipped
}

func filterNode(ctx context.Context, id types.PackageID, nodes map[types.PackageID]types.Node, shipped map[types.PackageID]struct{}, visited map[types.PackageID]struct{}) {
	// The visited guard bounds the walk to O(edges); the graph is a DAG
	// by provider contract, so this is purely a cost concern.
	if _, seen := visited[id]; seen {
		return
	}
	visited[id] = struct{}{}

	node, ok := nodes[id]
	if !ok {
		// An edge referencing a node absent from the graph violates the
		// provider contract.
		assert.NotEmpty(ctx, string(node.ID), fmt.Sprintf("package %s missing from resolve graph", id))
		return
	}
	for _, dep := range node.Deps {
		if !dep.Shipped() {
			continue
		}
		shipped[dep.Pkg] = struct{}{}
		filterNode(ctx, dep.Pkg, nodes, shipped, visited)
	}
}

// LookupPackages resolves filtered ids against the provider's package
// list, dropping local workspace packages (no source descriptor). A
// filtered id with no package entry violates the provider contract.
func LookupPackages(ctx context.Context, ids map[types.PackageID]struct{}, packages []types.Package) []types.Package {
	byID := make(map[types.PackageID]types.Package, len(packages))
	for _, pkg := range packages {
		byID[pkg.ID] = pkg
	}
	var selected []types.Package
	for id := range ids {
		pkg, ok := byID[id]
		if !ok {
			assert.NotEmpty(ctx, string(pkg.ID), fmt.Sprintf("package %s missing from package list", id))
			continue
		}
		if pkg.Source == "" {
			continue
		}
		selected = append(selected, pkg)
	}
	return selected
}
