package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"license-manifest/internal/types"
)

const gitSourcePrefix = "git+"

// RewritePackages applies overrides and canonicalizes every package's
// origin, ensuring each one ends up with a repository URL and a license.
// Failures are collected across all packages so the user sees every
// problem at once; any failure aborts the run afterwards.
func RewritePackages(ctx context.Context, packages []types.Package, overrides types.Overrides) ([]types.Package, error) {
	rewritten := make([]types.Package, 0, len(packages))
	failures := 0
	for _, pkg := range packages {
		fixed, err := rewritePackage(ctx, pkg, overrides)
		if err != nil {
			log.Ctx(ctx).Error().
				Str("package", pkg.Name+"-"+pkg.Version).
				Msg(err.Error())
			failures++
			continue
		}
		rewritten = append(rewritten, fixed)
	}
	if failures > 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("could not fix up package details")
	}
	return rewritten, nil
}

func rewritePackage(ctx context.Context, pkg types.Package, overrides types.Overrides) (types.Package, error) {
	if entry, ok := overrides.Lookup(pkg.Name, pkg.Version); ok {
		if entry.License != "" {
			pkg.License = entry.License
		}
		if entry.Origin != "" {
			pkg.Repository = entry.Origin
		}
	}

	// Local packages carry no source and are excluded upstream; nothing
	// to canonicalize.
	if pkg.Source == "" {
		return pkg, nil
	}

	switch {
	case pkg.Repository != "":
		pkg.Repository = stripGit(pkg.Repository)
	case strings.HasPrefix(pkg.Source, gitSourcePrefix):
		base := strings.TrimPrefix(pkg.Source, gitSourcePrefix)
		if i := strings.IndexByte(base, '?'); i >= 0 {
			base = base[:i]
		}
		pkg.Repository = stripGit(base)
	case pkg.Homepage != "":
		pkg.Repository = pkg.Homepage
	default:
		return types.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package is missing a repository")
	}

	if pkg.License == "" {
		return types.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package is missing a license")
	}
	return pkg, nil
}

// stripGit canonicalizes a repository URL by dropping a trailing ".git"
// and then a trailing "/", each independently optional. Already-canonical
// URLs pass through unchanged.
func stripGit(url string) string {
	return strings.TrimSuffix(strings.TrimSuffix(url, ".git"), "/")
}
