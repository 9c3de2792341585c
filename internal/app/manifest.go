package app

import (
	"context"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"license-manifest/internal/core"
	"license-manifest/internal/types"
)

// Build runs the whole attribution pipeline: load overrides and
// metadata, filter the graph down to shipped packages, normalize, fix up
// names, scan copyrights, and reduce to the final record table.
func (s Service) Build(ctx context.Context, req BuildRequest) ([]types.Record, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	overridesPath := strings.TrimSpace(req.OverridesPath)
	if overridesPath == "" {
		overridesPath = ConfigFilename
	}

	overrides, err := s.Overrides.Load(overridesPath)
	if err != nil {
		return nil, err
	}
	meta, err := s.Metadata.Load(ctx, manifestPath)
	if err != nil {
		return nil, err
	}

	shipped := core.FilterShipped(ctx, meta.Resolve)
	packages := core.LookupPackages(ctx, shipped, meta.Packages)
	packages, err = core.RewritePackages(ctx, packages, overrides)
	if err != nil {
		return nil, err
	}
	if err := s.fixupNames(packages); err != nil {
		return nil, err
	}
	if err := s.lookupCopyrights(packages); err != nil {
		return nil, err
	}

	records := core.BuildRecords(ctx, packages)
	log.Ctx(ctx).Debug().Int("records", len(records)).Msg("license manifest built")
	return records, nil
}

// fixupNames replaces each resolver-known name with the package's own
// self-declared manifest name.
func (s Service) fixupNames(packages []types.Package) error {
	for i := range packages {
		name, err := s.Manifest.PackageName(packages[i].ManifestPath)
		if err != nil {
			return err
		}
		packages[i].Name = name
	}
	return nil
}

func (s Service) lookupCopyrights(packages []types.Package) error {
	for i := range packages {
		copyright, err := s.Copyright.Lookup(packages[i])
		if err != nil {
			return err
		}
		packages[i].Copyright = copyright
	}
	return nil
}

// Dump builds the table and encodes it to the writer.
func (s Service) Dump(ctx context.Context, req BuildRequest, w io.Writer) error {
	records, err := s.Build(ctx, req)
	if err != nil {
		return err
	}
	return s.Records.Dump(w, records)
}

// Write builds the table and persists it atomically to the destination.
func (s Service) Write(ctx context.Context, req WriteRequest) (WriteResult, error) {
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = DestFilename
	}
	records, err := s.Build(ctx, req.Build)
	if err != nil {
		return WriteResult{}, err
	}
	if err := s.Records.Write(outputPath, records); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{OutputPath: outputPath, RecordCount: len(records)}, nil
}

// Check builds the table and compares it against the persisted one. The
// result carries every mismatch; deciding to fail is the caller's job so
// diagnostics can be rendered before exiting.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = DestFilename
	}
	records, err := s.Build(ctx, req.Build)
	if err != nil {
		return CheckResult{}, err
	}
	persisted, err := s.Records.Read(outputPath)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{Mismatches: core.CheckDrift(records, persisted)}, nil
}
