package app

import "license-manifest/internal/core"

type BuildRequest struct {
	ManifestPath  string
	OverridesPath string
}

type WriteRequest struct {
	Build      BuildRequest
	OutputPath string
}

type WriteResult struct {
	OutputPath  string
	RecordCount int
}

type CheckRequest struct {
	Build      BuildRequest
	OutputPath string
}

type CheckResult struct {
	Mismatches []core.Mismatch
}
