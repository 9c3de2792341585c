package app

import (
	"license-manifest/internal/adapters"
	"license-manifest/internal/ports"
)

// Well-known filenames shared by the subcommands.
const (
	DestFilename   = "LICENSE-3rdparty.csv"
	ConfigFilename = "license-tool.toml"
)

type Service struct {
	Metadata  ports.MetadataPort
	Manifest  ports.ManifestPort
	Copyright ports.CopyrightPort
	Overrides ports.OverridePort
	Records   ports.RecordStorePort
}

func NewService() Service {
	return Service{
		Metadata:  adapters.NewCargoMetadataAdapter(),
		Manifest:  adapters.NewManifestFileAdapter(),
		Copyright: adapters.NewCopyrightScanAdapter(),
		Overrides: adapters.NewOverrideFileAdapter(),
		Records:   adapters.NewRecordCSVAdapter(),
	}
}
