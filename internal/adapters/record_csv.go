package adapters

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"

	"license-manifest/internal/ports"
	"license-manifest/internal/types"
)

var csvHeader = []string{"Component", "Origin", "License", "Copyright"}

// RecordCSVAdapter persists the attribution table as four-column CSV
// with a fixed header row.
type RecordCSVAdapter struct{}

func NewRecordCSVAdapter() RecordCSVAdapter {
	return RecordCSVAdapter{}
}

func (a RecordCSVAdapter) Read(path string) ([]types.Record, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("could not read " + path).
			WithCause(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(csvHeader)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("could not parse " + path).
			WithCause(err)
	}
	var records []types.Record
	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		records = append(records, types.Record{
			Component: row[0],
			Origin:    row[1],
			License:   row[2],
			Copyright: row[3],
		})
	}
	return records, nil
}

func (a RecordCSVAdapter) Dump(w io.Writer, records []types.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return dumpError(err)
	}
	for _, record := range records {
		row := []string{record.Component, record.Origin, record.License, record.Copyright}
		if err := writer.Write(row); err != nil {
			return dumpError(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return dumpError(err)
	}
	return nil
}

// Write persists via a temporary file in the destination directory and
// an atomic rename, so a failure never leaves the destination truncated.
func (a RecordCSVAdapter) Write(path string, records []types.Record) error {
	tempPath := filepath.Join(filepath.Dir(path), filepath.Base(path)+".tmp."+uuid.NewString())
	file, err := os.Create(tempPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("could not create " + tempPath).
			WithCause(err)
	}
	if err := a.Dump(file, records); err != nil {
		file.Close()
		os.Remove(tempPath)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("could not write " + tempPath).
			WithCause(err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("could not rename " + tempPath + " to " + path).
			WithCause(err)
	}
	return nil
}

func dumpError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("could not encode record table").
		WithCause(err)
}

var _ ports.RecordStorePort = RecordCSVAdapter{}
