package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
)

const utf8BOM = "\ufeff"

// Reader extracts the tabular entry of a snapshot archive.
type Reader struct {
	// EntryName is the expected base name of the CSV entry, matched case-insensitively.
	// When empty the archive must hold exactly one .csv entry.
	EntryName string
}

// ReadArchive decodes the archive held by ra and parses its tabular entry.
func (r Reader) ReadArchive(ra io.ReaderAt, size int64) ([]RawRecord, error) {
	archive, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	entry, err := r.selectEntry(archive.File)
	if err != nil {
		return nil, err
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	records, err := ParseCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", entry.Name, err)
	}
	return records, nil
}

// selectEntry picks the single entry matching the configured name.
func (r Reader) selectEntry(files []*zip.File) (*zip.File, error) {
	var matches []*zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		base := path.Base(f.Name)
		if r.EntryName != "" {
			if strings.EqualFold(base, r.EntryName) {
				matches = append(matches, f)
			}
			continue
		}
		if strings.EqualFold(path.Ext(base), ".csv") {
			matches = append(matches, f)
		}
	}

	switch len(matches) {
	case 0:
		if r.EntryName != "" {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, r.EntryName)
		}
		return nil, ErrEntryNotFound
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, f := range matches {
			names[i] = f.Name
		}
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousEntry, strings.Join(names, ", "))
	}
}

// ParseCSV reads a header row followed by data rows. Header names and values
// are trimmed, blank lines are skipped and short rows are kept as-is.
// Quoted fields may be padded with blanks on either side.
func ParseCSV(src io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(newQuotePadFilter(src))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	index := indexHeader(header)

	var records []RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv parsing error: %w", err)
		}

		line, _ := cr.FieldPos(0)
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		records = append(records, newRawRecord(line, header, index, row))
	}

	return records, nil
}
