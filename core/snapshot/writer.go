package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// WriteArchive writes a zip archive holding a single CSV entry.
func WriteArchive(w io.Writer, entryName string, header []string, rows [][]string) error {
	zw := zip.NewWriter(w)

	entry, err := zw.Create(entryName)
	if err != nil {
		return fmt.Errorf("failed to create entry %s: %w", entryName, err)
	}

	cw := csv.NewWriter(entry)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
