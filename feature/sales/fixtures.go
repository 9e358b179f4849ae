package sales

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"sales-sync/core/snapshot"

	"github.com/shopspring/decimal"
)

// Fixture archive names.
const (
	FixtureTarget   = "0122_CUR_Target.zip"
	FixtureSourceV1 = "0122_CUR_Source_V1.zip"
	FixtureSourceV2 = "0122_CUR_Source_V2.zip"

	fixtureEntry     = "0122_CUR.csv"
	fixtureBaseCount = 50
	fixtureAdded     = 5
)

var (
	fixtureModified   = []int{10, 20}
	fixtureDeleted    = []int{3, 7}
	fixturePropClass  = []string{"Residential", "Commercial", "Land"}
	fixtureRaiseRatio = decimal.RequireFromString("1.05")
	fixtureRaiseFlat  = decimal.NewFromInt(100)
)

// FixtureHeader is the column order of generated snapshots.
var FixtureHeader = []string{
	ColSwisCode, ColCountyName, ColMuniName, ColStreetNbr, ColStreetName, ColBook,
	ColPage, ColDeedDate, ColSaleDate, ColSalePrice, ColZip5, ColPropClassDesc,
	ColTotalAcres, "seller_last_name", "buyer_first_name",
}

// FixtureSnapshot is one generated snapshot.
type FixtureSnapshot struct {
	Name string
	Rows [][]string
}

// FixtureRow generates the row for index i. Output depends only on i.
func FixtureRow(i int) []string {
	padded := fmt.Sprintf("%05d", i)
	price := decimal.NewFromInt(int64(100000 + (i*7919)%1400001))
	acres := decimal.New(int64(10+(i*37)%491), -2)

	return []string{
		fmt.Sprintf("SWIS-%d", i%5+1),
		fmt.Sprintf("County%d", i%3+1),
		strconv.Itoa(i%500 + 100),
		strconv.Itoa(i + 100),
		fmt.Sprintf("Street%d", i%20+1),
		"BOOK-" + padded[:3],
		"PAGE-" + padded[3:],
		fixtureDate(2020, i),
		fixtureDate(2021, i),
		price.StringFixed(2),
		strconv.Itoa(i%90000 + 10000),
		fixturePropClass[i%3],
		acres.StringFixed(2),
		fmt.Sprintf("Seller%d", i),
		fmt.Sprintf("Buyer%d", i),
	}
}

func fixtureDate(baseYear, i int) string {
	return fmt.Sprintf("%d-%02d-%02d", baseYear+i%4, i%12+1, i%28+1)
}

// FixtureSnapshots returns the target (V0) and the two source versions.
// V1 equals V0. V2 adds five rows, changes the price and county of two and drops two.
func FixtureSnapshots() []FixtureSnapshot {
	base := make([][]string, 0, fixtureBaseCount)
	for i := 1; i <= fixtureBaseCount; i++ {
		base = append(base, FixtureRow(i))
	}

	v1 := cloneRows(base)

	v2 := cloneRows(base)
	for i := fixtureBaseCount + 1; i <= fixtureBaseCount+fixtureAdded; i++ {
		v2 = append(v2, FixtureRow(i))
	}
	for _, idx := range fixtureModified {
		row := v2[idx]
		price := decimal.RequireFromString(row[9])
		row[9] = price.Mul(fixtureRaiseRatio).Add(fixtureRaiseFlat).StringFixed(2)
		row[1] = fmt.Sprintf("ModifiedCounty%d", idx)
	}
	deleted := make(map[int]bool, len(fixtureDeleted))
	for _, idx := range fixtureDeleted {
		deleted[idx] = true
	}
	kept := v2[:0]
	for i, row := range v2 {
		if !deleted[i] {
			kept = append(kept, row)
		}
	}

	return []FixtureSnapshot{
		{Name: FixtureTarget, Rows: base},
		{Name: FixtureSourceV1, Rows: v1},
		{Name: FixtureSourceV2, Rows: kept},
	}
}

// Archive encodes the snapshot as a zip holding a single CSV entry.
func (f FixtureSnapshot) Archive() ([]byte, error) {
	var buf bytes.Buffer
	if err := snapshot.WriteArchive(&buf, fixtureEntry, FixtureHeader, f.Rows); err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", f.Name, err)
	}
	return buf.Bytes(), nil
}

// Records returns the rows as raw records, numbered as in the CSV.
func (f FixtureSnapshot) Records() []snapshot.RawRecord {
	records := make([]snapshot.RawRecord, len(f.Rows))
	for i, row := range f.Rows {
		records[i] = snapshot.NewRawRecord(i+2, FixtureHeader, row)
	}
	return records
}

// WriteFixtures writes every fixture archive into dir and returns their paths.
func WriteFixtures(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var paths []string
	for _, fx := range FixtureSnapshots() {
		data, err := fx.Archive()
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, fx.Name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
