package sales

import (
	"errors"
	"testing"

	"sales-sync/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecord(overrides map[string]string) snapshot.RawRecord {
	values := map[string]string{
		ColSwisCode:      "SWIS-1",
		ColCountyName:    "Albany",
		ColMuniName:      "Colonie",
		ColStreetNbr:     "12",
		ColStreetName:    "Main St",
		ColBook:          "B1",
		ColPage:          "P9",
		ColDeedDate:      "2021-03-04",
		ColSaleDate:      "2021-02-01",
		ColSalePrice:     "250000.00",
		ColZip5:          "12205",
		ColPropClassDesc: "Residential",
		ColTotalAcres:    "0.25",
	}
	for k, v := range overrides {
		values[k] = v
	}

	header := make([]string, 0, len(values))
	row := make([]string, 0, len(values))
	for _, col := range FixtureHeader {
		if v, ok := values[col]; ok {
			header = append(header, col)
			row = append(row, v)
		}
	}
	return snapshot.NewRawRecord(2, header, row)
}

func TestNormalize(t *testing.T) {
	sale, err := Normalize(rawRecord(nil))
	require.NoError(t, err)

	assert.Equal(t, "SWIS-1-B1-P9-2021-03-04", sale.TransactionCompositeID)
	assert.Equal(t, "12 Main St", sale.PropertyAddress)
	assert.Equal(t, "12205", sale.ZipCode)
	assert.Equal(t, "Residential", sale.PropertyType)
	assert.Equal(t, "SWIS-1", sale.SwisCounty)
	assert.Equal(t, "250000.00", sale.SalePrice.StringFixed(2))
	assert.True(t, sale.LotSizeAcres.Valid)
	assert.Equal(t, "0.2500", sale.LotSizeAcres.Decimal.StringFixed(4))
	assert.Len(t, sale.SourceChecksum, 64)
	assert.Empty(t, sale.ID)
	assert.Equal(t, sale.TransactionCompositeID, sale.ReconcileKey())
	assert.Equal(t, sale.SourceChecksum, sale.ReconcileFingerprint())
}

func TestNormalize_IdentityIsVerbatim(t *testing.T) {
	sale, err := Normalize(rawRecord(map[string]string{ColBook: "", ColPage: "0042"}))
	require.NoError(t, err)
	assert.Equal(t, "SWIS-1--0042-2021-03-04", sale.TransactionCompositeID)
}

func TestNormalize_AddressTrimmed(t *testing.T) {
	sale, err := Normalize(rawRecord(map[string]string{ColStreetNbr: ""}))
	require.NoError(t, err)
	assert.Equal(t, "Main St", sale.PropertyAddress)
}

func TestNormalize_EmptyLotSizeIsMissing(t *testing.T) {
	sale, err := Normalize(rawRecord(map[string]string{ColTotalAcres: ""}))
	require.NoError(t, err)
	assert.False(t, sale.LotSizeAcres.Valid)
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing price", ColSalePrice, ""},
		{"text price", ColSalePrice, "abc"},
		{"price too large", ColSalePrice, "12345678901234.00"},
		{"text acres", ColTotalAcres, "n/a"},
		{"acres too large", ColTotalAcres, "1000000"},
		{"huge price exponent", ColSalePrice, "1e999999999"},
		{"tiny price exponent", ColSalePrice, "1e-999999999"},
		{"huge acres exponent", ColTotalAcres, "5e2147483647"},
		{"tiny acres exponent", ColTotalAcres, "5e-999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale, err := Normalize(rawRecord(map[string]string{tt.field: tt.value}))
			assert.Nil(t, sale)

			var malformed *MalformedRecordError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.field, malformed.Field)
			assert.Equal(t, tt.value, malformed.Value)
			assert.Equal(t, 2, malformed.Raw.Line)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestNormalize_DecimalBounds(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"9999999999999.99", "9999999999999.99"},
		{"1.5e3", "1500.00"},
		{"0e999999999", "0.00"},
		{"123.000000000000000000000000000000000000000000000000000000000001", "123.00"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			sale, err := Normalize(rawRecord(map[string]string{ColSalePrice: tt.value}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, sale.SalePrice.StringFixed(2))
		})
	}
}

func TestNormalize_AbsentColumns(t *testing.T) {
	record := snapshot.NewRawRecord(5, []string{ColSalePrice}, []string{"10"})

	sale, err := Normalize(record)
	require.NoError(t, err)
	assert.Equal(t, "---", sale.TransactionCompositeID)
	assert.Empty(t, sale.CountyName)
	assert.False(t, sale.LotSizeAcres.Valid)
}
