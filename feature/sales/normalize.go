package sales

import (
	"errors"
	"fmt"
	"strings"

	"sales-sync/core/snapshot"

	"github.com/shopspring/decimal"
)

// Column precision of the stored numerics.
const (
	salePricePrecision = 15
	salePriceScale     = 2
	lotSizePrecision   = 10
	lotSizeScale       = 4

	// minExponent caps the fractional digits accepted before rounding.
	minExponent = -64
)

var errMissingValue = errors.New("value is required")

// CompositeID builds the natural identity of a raw row. Components are used verbatim.
func CompositeID(raw snapshot.RawRecord) string {
	return fmt.Sprintf("%s-%s-%s-%s",
		raw.Get(ColSwisCode), raw.Get(ColBook), raw.Get(ColPage), raw.Get(ColDeedDate))
}

// Normalize maps a raw row to a Sale and computes its fingerprint.
// Missing text columns read as "". The sale price is required; the lot size may be empty.
func Normalize(raw snapshot.RawRecord) (*Sale, error) {
	price, err := parseDecimal(raw.Get(ColSalePrice), salePricePrecision, salePriceScale)
	if err != nil {
		return nil, &MalformedRecordError{Field: ColSalePrice, Value: raw.Get(ColSalePrice), Raw: raw, Err: err}
	}

	acres := decimal.NullDecimal{}
	if v := raw.Get(ColTotalAcres); v != "" {
		d, err := parseDecimal(v, lotSizePrecision, lotSizeScale)
		if err != nil {
			return nil, &MalformedRecordError{Field: ColTotalAcres, Value: v, Raw: raw, Err: err}
		}
		acres = decimal.NewNullDecimal(d)
	}

	sale := &Sale{
		TransactionCompositeID: CompositeID(raw),
		CountyName:             raw.Get(ColCountyName),
		MuniName:               raw.Get(ColMuniName),
		PropertyAddress:        strings.TrimSpace(raw.Get(ColStreetNbr) + " " + raw.Get(ColStreetName)),
		ZipCode:                raw.Get(ColZip5),
		SaleDate:               raw.Get(ColSaleDate),
		SalePrice:              price,
		PropertyType:           raw.Get(ColPropClassDesc),
		LotSizeAcres:           acres,
		SwisCounty:             raw.Get(ColSwisCode),
		Book:                   raw.Get(ColBook),
		Page:                   raw.Get(ColPage),
		DeedDate:               raw.Get(ColDeedDate),
		StreetNbr:              raw.Get(ColStreetNbr),
		StreetName:             raw.Get(ColStreetName),
		PropClassDescAtSale:    raw.Get(ColPropClassDesc),
	}
	sale.SourceChecksum = Fingerprint(sale)

	return sale, nil
}

// parseDecimal parses a decimal that must fit numeric(precision, scale) once rounded.
func parseDecimal(value string, precision, scale int32) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, errMissingValue
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a decimal: %w", err)
	}

	if d.IsZero() {
		return decimal.Zero, nil
	}
	// Checked before any rescaling: the parser accepts any int32 exponent
	if d.Exponent() < minExponent {
		return decimal.Decimal{}, fmt.Errorf("exponent %d out of range", d.Exponent())
	}
	if int64(d.NumDigits())+int64(d.Exponent()) > int64(precision-scale) {
		return decimal.Decimal{}, fmt.Errorf("exceeds numeric(%d,%d)", precision, scale)
	}

	limit := decimal.New(1, precision-scale)
	if d.Round(scale).Abs().GreaterThanOrEqual(limit) {
		return decimal.Decimal{}, fmt.Errorf("exceeds numeric(%d,%d)", precision, scale)
	}
	return d, nil
}
