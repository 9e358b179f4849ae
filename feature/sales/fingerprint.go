package sales

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// missingValue marks an absent optional value in the fingerprint encoding.
const missingValue = "-"

// fingerprintField is one entry of the fingerprint encoding.
type fingerprintField struct {
	name  string
	value func(*Sale) (string, bool)
}

func text(get func(*Sale) string) func(*Sale) (string, bool) {
	return func(s *Sale) (string, bool) { return get(s), true }
}

// fingerprintFields is the fixed, name-sorted list of fields that define a
// meaningful change. Numerics use their stored scale so equal stored values
// hash equally whatever their source spelling ("5" and "5.00").
var fingerprintFields = []fingerprintField{
	{ColCountyName, text(func(s *Sale) string { return s.CountyName })},
	{ColMuniName, text(func(s *Sale) string { return s.MuniName })},
	{ColPropClassDesc, text(func(s *Sale) string { return s.PropClassDescAtSale })},
	{ColSaleDate, text(func(s *Sale) string { return s.SaleDate })},
	{ColSalePrice, text(func(s *Sale) string { return s.SalePrice.StringFixed(salePriceScale) })},
	{ColStreetName, text(func(s *Sale) string { return s.StreetName })},
	{ColStreetNbr, text(func(s *Sale) string { return s.StreetNbr })},
	{ColTotalAcres, func(s *Sale) (string, bool) {
		if !s.LotSizeAcres.Valid {
			return "", false
		}
		return s.LotSizeAcres.Decimal.StringFixed(lotSizeScale), true
	}},
	{ColZip5, text(func(s *Sale) string { return s.ZipCode })},
}

// Fingerprint returns the hex SHA-256 of the sale's canonical encoding.
//
// Each field is written on its own line as "name=len:value", or "name=-" when
// absent. The length prefix keeps values containing separators unambiguous.
func Fingerprint(s *Sale) string {
	h := sha256.New()
	h.Write([]byte(CanonicalEncoding(s)))
	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalEncoding returns the byte sequence hashed by Fingerprint.
func CanonicalEncoding(s *Sale) string {
	var b strings.Builder
	for _, f := range fingerprintFields {
		b.WriteString(f.name)
		b.WriteByte('=')
		if v, ok := f.value(s); ok {
			b.WriteString(strconv.Itoa(len(v)))
			b.WriteByte(':')
			b.WriteString(v)
		} else {
			b.WriteString(missingValue)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
