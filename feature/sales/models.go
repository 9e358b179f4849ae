package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot column names.
const (
	ColSwisCode      = "swis_code"
	ColCountyName    = "county_name"
	ColMuniName      = "muni_name"
	ColStreetNbr     = "street_nbr"
	ColStreetName    = "street_name"
	ColBook          = "book"
	ColPage          = "page"
	ColDeedDate      = "deed_date"
	ColSaleDate      = "sale_date"
	ColSalePrice     = "sale_price"
	ColZip5          = "zip5"
	ColPropClassDesc = "prop_class_desc_at_sale"
	ColTotalAcres    = "total_sale_acres"
)

// DefaultTable is the table holding sale records.
const DefaultTable = "sales_data"

// Sale is the canonical form of one sale transaction.
type Sale struct {
	ID                     string              `gorm:"type:varchar(36);primaryKey" json:"id"`
	TransactionCompositeID string              `gorm:"column:transaction_composite_id;type:varchar(255);uniqueIndex;not null" json:"transaction_composite_id"`
	CountyName             string              `gorm:"type:varchar(100)" json:"county_name"`
	MuniName               string              `gorm:"type:varchar(100)" json:"muni_name"`
	PropertyAddress        string              `gorm:"type:text" json:"property_address"`
	ZipCode                string              `gorm:"type:varchar(10)" json:"zip_code"`
	SaleDate               string              `gorm:"type:varchar(32)" json:"sale_date"`
	SalePrice              decimal.Decimal     `gorm:"type:numeric(15,2)" json:"sale_price"`
	PropertyType           string              `gorm:"type:varchar(255)" json:"property_type"`
	LotSizeAcres           decimal.NullDecimal `gorm:"type:numeric(10,4)" json:"lot_size_acres"`
	SwisCounty             string              `gorm:"type:varchar(50)" json:"swis_county"`
	Book                   string              `gorm:"type:varchar(50)" json:"book"`
	Page                   string              `gorm:"type:varchar(50)" json:"page"`
	DeedDate               string              `gorm:"type:varchar(32)" json:"deed_date"`
	StreetNbr              string              `gorm:"type:text" json:"street_nbr"`
	StreetName             string              `gorm:"type:text" json:"street_name"`
	PropClassDescAtSale    string              `gorm:"type:text" json:"prop_class_desc_at_sale"`
	SourceChecksum         string              `gorm:"type:varchar(64)" json:"source_checksum"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
}

// TableName is used by schema tooling; the repository may target another table.
func (Sale) TableName() string {
	return DefaultTable
}

// ReconcileKey implements reconcile.Item.
func (s *Sale) ReconcileKey() string {
	return s.TransactionCompositeID
}

// ReconcileFingerprint implements reconcile.Item.
func (s *Sale) ReconcileFingerprint() string {
	return s.SourceChecksum
}

// RequiredColumns lists the columns a sync writes.
var RequiredColumns = []string{
	"id", "transaction_composite_id", "county_name", "muni_name", "property_address",
	"zip_code", "sale_date", "sale_price", "property_type", "lot_size_acres",
	"swis_county", "book", "page", "deed_date", "street_nbr", "street_name",
	"prop_class_desc_at_sale", "source_checksum", "created_at", "updated_at",
}
