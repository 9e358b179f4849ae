package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sales-sync/core/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists sales in a relational table.
type Repository struct {
	db    *gorm.DB
	table string
}

// NewRepository creates a repository on table. Empty table selects DefaultTable.
func NewRepository(db *gorm.DB, table string) *Repository {
	if table == "" {
		table = DefaultTable
	}
	return &Repository{db: db, table: table}
}

func (r *Repository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// LoadAll returns every stored sale ordered by identity.
func (r *Repository) LoadAll(ctx context.Context) ([]*Sale, error) {
	var sales []*Sale
	if err := r.query(ctx).Order("transaction_composite_id").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	return sales, nil
}

// FindByKey returns the sale with the given identity or ErrSaleNotFound.
func (r *Repository) FindByKey(ctx context.Context, key string) (*Sale, error) {
	var sale Sale
	err := r.query(ctx).Where("transaction_composite_id = ?", key).Take(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", key, err)
	}
	return &sale, nil
}

// Count returns the number of stored sales.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.query(ctx).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return n, nil
}

// Insert stores a new sale under a fresh surrogate id. The argument is not modified.
func (r *Repository) Insert(ctx context.Context, sale *Sale) error {
	row := *sale
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if err := r.query(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

// Update overwrites every descriptive column and the checksum of the stored
// sale with the same identity. The surrogate id and created_at are kept.
func (r *Repository) Update(ctx context.Context, sale *Sale) error {
	res := r.query(ctx).
		Where("transaction_composite_id = ?", sale.TransactionCompositeID).
		Updates(updateColumns(sale, time.Now()))
	if res.Error != nil {
		return fmt.Errorf("failed to update sale: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

func updateColumns(s *Sale, now time.Time) map[string]any {
	return map[string]any{
		"county_name":             s.CountyName,
		"muni_name":               s.MuniName,
		"property_address":        s.PropertyAddress,
		"zip_code":                s.ZipCode,
		"sale_date":               s.SaleDate,
		"sale_price":              s.SalePrice,
		"property_type":           s.PropertyType,
		"lot_size_acres":          s.LotSizeAcres,
		"swis_county":             s.SwisCounty,
		"book":                    s.Book,
		"page":                    s.Page,
		"deed_date":               s.DeedDate,
		"street_nbr":              s.StreetNbr,
		"street_name":             s.StreetName,
		"prop_class_desc_at_sale": s.PropClassDescAtSale,
		"source_checksum":         s.SourceChecksum,
		"updated_at":              now,
	}
}

// DeleteBatch removes the sales with the given identities in one statement.
func (r *Repository) DeleteBatch(ctx context.Context, keys []string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	res := r.query(ctx).Where("transaction_composite_id IN ?", keys).Delete(&Sale{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete %d sales: %w", len(keys), res.Error)
	}
	return int(res.RowsAffected), nil
}

// VerifySchema checks that the table has every column a sync writes.
func (r *Repository) VerifySchema() error {
	missing, err := database.MissingColumns(r.db, r.table, RequiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", r.table, strings.Join(missing, ", "))
	}
	return nil
}
