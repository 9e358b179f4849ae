package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_sales (id TEXT PRIMARY KEY, transaction_composite_id TEXT, sale_price NUMERIC)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_sales")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "text", colMap["id"])
	assert.Equal(t, "text", colMap["transaction_composite_id"])
	assert.Equal(t, "numeric", colMap["sale_price"])

	// PRAGMA table_info returns an empty result for a non-existent table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE test_sales (id TEXT, book TEXT)").Error)

	missing, err := MissingColumns(db, "test_sales", []string{"id", "book", "page", "deed_date"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"page", "deed_date"}, missing)
}
