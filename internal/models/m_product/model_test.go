package m_product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectIDByIdentitySQL(t *testing.T) {
	assert.Equal(t,
		"SELECT id FROM products WHERE platform = $1 AND url = $2 LIMIT 1",
		SelectIDByIdentitySQL(),
	)
}

func TestInsertSQLReturnsGeneratedID(t *testing.T) {
	sql := InsertSQL()
	assert.True(t, strings.HasPrefix(sql, "INSERT INTO products ("))
	assert.True(t, strings.HasSuffix(sql, "RETURNING id"))
	assert.Equal(t, len(insertColumns), strings.Count(sql, "$"))
}

func TestUpdateSQLNeverTouchesIdentity(t *testing.T) {
	sql := UpdateSQL()

	// platform and url form the row identity; only mutable columns appear in
	// the SET list.
	assert.NotContains(t, sql, Platform)
	assert.NotContains(t, sql, " "+URL+" =")
	assert.Contains(t, sql, Price+" =")
	assert.Contains(t, sql, UpdatedAt+" =")
	assert.True(t, strings.HasSuffix(sql, "WHERE id = $18"))
}
