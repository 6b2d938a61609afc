package m_product

import (
	"fmt"
	"strings"
)

// insertColumns lists the columns supplied on insert, in parameter order.
// The id column is generated by the database and returned to the caller.
var insertColumns = []string{
	Platform,
	ProductName,
	Brand,
	Model,
	Price,
	OriginalPrice,
	Currency,
	URL,
	ImageURL,
	Processor,
	RAM,
	Storage,
	ScreenSize,
	Graphics,
	OperatingSystem,
	Condition,
	Availability,
	Specs,
	ScrapedAt,
	CreatedAt,
	UpdatedAt,
}

// updateColumns lists the mutable columns, in parameter order. Platform and
// URL form the row identity and are never updated.
var updateColumns = []string{
	ProductName,
	Brand,
	Model,
	Price,
	OriginalPrice,
	Currency,
	ImageURL,
	Processor,
	RAM,
	Storage,
	ScreenSize,
	Graphics,
	OperatingSystem,
	Condition,
	Availability,
	Specs,
	UpdatedAt,
}

// SelectIDByIdentitySQL returns the existence-check statement, parameterized
// on (platform, url).
func SelectIDByIdentitySQL() string {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2 LIMIT 1",
		ID, TableName, Platform, URL,
	)
}

// InsertSQL returns the insert statement. Parameter order matches
// InsertArgs in the persister; the generated id is returned.
func InsertSQL() string {
	placeholders := make([]string, len(insertColumns))
	for i := range insertColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		TableName,
		strings.Join(insertColumns, ", "),
		strings.Join(placeholders, ", "),
		ID,
	)
}

// UpdateSQL returns the update statement for all mutable columns, keyed by id
// as the final parameter.
func UpdateSQL() string {
	sets := make([]string, len(updateColumns))
	for i, col := range updateColumns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		TableName,
		strings.Join(sets, ", "),
		ID, len(updateColumns)+1,
	)
}
