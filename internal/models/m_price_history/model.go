package m_price_history

import "fmt"

// InsertSQL returns the append statement, parameterized on
// (product_id, price, currency, recorded_at).
func InsertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
		TableName, ProductID, Price, Currency, RecordedAt,
	)
}

// SelectByProductSQL returns the history statement for one product, most
// recent first.
func SelectByProductSQL() string {
	return fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC",
		ID, ProductID, Price, Currency, RecordedAt,
		TableName, ProductID, RecordedAt, ID,
	)
}
