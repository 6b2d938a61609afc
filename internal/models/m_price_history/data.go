package m_price_history

import "time"

// Data represents a price history row in the database. Rows are append-only:
// one per successful persistence of the referenced product, including the
// first.
type Data struct {
	ID         int64     `db:"id"`
	ProductID  string    `db:"product_id"`
	Price      float64   `db:"price"`
	Currency   string    `db:"currency"`
	RecordedAt time.Time `db:"recorded_at"`
}
