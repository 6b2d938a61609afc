package m_price_history

// Table name constant
const TableName = "price_history"

// Field name constants for type-safe database access
const (
	ID         = "id"
	ProductID  = "product_id"
	Price      = "price"
	Currency   = "currency"
	RecordedAt = "recorded_at"
)
