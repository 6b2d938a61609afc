package m_product

// Table name constant
const TableName = "products"

// Field name constants for type-safe database access
const (
	ID              = "id"
	Platform        = "platform"
	ProductName     = "product_name"
	Brand           = "brand"
	Model           = "model"
	Price           = "price"
	OriginalPrice   = "original_price"
	Currency        = "currency"
	URL             = "url"
	ImageURL        = "image_url"
	Processor       = "processor"
	RAM             = "ram"
	Storage         = "storage"
	ScreenSize      = "screen_size"
	Graphics        = "graphics"
	OperatingSystem = "operating_system"
	Condition       = "condition"
	Availability    = "availability"
	Specs           = "specs"
	ScrapedAt       = "scraped_at"
	CreatedAt       = "created_at"
	UpdatedAt       = "updated_at"
)

// UniqueConstraint names the (platform, url) uniqueness constraint. It is the
// authoritative duplicate guard at the store level.
const UniqueConstraint = "products_platform_url_key"
