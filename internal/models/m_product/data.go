package m_product

import "time"

// Data represents a product row in the database.
type Data struct {
	ID              string            `db:"id"`
	Platform        string            `db:"platform"`
	ProductName     string            `db:"product_name"`
	Brand           string            `db:"brand"`
	Model           string            `db:"model"`
	Price           float64           `db:"price"`
	OriginalPrice   *float64          `db:"original_price"`
	Currency        string            `db:"currency"`
	URL             string            `db:"url"`
	ImageURL        string            `db:"image_url"`
	Processor       string            `db:"processor"`
	RAM             string            `db:"ram"`
	Storage         string            `db:"storage"`
	ScreenSize      string            `db:"screen_size"`
	Graphics        string            `db:"graphics"`
	OperatingSystem string            `db:"operating_system"`
	Condition       string            `db:"condition"`
	Availability    string            `db:"availability"`
	Specs           map[string]string `db:"specs"`
	ScrapedAt       time.Time         `db:"scraped_at"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}
