package domain

import "time"

// Platform identifies the e-commerce site a record was scraped from.
type Platform string

const (
	PlatformJumia        Platform = "jumia"
	PlatformMasoko       Platform = "masoko"
	PlatformPhonePlace   Platform = "phoneplace"
	PlatformLaptopClinic Platform = "laptopclinic"
)

// Platforms is the fixed set of supported platforms.
var Platforms = []Platform{
	PlatformJumia,
	PlatformMasoko,
	PlatformPhonePlace,
	PlatformLaptopClinic,
}

// Valid reports whether p is a member of the supported platform set.
func (p Platform) Valid() bool {
	switch p {
	case PlatformJumia, PlatformMasoko, PlatformPhonePlace, PlatformLaptopClinic:
		return true
	}
	return false
}

// CandidateRecord is a raw scraped product observation as handed over by a
// scraper agent. It is transient: owned by the pipeline invocation that
// received it, and either persisted into durable form or discarded.
//
// Price and OriginalPrice are in the operating currency (KES unless tagged
// otherwise). A zero Price means the agent could not extract one.
type CandidateRecord struct {
	Platform    string `json:"platform"`
	ProductName string `json:"product_name"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`

	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Currency      string   `json:"currency,omitempty"`

	URL      string `json:"url"`
	ImageURL string `json:"image_url,omitempty"`

	Processor       string `json:"processor,omitempty"`
	RAM             string `json:"ram,omitempty"`
	Storage         string `json:"storage,omitempty"`
	ScreenSize      string `json:"screen_size,omitempty"`
	Graphics        string `json:"graphics,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty"`

	Condition    string `json:"condition,omitempty"`
	Availability string `json:"availability,omitempty"`

	// Specs carries whatever extra key/value attributes the agent extracted.
	// It is stored as a schema-less JSONB document and never shape-validated.
	Specs map[string]string `json:"specs,omitempty"`

	ScrapedAt time.Time `json:"scraped_at,omitempty"`
}

// DefaultCurrency is stamped onto records that arrive without a currency tag.
const DefaultCurrency = "KES"

// Inclusive price bounds for a plausible laptop listing, in KES.
const (
	MinPrice = 15000
	MaxPrice = 500000
)
