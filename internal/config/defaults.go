package config

import "github.com/stayflow-labs/dataguard/pkg/check"

// Default configuration values.
const (
	DefaultEngine   = "csv"
	DefaultPolicy   = "stop-on-first"
	DefaultOutput   = "table"
	DefaultMinPrice = 10
	DefaultMaxPrice = 350
)

// ExpectedColumns is the contract column sequence of the listings dataset.
// Order is significant.
var ExpectedColumns = []string{
	"id",
	"name",
	"host_id",
	"host_name",
	"neighbourhood_group",
	"neighbourhood",
	"latitude",
	"longitude",
	"room_type",
	"price",
	"minimum_nights",
	"number_of_reviews",
	"last_review",
	"reviews_per_month",
	"calculated_host_listings_count",
	"availability_365",
}

// Boroughs is the expected label set of the neighbourhood_group column.
var Boroughs = []string{"Bronx", "Brooklyn", "Manhattan", "Queens", "Staten Island"}

// DefaultSchema declares the column types of the listings dataset.
func DefaultSchema() []SchemaField {
	return []SchemaField{
		{Name: "id", Type: "int"},
		{Name: "name", Type: "string"},
		{Name: "host_id", Type: "int"},
		{Name: "host_name", Type: "string"},
		{Name: "neighbourhood_group", Type: "categorical"},
		{Name: "neighbourhood", Type: "categorical"},
		{Name: "latitude", Type: "float"},
		{Name: "longitude", Type: "float"},
		{Name: "room_type", Type: "categorical"},
		{Name: "price", Type: "float"},
		{Name: "minimum_nights", Type: "int"},
		{Name: "number_of_reviews", Type: "int"},
		{Name: "last_review", Type: "timestamp"},
		{Name: "reviews_per_month", Type: "float"},
		{Name: "calculated_host_listings_count", Type: "int"},
		{Name: "availability_365", Type: "int"},
	}
}

// DefaultChecks returns the ordered default check list: the full data
// contract a cleaned listings dataset must satisfy before downstream use.
func DefaultChecks() []check.Config {
	return []check.Config{
		{Name: "schema_shape", Options: map[string]any{"expected_columns": ExpectedColumns}},
		{Name: "categorical_domain", Options: map[string]any{
			"column":          "neighbourhood_group",
			"expected_values": Boroughs,
		}},
		{Name: "geographic_bounds", Options: map[string]any{
			"lon_column": "longitude",
			"lat_column": "latitude",
		}},
		{Name: "distribution_similarity", Options: map[string]any{
			"column":       "neighbourhood_group",
			"kl_threshold": 0.2,
		}},
		{Name: "row_count_bounds", Options: map[string]any{}},
		{Name: "numeric_range", Options: map[string]any{
			"column": "price",
			"min":    DefaultMinPrice,
			"max":    DefaultMaxPrice,
		}},
	}
}

// ApplyDefaults applies default values to a Config.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	if c.Policy == "" {
		c.Policy = DefaultPolicy
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if len(c.Schema) == 0 {
		c.Schema = DefaultSchema()
	}
	if len(c.Checks) == 0 {
		c.Checks = DefaultChecks()
	}
	if c.Cleaning.MinPrice == 0 && c.Cleaning.MaxPrice == 0 {
		c.Cleaning.MinPrice = DefaultMinPrice
		c.Cleaning.MaxPrice = DefaultMaxPrice
	}
	if c.Cleaning.PriceColumn == "" {
		c.Cleaning.PriceColumn = "price"
	}
	if c.Cleaning.DateColumn == "" {
		c.Cleaning.DateColumn = "last_review"
	}
}
