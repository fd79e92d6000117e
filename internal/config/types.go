// Package config provides configuration types and loading for dataguard.
// This package is decoupled from CLI concerns so the pipeline can be driven
// programmatically with the same config shape.
package config

import (
	"fmt"

	"github.com/stayflow-labs/dataguard/pkg/check"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

// Config holds the full pipeline configuration.
type Config struct {
	// Dataset is the path to the dataset under validation.
	Dataset string `koanf:"dataset"`
	// Reference is the path to the known-good dataset used by drift checks.
	Reference string `koanf:"reference"`

	// Engine selects the dataset loading path: csv or duckdb.
	Engine string `koanf:"engine"`

	// Policy selects the runner continuation policy:
	// stop-on-first or collect-all.
	Policy string `koanf:"policy"`
	// Parallel runs checks concurrently under collect-all.
	Parallel bool `koanf:"parallel"`

	Verbose bool   `koanf:"verbose"`
	Output  string `koanf:"output"` // table or json

	// Schema declares column types for the loader, matched by name.
	Schema []SchemaField `koanf:"schema"`
	// Checks is the ordered check list. Empty means the default contract.
	Checks []check.Config `koanf:"checks"`

	Cleaning CleaningConfig `koanf:"cleaning"`
}

// SchemaField declares the type of one column for the loader.
type SchemaField struct {
	Name string `koanf:"name"`
	Type string `koanf:"type"`
}

// CleaningConfig holds the cleaning stage parameters.
type CleaningConfig struct {
	MinPrice    float64 `koanf:"min_price"`
	MaxPrice    float64 `koanf:"max_price"`
	PriceColumn string  `koanf:"price_column"`
	DateColumn  string  `koanf:"date_column"`
	Output      string  `koanf:"output"`
}

// TableSchema converts the declared schema into the loader's typed form.
// Unknown type names fail fast rather than degrading to string.
func (c *Config) TableSchema() (table.Schema, error) {
	schema := make(table.Schema, 0, len(c.Schema))
	for _, f := range c.Schema {
		typ, ok := table.ParseType(f.Type)
		if !ok {
			return nil, fmt.Errorf("schema field %q has unknown type %q", f.Name, f.Type)
		}
		schema = append(schema, table.Field{Name: f.Name, Type: typ})
	}
	return schema, nil
}

// RunnerOptions converts the configured policy into runner options.
func (c *Config) RunnerOptions() (check.RunnerOptions, error) {
	policy, ok := check.ParsePolicy(c.Policy)
	if !ok {
		return check.RunnerOptions{}, fmt.Errorf("unknown policy %q", c.Policy)
	}
	return check.RunnerOptions{Policy: policy, Parallel: c.Parallel}, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Engine != "csv" && c.Engine != "duckdb" {
		return fmt.Errorf("unknown engine %q (want csv or duckdb)", c.Engine)
	}
	if _, ok := check.ParsePolicy(c.Policy); !ok {
		return fmt.Errorf("unknown policy %q", c.Policy)
	}
	if c.Output != "table" && c.Output != "json" {
		return fmt.Errorf("unknown output format %q (want table or json)", c.Output)
	}
	if c.Cleaning.MinPrice > c.Cleaning.MaxPrice {
		return fmt.Errorf("cleaning min_price %g is greater than max_price %g", c.Cleaning.MinPrice, c.Cleaning.MaxPrice)
	}
	return nil
}
