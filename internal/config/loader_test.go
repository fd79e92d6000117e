package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayflow-labs/dataguard/pkg/check"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Explicit nonexistent-free temp dir keeps a stray dataguard.yaml in the
	// working directory from leaking into the test.
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Engine)
	assert.Equal(t, "stop-on-first", cfg.Policy)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, float64(DefaultMinPrice), cfg.Cleaning.MinPrice)
	assert.Equal(t, float64(DefaultMaxPrice), cfg.Cleaning.MaxPrice)
	assert.Len(t, cfg.Schema, len(ExpectedColumns))
	assert.Len(t, cfg.Checks, 6)
	assert.Equal(t, "schema_shape", cfg.Checks[0].Name)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
dataset: data/listings.csv
reference: data/baseline.csv
engine: duckdb
policy: collect-all
cleaning:
  min_price: 25
  max_price: 200
checks:
  - name: row_count_bounds
    options:
      min: 100
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "data/listings.csv", cfg.Dataset)
	assert.Equal(t, "data/baseline.csv", cfg.Reference)
	assert.Equal(t, "duckdb", cfg.Engine)
	assert.Equal(t, "collect-all", cfg.Policy)
	assert.Equal(t, 25.0, cfg.Cleaning.MinPrice)
	assert.Equal(t, 200.0, cfg.Cleaning.MaxPrice)
	require.Len(t, cfg.Checks, 1)
	assert.Equal(t, "row_count_bounds", cfg.Checks[0].Name)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "engine: csv\ndataset: from-file.csv\n")
	t.Setenv("DATAGUARD_ENGINE", "duckdb")
	t.Setenv("DATAGUARD_DATASET", "from-env.csv")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "duckdb", cfg.Engine)
	assert.Equal(t, "from-env.csv", cfg.Dataset)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DATAGUARD_POLICY", "collect-all")
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("policy", "stop-on-first", "")
	flags.String("engine", "csv", "")
	require.NoError(t, flags.Parse([]string{"--policy=stop-on-first"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	// --policy was set explicitly, --engine was not; only the former wins.
	assert.Equal(t, "stop-on-first", cfg.Policy)
	assert.Equal(t, "csv", cfg.Engine)
}

func TestLoadUnsetFlagsIgnored(t *testing.T) {
	path := writeConfig(t, "engine: duckdb\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("engine", "csv", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", cfg.Engine)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad engine", "engine: sqlite\n", "unknown engine"},
		{"bad policy", "policy: keep-going\n", "unknown policy"},
		{"bad output", "output: xml\n", "unknown output format"},
		{"inverted price bounds", "cleaning:\n  min_price: 400\n  max_price: 100\n", "min_price"},
		{"malformed yaml", "engine: [\n", "config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			_, err := Load(path, nil)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTableSchema(t *testing.T) {
	cfg := &Config{Schema: []SchemaField{
		{Name: "id", Type: "int"},
		{Name: "price", Type: "float"},
		{Name: "room_type", Type: "categorical"},
	}}

	schema, err := cfg.TableSchema()
	require.NoError(t, err)
	assert.Equal(t, table.Schema{
		{Name: "id", Type: table.TypeInt},
		{Name: "price", Type: table.TypeFloat},
		{Name: "room_type", Type: table.TypeCategorical},
	}, schema)

	cfg.Schema = append(cfg.Schema, SchemaField{Name: "x", Type: "decimal"})
	_, err = cfg.TableSchema()
	assert.ErrorContains(t, err, "decimal")
}

func TestRunnerOptions(t *testing.T) {
	cfg := &Config{Policy: "collect-all", Parallel: true}
	opts, err := cfg.RunnerOptions()
	require.NoError(t, err)
	assert.Equal(t, check.CollectAll, opts.Policy)
	assert.True(t, opts.Parallel)
}

func TestDefaultChecksMatchRegistryNames(t *testing.T) {
	want := []string{
		"schema_shape",
		"categorical_domain",
		"geographic_bounds",
		"distribution_similarity",
		"row_count_bounds",
		"numeric_range",
	}
	got := make([]string, len(DefaultChecks()))
	for i, c := range DefaultChecks() {
		got[i] = c.Name
	}
	assert.Equal(t, want, got)
}
