package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayflow-labs/dataguard/pkg/check"
)

// runCommand executes the root command with the given args and returns
// captured stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// checkConfig writes a config with a two-check contract scoped to a small
// test dataset.
func checkConfig(t *testing.T, dir, dataset string) string {
	return writeFile(t, dir, "dataguard.yaml", `
dataset: `+dataset+`
schema:
  - {name: id, type: int}
  - {name: price, type: float}
checks:
  - name: row_count_bounds
    options: {min: 1, max: 100}
  - name: numeric_range
    options: {column: price, min: 10, max: 350}
`)
}

func TestCheckCommandPasses(t *testing.T) {
	dir := t.TempDir()
	dataset := writeFile(t, dir, "listings.csv", "id,price\n1,100\n2,250\n")
	cfg := checkConfig(t, dir, dataset)

	out, err := runCommand(t, "check", "--config", cfg, "-o", "json")
	require.NoError(t, err)

	var report check.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Passed)
	assert.Len(t, report.Results, 2)
}

func TestCheckCommandFailsNonZero(t *testing.T) {
	dir := t.TempDir()
	dataset := writeFile(t, dir, "listings.csv", "id,price\n1,100\n2,9999\n")
	cfg := checkConfig(t, dir, dataset)

	out, err := runCommand(t, "check", "--config", cfg)
	assert.ErrorContains(t, err, "validation failed: 1 of 2 checks failed")
	assert.Contains(t, out, "FAIL")
}

func TestCheckCommandDatasetArgOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "configured.csv", "id,price\n1,9999\n")
	good := writeFile(t, dir, "explicit.csv", "id,price\n1,100\n2,200\n")
	cfg := checkConfig(t, dir, filepath.Join(dir, "configured.csv"))

	_, err := runCommand(t, "check", good, "--config", cfg)
	assert.NoError(t, err)
}

func TestCheckCommandQueryRequiresDuckDB(t *testing.T) {
	dir := t.TempDir()
	dataset := writeFile(t, dir, "listings.csv", "id,price\n1,100\n")
	cfg := checkConfig(t, dir, dataset)

	_, err := runCommand(t, "check", "--config", cfg,
		"--query", "SELECT * FROM listings")
	assert.ErrorContains(t, err, "--query requires --engine duckdb")
}

func TestCheckCommandMissingDataset(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "dataguard.yaml", "")

	_, err := runCommand(t, "check", "--config", cfg)
	assert.ErrorContains(t, err, "no dataset")
}

func TestCleanCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "listings.csv",
		"id,price,last_review,longitude,latitude\n"+
			"1,100,2019-05-21,-73.97,40.75\n"+
			"2,5,2019-01-01,-73.97,40.75\n"+
			"3,150,2019-01-01,-80.00,40.75\n")
	cfg := writeFile(t, dir, "dataguard.yaml", `
schema:
  - {name: id, type: int}
  - {name: price, type: float}
  - {name: last_review, type: string}
  - {name: longitude, type: float}
  - {name: latitude, type: float}
`)
	outPath := filepath.Join(dir, "clean_sample.csv")

	out, err := runCommand(t, "clean", input, "--config", cfg, "--output", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleaned 3 rows to 1 (1 price outliers, 1 out of bounds)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2019-05-21")
	assert.NotContains(t, string(data), "-80.00")
}

func TestCleanCommandInvertedBounds(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "listings.csv", "id\n1\n")
	cfg := writeFile(t, dir, "dataguard.yaml", "")

	_, err := runCommand(t, "clean", input, "--config", cfg,
		"--output", filepath.Join(dir, "out.csv"),
		"--min-price", "500", "--max-price", "100")
	assert.ErrorContains(t, err, "min price 500 is greater than max price 100")
}

func TestRulesCommand(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "dataguard.yaml", "")

	out, err := runCommand(t, "rules", "--config", cfg)
	require.NoError(t, err)
	for _, id := range []string{"SC01", "DM01", "GB01", "DS01", "RC01", "NR01"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "distribution_similarity")
}

func TestVersionCommand(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "dataguard.yaml", "")

	out, err := runCommand(t, "version", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "dataguard "+Version)
}
