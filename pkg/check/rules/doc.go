// Package rules provides the built-in dataset quality checks.
//
// Checks register themselves on import:
//
//   - SC01: Schema Shape - column names must match the expected sequence in order
//   - DM01: Categorical Domain - distinct values must equal the expected label set
//   - GB01: Geographic Bounds - every coordinate pair must lie inside the bound box
//   - DS01: Distribution Similarity - categorical drift vs a reference dataset (KL)
//   - RC01: Row Count Bounds - row count inside an open interval
//   - NR01: Numeric Range - all values of a column inside a closed interval
package rules
