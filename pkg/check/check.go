// Package check provides data-driven dataset quality checks. Checks are
// defined alongside their parameters and registered for discovery, following
// the same patterns used for the config and CLI layers.
//
// The package defines the types used across the system. Check implementations
// live in the rules subpackage and the Runner orchestrates them.
package check

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

// =============================================================================
// Check Definitions
// =============================================================================

// Def is a data-driven check definition. Checks are stateless - all context
// comes via the Run function parameters.
type Def struct {
	ID          string  // Unique identifier, e.g., "SC01"
	Name        string  // Config-facing name, e.g., "schema_shape"
	Group       string  // Category, e.g., "schema", "bounds", "drift"
	Description string  // Human-readable description
	Run         RunFunc // The check function

	// NeedsReference marks checks with cross-dataset semantics. The runner
	// rejects them up front when no reference dataset was provided.
	NeedsReference bool

	// Halting marks checks whose failure invalidates the rest of the run.
	// Downstream checks assume schema correctness, so a schema failure stops
	// the suite even under the collect-all policy.
	Halting bool

	// ConfigKeys lists the option keys this check accepts.
	ConfigKeys []string
}

// RunFunc evaluates one check against a dataset. ref is nil unless the check
// declares NeedsReference. Checks are pure: they never mutate the dataset
// and never retry.
//
// A returned error means the check could not be evaluated (unknown column,
// type mismatch, undefined divergence) and is kept distinct from a clean
// fail outcome.
type RunFunc func(ds, ref *table.Table, opts map[string]any) (Outcome, error)

// =============================================================================
// Outcomes
// =============================================================================

// Outcome is the immutable result of one check invocation.
type Outcome struct {
	CheckID string         `json:"check_id"`
	Name    string         `json:"name"`
	Passed  bool           `json:"passed"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Pass builds a passing outcome for a check definition.
func Pass(def Def, message string, details map[string]any) Outcome {
	return Outcome{CheckID: def.ID, Name: def.Name, Passed: true, Message: message, Details: details}
}

// Fail builds a failing outcome for a check definition.
func Fail(def Def, message string, details map[string]any) Outcome {
	return Outcome{CheckID: def.ID, Name: def.Name, Passed: false, Message: message, Details: details}
}

// =============================================================================
// Options
// =============================================================================

// DecodeOptions decodes a check's option bag into a typed parameter struct.
// Fields absent from the bag keep whatever defaults the caller pre-set on
// out. Numeric types are converted weakly so YAML integers satisfy float
// fields. Unknown keys are an error: a misspelled option must surface as an
// evaluation failure, not silently fall back to the check's defaults.
func DecodeOptions(opts map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(opts)
}
