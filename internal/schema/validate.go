// Package schema checks structural validity of raw inputs and the
// internal consistency of validation results.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/dshills/deckcritic/internal/review"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Join renders errors one per line.
func Join(errs []ValidationError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// RequireKeys reports each key absent from obj, or present as JSON null.
func RequireKeys(obj map[string]json.RawMessage, prefix string, keys ...string) []ValidationError {
	var errs []ValidationError
	for _, k := range keys {
		v, ok := obj[k]
		if !ok || string(v) == "null" {
			errs = append(errs, ValidationError{joinPath(prefix, k), "required"})
		}
	}
	return errs
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// ValidateResult checks a Result for internal consistency: dimension set,
// score and weight ranges, weight sum, and the overall score formula.
func ValidateResult(r *review.Result) []ValidationError {
	var errs []ValidationError

	if !r.Mode.Valid() {
		errs = append(errs, ValidationError{"mode", fmt.Sprintf("invalid mode: %q", r.Mode)})
	}
	if r.PassThreshold < 0 || r.PassThreshold > 100 {
		errs = append(errs, ValidationError{"pass_threshold", fmt.Sprintf("must be within [0,100], got %d", r.PassThreshold)})
	}
	if r.OverallScore < 0 || r.OverallScore > 100 {
		errs = append(errs, ValidationError{"overall_score", fmt.Sprintf("must be within [0,100], got %d", r.OverallScore)})
	}

	want := review.Dimensions()
	if len(r.Dimensions) != len(want) {
		errs = append(errs, ValidationError{"dimension_scores", fmt.Sprintf("expected %d dimensions, got %d", len(want), len(r.Dimensions))})
	}
	seen := make(map[review.Dimension]bool)
	for i, d := range r.Dimensions {
		prefix := fmt.Sprintf("dimension_scores[%d]", i)
		if !d.Dimension.Valid() {
			errs = append(errs, ValidationError{prefix + ".dimension", fmt.Sprintf("invalid: %q", d.Dimension)})
		} else if seen[d.Dimension] {
			errs = append(errs, ValidationError{prefix + ".dimension", fmt.Sprintf("duplicate: %q", d.Dimension)})
		}
		seen[d.Dimension] = true
		if d.Score < 0 || d.Score > 100 {
			errs = append(errs, ValidationError{prefix + ".score", fmt.Sprintf("must be within [0,100], got %d", d.Score)})
		}
		if d.Weight < 0 || d.Weight > 1 || math.IsNaN(d.Weight) {
			errs = append(errs, ValidationError{prefix + ".weight", fmt.Sprintf("must be within [0,1], got %f", d.Weight)})
		}
		if r.Mode == review.ModeRulesOnly && d.Dimension.Qualitative() && (d.Score != 0 || d.Weight != 0) {
			errs = append(errs, ValidationError{prefix, "qualitative dimension must be zero in rules_only mode"})
		}
	}

	if !review.WeightsBalanced(r.Dimensions) {
		errs = append(errs, ValidationError{"dimension_scores", fmt.Sprintf("weights sum to %.3f, want 1.0", review.WeightSum(r.Dimensions))})
	}
	if expected := review.ComputeOverall(r.Dimensions); r.OverallScore != expected {
		errs = append(errs, ValidationError{"overall_score", fmt.Sprintf("score %d does not match computed %d", r.OverallScore, expected)})
	}

	for i, s := range r.Slides {
		if s.Score < 0 || s.Score > 100 {
			errs = append(errs, ValidationError{fmt.Sprintf("slide_scores[%d].score", i), fmt.Sprintf("must be within [0,100], got %d", s.Score)})
		}
	}
	return errs
}
