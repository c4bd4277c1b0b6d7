// Package validation declares the external document-validation capability.
// Schema checking itself (XSD, JSON Schema) is a collaborator concern; the
// core only calls it and degrades to warnings when it is unreachable.
package validation

import "fmt"

// Violation is one schema violation reported by the external validator.
type Violation struct {
	Path    string
	Message string
	Keyword string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validator validates a serialized DataCite document.
type Validator interface {
	Validate(document []byte) ([]Violation, error)
}

// Result is the outcome of a best-effort validation pass.
type Result struct {
	Violations []Violation
	// Warnings carries degradation notices: the validator could not run,
	// but the primary operation proceeds anyway.
	Warnings []string
}

// Check runs the validator and folds failures into warnings instead of
// errors, so exports and downloads never block on an unreachable schema
// service. A nil validator yields an empty result.
func Check(v Validator, document []byte) Result {
	if v == nil {
		return Result{}
	}
	violations, err := v.Validate(document)
	if err != nil {
		return Result{Warnings: []string{
			fmt.Sprintf("schema validation unavailable: %v", err),
		}}
	}
	return Result{Violations: violations}
}
