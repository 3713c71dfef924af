// Package reconcile implements the bank/fiscal reconciliation decision
// pipeline: classify the transaction type, score the candidate match,
// validate it against accounting tolerances, run category-specific
// processing, and synthesize an auditable result.
//
// Every stage is a pure function of its inputs and the matching Profile, so
// the pipeline is deterministic: identical input and identical Profile yield
// byte-identical output. No stage performs I/O.
//
// Example usage:
//
//	p := reconcile.NewPipeline(reconcile.DefaultProfile())
//	result := p.Run(reconcile.Request{
//		Transaction: tx,
//		Candidate:   &doc,
//	})
package reconcile

import "fmt"

// Pipeline threads a request through the five stages in fixed order. Any
// stage fault is caught and replaced with a safe fallback result - callers
// always receive a well-formed record, never a raw fault.
type Pipeline struct {
	defaults Profile
}

// NewPipeline creates a pipeline with the given default profile. The profile
// applies to every request that does not carry its own override.
func NewPipeline(defaults Profile) *Pipeline {
	return &Pipeline{defaults: defaults}
}

// Run executes the pipeline for one request and returns the terminal result.
func (p *Pipeline) Run(req Request) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = fallbackResult(fmt.Sprint(r))
		}
	}()

	profile := p.defaults
	if req.Profile != nil {
		profile = req.Profile.Merge(p.defaults)
	}

	category := Classify(req.Transaction.Description, req.CandidateCount())
	info := Score(req.Transaction, req.Candidate, category, profile)
	validation := Validate(req.Transaction, req.Candidate, info, category, profile)
	spec := ProcessSpecialized(req.Transaction, req.Candidate, req.Candidates, category)

	return Synthesize(req, category, info, validation, spec)
}

// fallbackResult is the fixed substitute emitted when a stage fails.
func fallbackResult(detail string) *Result {
	return &Result{
		OK: false,
		Details: ResultDetails{
			Reconciled:   false,
			Confidence:   0,
			Status:       StatusProcessingError,
			Divergences:  []Divergence{},
			Observations: []string{"internal error during processing"},
		},
		Confidence:       0,
		NeedsHumanReview: true,
		Error: &ErrorDetail{
			Stage:   "pipeline",
			Message: detail,
		},
		RuleVersion: RuleVersion,
	}
}
