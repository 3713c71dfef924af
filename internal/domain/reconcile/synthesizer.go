package reconcile

import "fmt"

// BatchAmountTolerance is the maximum gap, in currency units, between the
// candidate sum and the transaction amount for a batch to reconcile. It is
// deliberately a named constant separate from Profile.ValueToleranceAbs:
// batch settlement runs on its own accounting rule, not the per-document
// matching tolerance.
const BatchAmountTolerance = 50.0

// Batch confidence levels are fixed by the rule set.
const (
	batchMatchConfidence    = 0.94
	batchMismatchConfidence = 0.3
)

// Synthesize combines the outputs of every prior stage into the terminal
// reconciliation record.
func Synthesize(req Request, category Category, info MatchingInfo, validation ValidationResult, spec SpecializedResult) *Result {
	switch {
	case category == CategoryBankFee:
		return synthesizeFee(info, spec)
	case category == CategoryBatch && spec.BatchTotals != nil:
		return synthesizeBatch(req, spec)
	case req.Candidate == nil:
		return synthesizeNoCandidate()
	default:
		return synthesizeSingle(req, category, info, validation, spec)
	}
}

func synthesizeFee(info MatchingInfo, spec SpecializedResult) *Result {
	return &Result{
		OK: false,
		Details: ResultDetails{
			Reconciled:         false,
			IdentifiedCategory: CategoryBankFee,
			Confidence:         info.TotalScore,
			Status:             StatusNotReconcilable,
			Divergences:        []Divergence{},
			Observations: []string{
				"transaction identified as a bank fee with no corresponding fiscal document",
				"suggested direct posting as a banking expense",
				"no fiscal document reconciliation required",
			},
			SuggestedLedger: spec.SuggestedLedger,
			Metadata: &MatchMetadata{
				PrimaryCriterion: CriterionFeeExclusion,
				MatchedKeywords:  info.MatchedKeywords,
				AutoCategory:     CategoryBankFee,
			},
		},
		Confidence:       info.TotalScore,
		NeedsHumanReview: false,
		FailureReason:    feeRejectionReason,
		RuleVersion:      RuleVersion,
	}
}

func synthesizeBatch(req Request, spec SpecializedResult) *Result {
	totals := spec.BatchTotals
	reconciled := totals.Difference <= BatchAmountTolerance

	status := StatusReconciledBatch
	confidence := batchMatchConfidence
	sumNote := "candidate amounts sum to the transaction amount"
	if !reconciled {
		status = StatusBatchMismatch
		confidence = batchMismatchConfidence
		sumNote = "candidate amounts diverge from the transaction amount"
	}

	return &Result{
		OK: reconciled,
		Details: ResultDetails{
			Reconciled:         reconciled,
			ReconciliationType: string(CategoryBatch),
			Confidence:         confidence,
			Status:             status,
			Divergences:        []Divergence{},
			Observations: []string{
				fmt.Sprintf("batch payment covering %d fiscal documents", totals.DocumentCount),
				sumNote,
			},
			BatchDocuments: spec.BatchDocuments,
			AccountingChecks: map[string]bool{
				"amount_sum_correct": reconciled,
				"single_supplier":    singleSupplier(req.Candidates),
				"homogeneous_cfop":   homogeneousCFOP(req.Candidates),
			},
			BatchTotals: totals,
		},
		Confidence:       confidence,
		NeedsHumanReview: !reconciled,
		RuleVersion:      RuleVersion,
	}
}

func synthesizeNoCandidate() *Result {
	return &Result{
		OK: false,
		Details: ResultDetails{
			Reconciled:   false,
			Confidence:   0,
			Status:       StatusNoClassification,
			Divergences:  []Divergence{},
			Observations: []string{},
		},
		Confidence:       0,
		NeedsHumanReview: true,
		RuleVersion:      RuleVersion,
	}
}

func synthesizeSingle(req Request, category Category, info MatchingInfo, validation ValidationResult, spec SpecializedResult) *Result {
	reconciled := validation.Acceptable
	divergences := validation.Divergences
	if divergences == nil {
		divergences = []Divergence{}
	}

	var status Status
	switch {
	case !reconciled:
		status = StatusNotReconciled
	case len(divergences) > 0:
		status = StatusReconciledWithExceptions
	case category == CategoryNetOfWithholding:
		status = StatusReconciledWithWithholding
	case category == CategoryInstallment:
		status = StatusReconciledPartial
	default:
		status = StatusReconciledAutomatic
	}

	observations := buildObservations(category, info, spec)
	confidence := roundScore(info.TotalScore)

	details := ResultDetails{
		Reconciled:     reconciled,
		SourceDocument: req.Candidate.DocumentNumber,
		SourceCFOP:     req.Candidate.CFOP,
		Confidence:     confidence,
		Status:         status,
		Divergences:    divergences,
		Observations:   observations,
		Metadata: &MatchMetadata{
			PrimaryCriterion: primaryCriterion(category, info),
			MatchedKeywords:  info.MatchedKeywords,
			ValueDifference:  info.ValueDifference,
			DayDifference:    info.DayDifference,
		},
	}

	if reconciled {
		dateCompact := compactDate(req.Transaction.Date)
		details.LedgerEntryID = ledgerEntryID(req.Candidate.CFOP, dateCompact, 1)
	}

	if category == CategoryNetOfWithholding && spec.Withholding != nil {
		details.ReconciliationType = string(CategoryNetOfWithholding)
		details.Withholding = &WithholdingSettlement{
			GrossAmount:   spec.Withholding.GrossAmount,
			TotalWithheld: spec.Withholding.TotalWithheld,
			ExpectedNet:   spec.Withholding.ExpectedNet,
			AmountPaid:    roundCurrency(req.Transaction.Amount),
			Difference:    currencyDiff(req.Transaction.Amount, spec.Withholding.ExpectedNet),
		}
	}

	return &Result{
		OK:               reconciled,
		Details:          details,
		Confidence:       confidence,
		NeedsHumanReview: !reconciled,
		RuleVersion:      RuleVersion,
	}
}

// buildObservations appends the deterministic advisory notes per category.
// Notes are informational only; nothing downstream branches on them.
func buildObservations(category Category, info MatchingInfo, spec SpecializedResult) []string {
	observations := []string{}

	switch category {
	case CategoryNetOfWithholding:
		if spec.Withholding != nil {
			observations = append(observations,
				"net payment with tax withholding applied",
				fmt.Sprintf("total withheld taxes: %.2f", spec.Withholding.TotalWithheld),
			)
		}
	case CategoryInstallment:
		observations = append(observations, "partial reconciliation - installment payment identified")
	}

	if info.DayDifference > 0 {
		observations = append(observations,
			fmt.Sprintf("%d days between document and payment", info.DayDifference))
	}
	if info.ValueDifference == 0 {
		observations = append(observations,
			"exact amount match between bank transaction and fiscal classification")
	}

	return observations
}

// primaryCriterion derives the audit tag by category precedence.
func primaryCriterion(category Category, info MatchingInfo) string {
	switch category {
	case CategoryBankFee:
		return CriterionFeeExclusion
	case CategoryNetOfWithholding:
		return CriterionNetValueWithholding
	case CategoryInstallment:
		return CriterionSequentialInstallment
	case CategoryBatch:
		return CriterionBatchSupplier
	}
	if info.ValueDifference == 0 {
		return CriterionExactValue
	}
	if len(info.MatchedKeywords) > 0 {
		return CriterionDocumentNumber
	}
	return CriterionFuzzyMatching
}

func singleSupplier(candidates []FiscalDocument) bool {
	seen := ""
	for _, c := range candidates {
		if c.PartnerName == "" {
			continue
		}
		if seen == "" {
			seen = c.PartnerName
			continue
		}
		if c.PartnerName != seen {
			return false
		}
	}
	return true
}

func homogeneousCFOP(candidates []FiscalDocument) bool {
	seen := ""
	for _, c := range candidates {
		if c.CFOP == "" {
			continue
		}
		if seen == "" {
			seen = c.CFOP
			continue
		}
		if c.CFOP != seen {
			return false
		}
	}
	return true
}
