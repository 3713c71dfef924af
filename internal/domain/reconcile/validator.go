package reconcile

import "fmt"

// feeLedgerSuggestion is the fixed ledger classification for bank fees.
// The validator and the specialized processor must emit identical values.
func feeLedgerSuggestion() *LedgerSuggestion {
	return &LedgerSuggestion{
		Type:          "despesa_bancaria",
		DebitAccount:  "3.1.2.01.0005",
		CreditAccount: "1.1.1.01.0001",
		Nature:        "despesa_operacional",
	}
}

const feeRejectionReason = "bank fee with no corresponding fiscal document"

// Validate applies the profile tolerances plus category-specific accounting
// checks to the scorer output. Acceptability is decided solely by the total
// score against the minimum; divergences are recorded alongside and do not
// block acceptance.
func Validate(tx BankTransaction, candidate *FiscalDocument, info MatchingInfo, category Category, profile Profile) ValidationResult {
	if category == CategoryBankFee {
		return ValidationResult{
			Acceptable:      false,
			Reason:          feeRejectionReason,
			Checks:          map[string]bool{},
			SuggestedLedger: feeLedgerSuggestion(),
		}
	}

	checks := map[string]bool{}
	var divergences []Divergence

	if category == CategoryNetOfWithholding && candidate != nil && len(candidate.WithheldTaxes) > 0 {
		gross := candidate.TotalAmount
		var withheld float64
		for _, v := range candidate.WithheldTaxes {
			withheld += v
		}
		expectedNet := roundCurrency(gross - withheld)
		diff := currencyDiff(tx.Amount, expectedNet)

		if diff <= profile.ValueToleranceAbs {
			checks["withholding_calculated"] = true
			checks["net_amount_correct"] = true
		} else {
			divergences = append(divergences, Divergence{
				Kind:        "net_value",
				Description: fmt.Sprintf("net amount differs from gross minus withheld taxes by %.2f", diff),
				Severity:    SeverityHigh,
			})
		}
	}

	if info.DayDifference > profile.DateWindowDays {
		severity := SeverityLow
		if info.DayDifference > 30 {
			severity = SeverityMedium
		}
		divergences = append(divergences, Divergence{
			Kind:        "date",
			Description: fmt.Sprintf("%d days between document and payment", info.DayDifference),
			Severity:    severity,
		})
	}

	if info.ValueDifference > profile.ValueToleranceAbs {
		divergences = append(divergences, Divergence{
			Kind:        "value",
			Description: fmt.Sprintf("amount difference of %.2f", info.ValueDifference),
			Severity:    SeverityMedium,
		})
	}

	return ValidationResult{
		Acceptable:  info.TotalScore >= profile.MinimumScore,
		Checks:      checks,
		Divergences: divergences,
	}
}
