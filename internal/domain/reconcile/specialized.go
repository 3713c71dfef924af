package reconcile

import (
	"fmt"
	"strings"
)

// ProcessSpecialized performs the category-specific derived computation. It
// runs regardless of the validator verdict so that derived data is captured
// even for matches that will be rejected.
func ProcessSpecialized(tx BankTransaction, candidate *FiscalDocument, candidates []FiscalDocument, category Category) SpecializedResult {
	switch category {
	case CategoryNetOfWithholding:
		return SpecializedResult{Withholding: withholdingBreakdown(candidate)}
	case CategoryBatch:
		return batchTotalization(tx, candidates)
	case CategoryBankFee:
		return SpecializedResult{SuggestedLedger: feeLedgerSuggestion()}
	default:
		return SpecializedResult{}
	}
}

func withholdingBreakdown(candidate *FiscalDocument) *WithholdingBreakdown {
	if candidate == nil || len(candidate.WithheldTaxes) == 0 {
		return nil
	}

	gross := candidate.TotalAmount
	var withheld float64
	taxes := make(map[string]float64, len(candidate.WithheldTaxes))
	for name, amount := range candidate.WithheldTaxes {
		withheld += amount
		taxes[name] = amount
	}
	withheld = roundCurrency(withheld)

	return &WithholdingBreakdown{
		GrossAmount:   roundCurrency(gross),
		TotalWithheld: withheld,
		ExpectedNet:   roundCurrency(gross - withheld),
		Taxes:         taxes,
	}
}

func batchTotalization(tx BankTransaction, candidates []FiscalDocument) SpecializedResult {
	if len(candidates) == 0 {
		return SpecializedResult{}
	}

	dateCompact := compactDate(tx.Date)

	var total float64
	docs := make([]BatchDocument, 0, len(candidates))
	for i, c := range candidates {
		total += c.BatchAmount

		document := c.BatchDocument
		if document == "" {
			document = fmt.Sprintf("NF-e %d", i+1)
		}

		docs = append(docs, BatchDocument{
			LedgerEntryID: ledgerEntryID(c.CFOP, dateCompact, i+1),
			Document:      document,
			Amount:        roundCurrency(c.BatchAmount),
		})
	}
	total = roundCurrency(total)

	return SpecializedResult{
		BatchDocuments: docs,
		BatchTotals: &BatchTotals{
			DocumentsTotal:    total,
			TransactionAmount: roundCurrency(tx.Amount),
			Difference:        currencyDiff(total, tx.Amount),
			DocumentCount:     len(candidates),
		},
	}
}

// ledgerEntryID builds the deterministic accounting entry identifier
// LC_<cfop>_<yyyymmdd>_<sequence>.
func ledgerEntryID(cfop, dateCompact string, sequence int) string {
	if cfop == "" {
		cfop = "0000"
	}
	return fmt.Sprintf("LC_%s_%s_%03d", cfop, dateCompact, sequence)
}

// compactDate strips the separators from an ISO date (2025-07-29 → 20250729).
func compactDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}
