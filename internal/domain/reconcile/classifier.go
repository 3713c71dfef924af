package reconcile

import (
	"regexp"
	"strings"
)

// Keyword markers inspected by the classifier. Descriptions come from
// Brazilian bank statements, so the Portuguese markers are carried alongside
// their English equivalents.
var (
	feeKeywords = []string{
		"TARIFA", "TAXA", "MANUTENCAO", "ANUIDADE",
		"FEE", "MAINTENANCE", "ANNUAL CHARGE",
	}
	netKeywords = []string{
		"LIQ", "LIQUIDO",
		"NET PAYMENT", "NET OF TAX",
	}
	batchKeywords     = []string{"NFS", "NOTAS", "INVOICES"}
	batchMarkers      = []string{"LOTE", "BATCH"}
	installmentRe     = regexp.MustCompile(`\d+\s*/\s*\d+`)
	installmentMarker = []string{"PARC", "INSTALLMENT"}
)

// Classify assigns the transaction category from the description text and the
// number of fiscal candidates supplied. First rule wins; the function is
// total and never fails.
func Classify(description string, candidateCount int) Category {
	if candidateCount > 1 {
		return CategoryBatch
	}

	desc := strings.ToUpper(description)

	if containsAny(desc, feeKeywords) {
		return CategoryBankFee
	}
	if containsAny(desc, installmentMarker) && installmentRe.MatchString(desc) {
		return CategoryInstallment
	}
	if containsAny(desc, netKeywords) {
		return CategoryNetOfWithholding
	}
	if containsAny(desc, batchMarkers) && containsAny(desc, batchKeywords) {
		return CategoryBatch
	}
	return CategoryNormal
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
