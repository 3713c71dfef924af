package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSpecialized_Withholding(t *testing.T) {
	doc := makeDoc(1000.00, "2025-07-29", "NF-e 789", "DEF SERVICOS")
	doc.WithheldTaxes = map[string]float64{
		"irrf":   15.00,
		"pis":    6.50,
		"cofins": 30.00,
		"csll":   10.00,
	}
	tx := makeTx(938.50, "2025-07-29", "PGTO LIQ NF 789")

	spec := ProcessSpecialized(tx, doc, nil, CategoryNetOfWithholding)

	require.NotNil(t, spec.Withholding)
	assert.Equal(t, 1000.00, spec.Withholding.GrossAmount)
	assert.Equal(t, 61.50, spec.Withholding.TotalWithheld)
	assert.Equal(t, 938.50, spec.Withholding.ExpectedNet)
	assert.Equal(t, doc.WithheldTaxes, spec.Withholding.Taxes)
	assert.Nil(t, spec.BatchTotals)
}

func TestProcessSpecialized_WithholdingWithoutTaxes(t *testing.T) {
	doc := makeDoc(1000.00, "2025-07-29", "NF-e 789", "DEF SERVICOS")
	tx := makeTx(1000.00, "2025-07-29", "PGTO LIQ NF 789")

	spec := ProcessSpecialized(tx, doc, nil, CategoryNetOfWithholding)
	assert.Nil(t, spec.Withholding)
}

func TestProcessSpecialized_BatchTotalization(t *testing.T) {
	tx := makeTx(302.00, "2025-07-29", "PGTO LOTE 3 NFS GHI TRANSPORTES")
	candidates := []FiscalDocument{
		{BatchDocument: "NF-e 101", BatchAmount: 100.00, CFOP: "1102"},
		{BatchDocument: "NF-e 102", BatchAmount: 120.00, CFOP: "1102"},
		{BatchDocument: "NF-e 103", BatchAmount: 80.00, CFOP: "1102"},
	}

	spec := ProcessSpecialized(tx, nil, candidates, CategoryBatch)

	require.NotNil(t, spec.BatchTotals)
	assert.Equal(t, 300.00, spec.BatchTotals.DocumentsTotal)
	assert.Equal(t, 302.00, spec.BatchTotals.TransactionAmount)
	assert.Equal(t, 2.00, spec.BatchTotals.Difference)
	assert.Equal(t, 3, spec.BatchTotals.DocumentCount)

	require.Len(t, spec.BatchDocuments, 3)
	assert.Equal(t, "LC_1102_20250729_001", spec.BatchDocuments[0].LedgerEntryID)
	assert.Equal(t, "LC_1102_20250729_002", spec.BatchDocuments[1].LedgerEntryID)
	assert.Equal(t, "LC_1102_20250729_003", spec.BatchDocuments[2].LedgerEntryID)
	assert.Equal(t, "NF-e 101", spec.BatchDocuments[0].Document)
}

func TestProcessSpecialized_BatchFallbacks(t *testing.T) {
	tx := makeTx(50.00, "2025-07-29", "PGTO LOTE NFS")
	candidates := []FiscalDocument{
		{BatchAmount: 50.00}, // no CFOP, no document label
	}

	spec := ProcessSpecialized(tx, nil, candidates, CategoryBatch)

	require.Len(t, spec.BatchDocuments, 1)
	assert.Equal(t, "LC_0000_20250729_001", spec.BatchDocuments[0].LedgerEntryID)
	assert.Equal(t, "NF-e 1", spec.BatchDocuments[0].Document)
}

func TestProcessSpecialized_BankFee(t *testing.T) {
	tx := makeTx(25.90, "2025-07-29", "TARIFA MANUTENCAO")

	spec := ProcessSpecialized(tx, nil, nil, CategoryBankFee)

	require.NotNil(t, spec.SuggestedLedger)
	// Must stay consistent with the validator's fee fallback
	assert.Equal(t, feeLedgerSuggestion(), spec.SuggestedLedger)
}

func TestProcessSpecialized_DefaultCategoriesEmpty(t *testing.T) {
	tx := makeTx(100, "2025-07-29", "PGTO NF 123")
	doc := makeDoc(100, "2025-07-29", "NF-e 123", "ABC")

	for _, category := range []Category{CategoryNormal, CategoryInstallment} {
		spec := ProcessSpecialized(tx, doc, nil, category)
		assert.Equal(t, SpecializedResult{}, spec, "category %s", category)
	}
}
