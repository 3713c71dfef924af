package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTx(amount float64, date, description string) BankTransaction {
	return BankTransaction{
		Date:        date,
		Amount:      amount,
		Description: description,
		Direction:   "Débito",
		Account:     "341-12345-6",
		BankCode:    "341",
	}
}

func makeDoc(amount float64, date, number, partner string) *FiscalDocument {
	return &FiscalDocument{
		DocumentNumber: number,
		CFOP:           "1102",
		DocumentDate:   date,
		TotalAmount:    amount,
		PartnerName:    partner,
	}
}

func TestScore_NoCandidate(t *testing.T) {
	info := Score(makeTx(100, "2025-07-29", "PGTO NF 123"), nil, CategoryNormal, DefaultProfile())

	assert.Equal(t, 0.0, info.TotalScore)
	assert.Empty(t, info.MatchedKeywords)
	assert.Equal(t, 0.0, info.ValueDifference)
	assert.Equal(t, 0, info.DayDifference)
}

func TestScore_BankFeeShortCircuit(t *testing.T) {
	doc := makeDoc(100, "2025-07-29", "NF-e 1", "ABC")
	info := Score(makeTx(25, "2025-07-29", "TARIFA MANUTENCAO"), doc, CategoryBankFee, DefaultProfile())

	assert.Equal(t, feeConfidence, info.TotalScore)
	assert.Equal(t, CriterionScores{}, info.Scores)
}

func TestScore_PerfectMatch(t *testing.T) {
	tx := makeTx(1000.00, "2025-07-29", "PGTO NF 4521 ABC COMERCIO LTDA")
	doc := makeDoc(1000.00, "2025-07-29", "NF-e 4521", "ABC COMERCIO LTDA")

	info := Score(tx, doc, CategoryNormal, DefaultProfile())

	assert.Equal(t, 1.0, info.Scores.Value)
	assert.Equal(t, 1.0, info.Scores.Date)
	assert.Equal(t, 0.0, info.ValueDifference)
	assert.Equal(t, 0, info.DayDifference)
	assert.Contains(t, info.MatchedKeywords, "4521")
	assert.GreaterOrEqual(t, info.TotalScore, DefaultProfile().MinimumScore)
}

func TestScoreValue_EqualAmountsAlwaysOne(t *testing.T) {
	// Exact equality scores 1.0 regardless of tolerance settings
	profile := DefaultProfile()
	profile.ValueToleranceAbs = 0
	profile.ValueTolerancePct = 0

	score, diff := scoreValue(1234.56, 1234.56, profile)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, 0.0, diff)
}

func TestScoreValue_BothZero(t *testing.T) {
	score, _ := scoreValue(0, 0, DefaultProfile())
	assert.Equal(t, 1.0, score)
}

func TestScoreValue_OneSideZero(t *testing.T) {
	score, _ := scoreValue(0, 100, DefaultProfile())
	assert.Equal(t, 0.0, score)

	score, _ = scoreValue(100, 0, DefaultProfile())
	assert.Equal(t, 0.0, score)
}

func TestScoreValue_Symmetric(t *testing.T) {
	profile := DefaultProfile()
	pairs := [][2]float64{
		{1000, 1020},
		{100, 250},
		{0.01, 0.02},
		{5000, 5000},
	}
	for _, p := range pairs {
		ab, _ := scoreValue(p[0], p[1], profile)
		ba, _ := scoreValue(p[1], p[0], profile)
		assert.Equal(t, ab, ba, "scoreValue(%v, %v)", p[0], p[1])
	}
}

func TestScoreValue_WithinTolerance(t *testing.T) {
	// 1000 vs 1020: diff 20 <= 50 abs, rel 20/1020 ~ 0.0196 <= 0.05
	score, diff := scoreValue(1000, 1020, DefaultProfile())
	assert.Equal(t, 20.0, diff)
	assert.InDelta(t, 1.0-20.0/1020.0, score, 1e-9)
}

func TestScoreValue_BeyondToleranceSteepPenalty(t *testing.T) {
	// 1000 vs 1200: rel 200/1200, outside both tolerances
	score, diff := scoreValue(1000, 1200, DefaultProfile())
	assert.Equal(t, 200.0, diff)
	assert.InDelta(t, 1.0-2*(200.0/1200.0), score, 1e-9)
}

func TestScoreValue_NeverNegative(t *testing.T) {
	score, _ := scoreValue(10, 10000, DefaultProfile())
	assert.Equal(t, 0.0, score)
}

func TestScoreDate_ZeroDifferenceIsOne(t *testing.T) {
	score, days := scoreDate("2025-07-29", "2025-07-29", 7)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, 0, days)
}

func TestScoreDate_LinearDecayWithinWindow(t *testing.T) {
	score, days := scoreDate("2025-07-29", "2025-07-22", 7)
	assert.Equal(t, 7, days)
	assert.Equal(t, 0.0, score)

	score, days = scoreDate("2025-07-29", "2025-07-26", 7)
	assert.Equal(t, 3, days)
	assert.InDelta(t, 1.0-3.0/7.0, score, 1e-9)
}

func TestScoreDate_BeyondWindowIsZero(t *testing.T) {
	score, days := scoreDate("2025-07-29", "2025-06-01", 7)
	assert.Equal(t, 58, days)
	assert.Equal(t, 0.0, score)
}

func TestScoreDate_UnparseableIsNeutral(t *testing.T) {
	for _, pair := range [][2]string{
		{"29/07/2025", "2025-07-29"},
		{"2025-07-29", "not a date"},
		{"", ""},
	} {
		score, days := scoreDate(pair[0], pair[1], 7)
		assert.Equal(t, 0.5, score, "dates %q/%q", pair[0], pair[1])
		assert.Equal(t, 0, days)
	}
}

func TestScoreText_JaccardOverTokenSets(t *testing.T) {
	tx := makeTx(100, "2025-07-29", "PGTO NF 4521 ABC COMERCIO")
	doc := makeDoc(100, "2025-07-29", "NF-e 4521", "ABC COMERCIO")

	score, matched := scoreText(tx, doc, DefaultProfile())

	// tx tokens: {4521, ABC, COMERCIO} (PGTO is a stop word, NF too short)
	// doc tokens: {4521, ABC, COMERCIO}
	assert.Equal(t, 1.0, score)
	assert.Equal(t, []string{"4521", "ABC", "COMERCIO"}, matched)
}

func TestScoreText_EmptySetsScoreZero(t *testing.T) {
	tx := makeTx(100, "2025-07-29", "TED PIX")
	doc := makeDoc(100, "2025-07-29", "NF-e 4521", "ABC COMERCIO")

	score, matched := scoreText(tx, doc, DefaultProfile())
	assert.Equal(t, 0.0, score)
	assert.Empty(t, matched)
}

func TestScore_AllScoresWithinBounds(t *testing.T) {
	profile := DefaultProfile()
	amounts := []float64{0, 0.01, 99.99, 1000, 123456.78}
	dates := []string{"2025-07-29", "2025-01-01", "bogus"}

	for _, txAmount := range amounts {
		for _, docAmount := range amounts {
			for _, date := range dates {
				tx := makeTx(txAmount, date, "PGTO NF 4521 ABC")
				doc := makeDoc(docAmount, "2025-07-29", "NF-e 4521", "ABC CORP")
				info := Score(tx, doc, CategoryNormal, profile)

				label := fmt.Sprintf("tx=%v doc=%v date=%s", txAmount, docAmount, date)
				require.GreaterOrEqual(t, info.TotalScore, 0.0, label)
				require.LessOrEqual(t, info.TotalScore, 1.0, label)
				for _, s := range []float64{info.Scores.Value, info.Scores.Date, info.Scores.Text} {
					require.GreaterOrEqual(t, s, 0.0, label)
					require.LessOrEqual(t, s, 1.0, label)
				}
			}
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	stopWords := DefaultProfile().stopWordSet()

	words := extractKeywords("TED PGTO NF 4521 ABC COMERCIO LTDA", stopWords)

	assert.NotContains(t, words, "TED")
	assert.NotContains(t, words, "PGTO")
	assert.NotContains(t, words, "NF") // two chars or fewer dropped
	assert.Contains(t, words, "4521")
	assert.Contains(t, words, "ABC")
	assert.Contains(t, words, "COMERCIO")
	assert.Contains(t, words, "LTDA")
}

func TestExtractKeywords_NumericTokensKeptVerbatim(t *testing.T) {
	// Numbers with three or more digits survive even inside stop words
	stopWords := map[string]struct{}{"4521": {}}
	words := extractKeywords("PGTO 4521 12 99", stopWords)

	assert.Contains(t, words, "4521")
	assert.NotContains(t, words, "12")
	assert.NotContains(t, words, "99")
}
