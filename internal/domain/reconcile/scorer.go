package reconcile

import (
	"math"
	"time"
)

// Fixed criterion weights. These are a design constant of the rule set, not
// configuration: changing them requires a RuleVersion bump.
const (
	valueWeight = 0.6
	dateWeight  = 0.2
	textWeight  = 0.2
)

// feeConfidence signals "recognized as a bank fee, intentionally
// non-matchable" as opposed to a plain zero for missing candidates.
const feeConfidence = 0.15

const dateLayout = "2006-01-02"

// Score computes the weighted similarity between a transaction and a single
// fiscal candidate. With no candidate, or for the bank-fee category, it
// returns a degenerate MatchingInfo with empty detail.
func Score(tx BankTransaction, candidate *FiscalDocument, category Category, profile Profile) MatchingInfo {
	if candidate == nil || category == CategoryBankFee {
		info := MatchingInfo{}
		if category == CategoryBankFee {
			info.TotalScore = feeConfidence
		}
		return info
	}

	valueScore, valueDiff := scoreValue(tx.Amount, candidate.TotalAmount, profile)
	dateScore, dayDiff := scoreDate(tx.Date, candidate.DocumentDate, profile.DateWindowDays)
	textScore, matched := scoreText(tx, candidate, profile)

	total := valueWeight*valueScore + dateWeight*dateScore + textWeight*textScore

	return MatchingInfo{
		TotalScore: clampScore(total),
		Scores: CriterionScores{
			Value: valueScore,
			Date:  dateScore,
			Text:  textScore,
		},
		ValueDifference: valueDiff,
		DayDifference:   dayDiff,
		MatchedKeywords: matched,
	}
}

// scoreValue compares the absolute amounts. Equal amounts (including both
// zero) score 1.0; one side zero scores 0.0. Within tolerance the score
// decays linearly with the relative difference; beyond tolerance the penalty
// doubles, floored at zero.
func scoreValue(txAmount, docAmount float64, profile Profile) (score, diff float64) {
	a := roundCurrency(math.Abs(txAmount))
	b := roundCurrency(math.Abs(docAmount))
	diff = currencyDiff(a, b)

	switch {
	case a == 0 && b == 0:
		return 1.0, diff
	case a == 0 || b == 0:
		return 0.0, diff
	}

	relDiff := diff / math.Max(a, b)
	if diff <= profile.ValueToleranceAbs && relDiff <= profile.ValueTolerancePct {
		return clampScore(1.0 - relDiff), diff
	}
	return clampScore(1.0 - 2*relDiff), diff
}

// scoreDate compares the two dates within the configured window. A date that
// fails to parse is a data problem, not a matching failure, so it scores a
// neutral 0.5 with a zero day difference.
func scoreDate(txDate, docDate string, windowDays int) (score float64, dayDiff int) {
	t1, err1 := time.Parse(dateLayout, txDate)
	t2, err2 := time.Parse(dateLayout, docDate)
	if err1 != nil || err2 != nil {
		return 0.5, 0
	}

	dayDiff = int(math.Abs(t1.Sub(t2).Hours()) / 24)
	if dayDiff > windowDays {
		return 0.0, dayDiff
	}
	if windowDays == 0 {
		return 1.0, dayDiff
	}
	return clampScore(1.0 - float64(dayDiff)/float64(windowDays)), dayDiff
}

// scoreText computes Jaccard similarity between the transaction description
// tokens and the candidate's document number plus counterparty name.
func scoreText(tx BankTransaction, candidate *FiscalDocument, profile Profile) (float64, []string) {
	stopWords := profile.stopWordSet()

	txWords := extractKeywords(tx.Description, stopWords)
	docWords := extractKeywords(candidate.DocumentNumber+" "+candidate.PartnerName, stopWords)

	return jaccard(txWords, docWords)
}
