package reconcile

import "strings"

// Profile is the set of tunable matching criteria. A Profile is fixed for the
// lifetime of a request; callers that want different criteria build a new
// Profile rather than mutating one in flight.
type Profile struct {
	// ValueTolerancePct is the relative value tolerance, in [0,1].
	ValueTolerancePct float64 `json:"tolerancia_valor_percentual" yaml:"value_tolerance_pct"`

	// ValueToleranceAbs is the absolute value tolerance, in currency units.
	ValueToleranceAbs float64 `json:"tolerancia_valor_absoluta" yaml:"value_tolerance_abs"`

	// DateWindowDays is the date matching window, in days.
	DateWindowDays int `json:"janela_data_dias" yaml:"date_window_days"`

	// MinimumScore is the total score required for acceptance, in [0,1].
	MinimumScore float64 `json:"score_minimo" yaml:"minimum_score"`

	// StopWords are case-insensitive tokens excluded from text matching.
	StopWords []string `json:"palavras_irrelevantes" yaml:"stop_words"`
}

// defaultStopWords are generic transfer markers that carry no matching signal.
var defaultStopWords = []string{"ted", "pix", "pgto", "boleto", "doc", "transferencia"}

// DefaultProfile returns the process-wide default matching criteria.
func DefaultProfile() Profile {
	return Profile{
		ValueTolerancePct: 0.05,
		ValueToleranceAbs: 50.00,
		DateWindowDays:    7,
		MinimumScore:      0.60,
		StopWords:         append([]string(nil), defaultStopWords...),
	}
}

// Merge returns a copy of p with zero-valued fields filled from def. Partial
// overrides supplied on a request inherit the defaults for everything they
// leave unset.
func (p Profile) Merge(def Profile) Profile {
	out := p
	if out.ValueTolerancePct == 0 {
		out.ValueTolerancePct = def.ValueTolerancePct
	}
	if out.ValueToleranceAbs == 0 {
		out.ValueToleranceAbs = def.ValueToleranceAbs
	}
	if out.DateWindowDays == 0 {
		out.DateWindowDays = def.DateWindowDays
	}
	if out.MinimumScore == 0 {
		out.MinimumScore = def.MinimumScore
	}
	if out.StopWords == nil {
		out.StopWords = append([]string(nil), def.StopWords...)
	}
	return out
}

// stopWordSet builds a lowercase lookup set from the profile stop words.
func (p Profile) stopWordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.StopWords))
	for _, w := range p.StopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
