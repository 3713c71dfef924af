package reconcile

// BankTransaction is a single bank statement entry to be reconciled.
// Field names follow the wire format produced by the statement loader.
// Immutable once received.
type BankTransaction struct {
	Date        string  `json:"data_transacao"`
	Amount      float64 `json:"valor_transacao"`
	Description string  `json:"descricao_transacao"`
	Direction   string  `json:"tipo_transacao"` // "Débito" or "Crédito"
	Account     string  `json:"conta_bancaria"`
	BankCode    string  `json:"codigo_banco"`
}

// FiscalDocument is a candidate fiscal classification (invoice) supplied for
// matching. Single-candidate requests populate the document fields; batch
// requests populate the batch-membership fields (Documento/Valor).
type FiscalDocument struct {
	DocumentNumber string             `json:"numero_documento,omitempty"`
	CFOP           string             `json:"cfop,omitempty"`
	DocumentDate   string             `json:"data_documento,omitempty"`
	TotalAmount    float64            `json:"valor_total,omitempty"`
	PartnerName    string             `json:"parceiro_nome,omitempty"`
	WithheldTaxes  map[string]float64 `json:"impostos_retidos,omitempty"`

	// Batch membership fields
	BatchDocument string  `json:"documento,omitempty"`
	BatchAmount   float64 `json:"valor,omitempty"`
}

// Request is the pipeline input: one transaction plus zero or more fiscal
// candidates. Candidate carries the single-match case; Candidates carries the
// batch case. Profile overrides the default criteria when non-nil.
type Request struct {
	Transaction BankTransaction  `json:"transacao_bancaria"`
	Candidate   *FiscalDocument  `json:"classificacao_disponivel,omitempty"`
	Candidates  []FiscalDocument `json:"classificacoes_disponiveis,omitempty"`
	Profile     *Profile         `json:"criterios_config,omitempty"`
}

// CandidateCount returns the number of fiscal candidates supplied.
func (r Request) CandidateCount() int {
	n := len(r.Candidates)
	if r.Candidate != nil {
		n++
	}
	return n
}

// Category is the transaction type assigned by the classifier. Exactly one
// category is assigned per request; it selects the validator and specialized
// processing branch downstream.
type Category string

const (
	CategoryNormal           Category = "normal"
	CategoryBankFee          Category = "bank_fee"
	CategoryInstallment      Category = "installment"
	CategoryNetOfWithholding Category = "net_of_withholding"
	CategoryBatch            Category = "batch_multi_document"
)

// CriterionScores holds the per-criterion sub-scores, each in [0,1].
type CriterionScores struct {
	Value float64 `json:"valor"`
	Date  float64 `json:"data"`
	Text  float64 `json:"descricao"`
}

// MatchingInfo is the scorer output for one transaction/candidate pair.
type MatchingInfo struct {
	TotalScore      float64         `json:"score_total"`
	Scores          CriterionScores `json:"scores_detalhados"`
	ValueDifference float64         `json:"diferenca_valor"`
	DayDifference   int             `json:"diferenca_dias"`
	MatchedKeywords []string        `json:"palavras_encontradas"`
}

// Severity grades a divergence.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Divergence is a detected inconsistency between transaction and fiscal
// document. Divergences do not by themselves block reconciliation.
type Divergence struct {
	Kind        string   `json:"tipo"`
	Description string   `json:"descricao"`
	Severity    Severity `json:"impacto"`
}

// LedgerSuggestion is a fixed suggested ledger classification, used when a
// transaction is recognized as a bank fee with no fiscal document.
type LedgerSuggestion struct {
	Type          string `json:"tipo"`
	DebitAccount  string `json:"conta_debito_sugerida"`
	CreditAccount string `json:"conta_credito_sugerida"`
	Nature        string `json:"natureza"`
}

// ValidationResult is the validator output: the acceptance decision plus the
// category-specific sub-checks and divergence list.
type ValidationResult struct {
	Acceptable      bool
	Reason          string
	Checks          map[string]bool
	Divergences     []Divergence
	SuggestedLedger *LedgerSuggestion
}

// WithholdingBreakdown carries the tax-retention netting computed for a
// net-of-withholding payment.
type WithholdingBreakdown struct {
	GrossAmount   float64            `json:"valor_bruto"`
	TotalWithheld float64            `json:"total_retencoes"`
	ExpectedNet   float64            `json:"valor_liquido_esperado"`
	Taxes         map[string]float64 `json:"impostos_detalhados"`
}

// BatchDocument is one candidate of a batch payment with its assigned
// deterministic ledger-entry identifier.
type BatchDocument struct {
	LedgerEntryID string  `json:"id_lancamento"`
	Document      string  `json:"documento"`
	Amount        float64 `json:"valor"`
}

// BatchTotals summarizes a batch totalization against the transaction amount.
type BatchTotals struct {
	DocumentsTotal    float64 `json:"valor_total_documentos"`
	TransactionAmount float64 `json:"valor_transacao"`
	Difference        float64 `json:"diferenca"`
	DocumentCount     int     `json:"quantidade_nfs"`
}

// SpecializedResult is the category-tagged payload of the specialized
// processing stage. At most one branch is populated; all nil for the default
// categories.
type SpecializedResult struct {
	Withholding     *WithholdingBreakdown
	BatchDocuments  []BatchDocument
	BatchTotals     *BatchTotals
	SuggestedLedger *LedgerSuggestion
}

// Status is the terminal reconciliation status label.
type Status string

const (
	StatusReconciledAutomatic       Status = "reconciled-automatic"
	StatusReconciledWithExceptions  Status = "reconciled-with-exceptions"
	StatusReconciledWithWithholding Status = "reconciled-with-withholding"
	StatusReconciledPartial         Status = "reconciled-partial"
	StatusNotReconciled             Status = "not-reconciled"
	StatusNotReconcilable           Status = "not-reconcilable"
	StatusReconciledBatch           Status = "reconciled-batch"
	StatusBatchMismatch             Status = "batch-mismatch"
	StatusNoClassification          Status = "no-classification-available"
	StatusProcessingError           Status = "processing-error"
)

// Primary-criterion audit tags, derived by category precedence.
const (
	CriterionFeeExclusion          = "fee-exclusion"
	CriterionNetValueWithholding   = "net-value-withholding"
	CriterionSequentialInstallment = "sequential-installment"
	CriterionBatchSupplier         = "batch-supplier"
	CriterionExactValue            = "exact-value"
	CriterionDocumentNumber        = "document-number"
	CriterionFuzzyMatching         = "fuzzy-matching"
)

// MatchMetadata is the audit block attached to the terminal result.
type MatchMetadata struct {
	PrimaryCriterion string   `json:"criterio_principal"`
	MatchedKeywords  []string `json:"palavras_encontradas"`
	ValueDifference  float64  `json:"diferenca_valor"`
	DayDifference    int      `json:"diferenca_dias"`
	AutoCategory     Category `json:"categoria_automatica,omitempty"`
}

// WithholdingSettlement extends the withholding breakdown with the amount
// actually paid, for the terminal result.
type WithholdingSettlement struct {
	GrossAmount   float64 `json:"valor_bruto"`
	TotalWithheld float64 `json:"total_retencoes"`
	ExpectedNet   float64 `json:"valor_liquido_esperado"`
	AmountPaid    float64 `json:"valor_pago"`
	Difference    float64 `json:"diferenca"`
}

// ErrorDetail is the structured fault description attached to the fallback
// result when a stage fails.
type ErrorDetail struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ResultDetails is the nested "conciliacao" object of the terminal result.
type ResultDetails struct {
	Reconciled         bool              `json:"conciliado"`
	IdentifiedCategory Category          `json:"tipo_transacao_identificado,omitempty"`
	ReconciliationType string            `json:"tipo_conciliacao,omitempty"`
	LedgerEntryID      string            `json:"id_lancamento_contabil,omitempty"`
	SourceDocument     string            `json:"documento_origem,omitempty"`
	SourceCFOP         string            `json:"cfop_origem,omitempty"`
	Confidence         float64           `json:"score_confianca"`
	Status             Status            `json:"status"`
	Divergences        []Divergence      `json:"divergencias"`
	Observations       []string          `json:"observacoes"`
	SuggestedLedger    *LedgerSuggestion `json:"classificacao_sugerida,omitempty"`
	Metadata           *MatchMetadata    `json:"metadados_matching,omitempty"`

	// Batch-specific
	BatchDocuments   []BatchDocument `json:"documentos_conciliados,omitempty"`
	AccountingChecks map[string]bool `json:"validacoes_contabeis,omitempty"`
	BatchTotals      *BatchTotals    `json:"totalizacao,omitempty"`

	// Withholding-specific
	Withholding *WithholdingSettlement `json:"calculo_retencoes,omitempty"`
}

// Result is the terminal, immutable reconciliation record. Produced exactly
// once per request.
type Result struct {
	OK               bool          `json:"conciliacao_ok"`
	Details          ResultDetails `json:"conciliacao"`
	Confidence       float64       `json:"confianca"`
	NeedsHumanReview bool          `json:"needs_human_review"`
	FailureReason    string        `json:"motivo_nao_conciliacao,omitempty"`
	Error            *ErrorDetail  `json:"error,omitempty"`
	RuleVersion      string        `json:"rule_version"`
}

// RuleVersion identifies the rule set that produced a result. Bumped whenever
// scoring weights or tolerance semantics change.
const RuleVersion = "v1.0"
