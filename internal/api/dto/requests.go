package dto

import (
	"errors"
	"time"

	"github.com/fiscalsync/conciliador-backend/internal/domain/reconcile"
)

// TransactionPayload mirrors the bank transaction wire format. Amount is a
// pointer so a missing field can be told apart from a zero value.
type TransactionPayload struct {
	Date        string   `json:"data_transacao"`
	Amount      *float64 `json:"valor_transacao"`
	Description string   `json:"descricao_transacao"`
	Direction   string   `json:"tipo_transacao"`
	Account     string   `json:"conta_bancaria"`
	BankCode    string   `json:"codigo_banco"`
}

// ReconcileRequest is the POST /api/v1/reconcile body.
type ReconcileRequest struct {
	Transaction *TransactionPayload        `json:"transacao_bancaria"`
	Candidate   *reconcile.FiscalDocument  `json:"classificacao_disponivel"`
	Candidates  []reconcile.FiscalDocument `json:"classificacoes_disponiveis"`
	Profile     *reconcile.Profile         `json:"criterios_config"`
}

const dateLayout = "2006-01-02"

// Validate performs the schema checks that must pass before the request
// reaches the pipeline. The pipeline itself never rejects input; malformed
// requests are turned away here with a 400.
func (r *ReconcileRequest) Validate() error {
	if r.Transaction == nil {
		return errors.New("transacao_bancaria is required")
	}
	tx := r.Transaction
	if tx.Date == "" {
		return errors.New("transacao_bancaria.data_transacao is required")
	}
	if _, err := time.Parse(dateLayout, tx.Date); err != nil {
		return errors.New("transacao_bancaria.data_transacao must be an ISO date (YYYY-MM-DD)")
	}
	if tx.Amount == nil {
		return errors.New("transacao_bancaria.valor_transacao is required")
	}
	if tx.Description == "" {
		return errors.New("transacao_bancaria.descricao_transacao is required")
	}
	if tx.Direction == "" {
		return errors.New("transacao_bancaria.tipo_transacao is required")
	}
	return nil
}

// ToDomain converts a validated request into the pipeline input.
func (r *ReconcileRequest) ToDomain() reconcile.Request {
	return reconcile.Request{
		Transaction: reconcile.BankTransaction{
			Date:        r.Transaction.Date,
			Amount:      *r.Transaction.Amount,
			Description: r.Transaction.Description,
			Direction:   r.Transaction.Direction,
			Account:     r.Transaction.Account,
			BankCode:    r.Transaction.BankCode,
		},
		Candidate:  r.Candidate,
		Candidates: r.Candidates,
		Profile:    r.Profile,
	}
}
