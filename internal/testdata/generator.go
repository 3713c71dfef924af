// Package testdata produces synthetic reconciliation requests for demos,
// load tests and dashboard seeding.
package testdata

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fiscalsync/conciliador-backend/internal/domain/reconcile"
)

// CaseKind selects the shape of a generated request.
type CaseKind string

const (
	KindNormal      CaseKind = "normal"
	KindInstallment CaseKind = "parcela"
	KindWithholding CaseKind = "retencao"
	KindBatch       CaseKind = "lote"
	KindDivergence  CaseKind = "divergencia"
	KindFee         CaseKind = "taxa"
)

var (
	suppliers = []string{
		"ABC COMERCIO LTDA",
		"XYZ INDUSTRIA SA",
		"DEF SERVICOS EIRELI",
		"GHI TRANSPORTES LTDA",
	}
	purchaseCFOPs = []string{"1102", "1202", "2102"}
	bankCodes     = []string{"341", "237", "001", "104", "033"}

	withholdingRates = map[string]float64{
		"irrf":   0.015,
		"pis":    0.0065,
		"cofins": 0.03,
		"csll":   0.01,
		"iss":    0.035,
	}
)

// Generator produces synthetic requests. A fixed seed gives a reproducible
// sequence.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a generator seeded with the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now(),
	}
}

func (g *Generator) amount(min, max float64) float64 {
	v := min + g.rng.Float64()*(max-min)
	return round2(v)
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func (g *Generator) recentDate() string {
	d := g.now.AddDate(0, 0, -g.rng.Intn(31))
	return d.Format("2006-01-02")
}

func (g *Generator) account(bankCode string) string {
	return fmt.Sprintf("%s-%05d-%d", bankCode, 10000+g.rng.Intn(90000), g.rng.Intn(10))
}

func (g *Generator) supplier() string {
	return suppliers[g.rng.Intn(len(suppliers))]
}

func (g *Generator) cfop() string {
	return purchaseCFOPs[g.rng.Intn(len(purchaseCFOPs))]
}

func (g *Generator) docNumber() string {
	return fmt.Sprintf("%d", 1000+g.rng.Intn(9000))
}

// Generate builds one request of the given kind.
func (g *Generator) Generate(kind CaseKind) reconcile.Request {
	bankCode := bankCodes[g.rng.Intn(len(bankCodes))]
	account := g.account(bankCode)
	supplier := g.supplier()
	date := g.recentDate()
	base := g.amount(100, 10000)

	switch kind {
	case KindInstallment:
		return g.installmentCase(supplier, date, base, account, bankCode)
	case KindWithholding:
		return g.withholdingCase(supplier, date, base, account, bankCode)
	case KindBatch:
		return g.batchCase(supplier, date, account, bankCode)
	case KindDivergence:
		return g.divergenceCase(supplier, date, base, account, bankCode)
	case KindFee:
		return g.feeCase(date, account, bankCode)
	default:
		return g.normalCase(supplier, date, base, account, bankCode)
	}
}

func (g *Generator) normalCase(supplier, date string, amount float64, account, bankCode string) reconcile.Request {
	doc := g.docNumber()
	return reconcile.Request{
		Transaction: reconcile.BankTransaction{
			Date:        date,
			Amount:      amount,
			Description: fmt.Sprintf("PGTO NF %s %s", doc, supplier),
			Direction:   "Débito",
			Account:     account,
			BankCode:    bankCode,
		},
		Candidate: &reconcile.FiscalDocument{
			DocumentNumber: doc,
			CFOP:           g.cfop(),
			DocumentDate:   date,
			TotalAmount:    amount,
			PartnerName:    supplier,
		},
	}
}

func (g *Generator) installmentCase(supplier, date string, base float64, account, bankCode string) reconcile.Request {
	const totalInstallments = 3
	installment := 1 + g.rng.Intn(totalInstallments)
	installmentAmount := round2(base / totalInstallments)
	doc := g.docNumber()

	return reconcile.Request{
		Transaction: reconcile.BankTransaction{
			Date:        date,
			Amount:      installmentAmount,
			Description: fmt.Sprintf("BOLETO %s PARC %d/%d NF %s", supplier, installment, totalInstallments, doc),
			Direction:   "Débito",
			Account:     account,
			BankCode:    bankCode,
		},
		Candidate: &reconcile.FiscalDocument{
			DocumentNumber: doc,
			CFOP:           g.cfop(),
			DocumentDate:   date,
			TotalAmount:    round2(base),
			PartnerName:    supplier,
		},
	}
}

func (g *Generator) withholdingCase(supplier, date string, gross float64, account, bankCode string) reconcile.Request {
	taxes := make(map[string]float64, len(withholdingRates))
	total := 0.0
	for name, rate := range withholdingRates {
		t := round2(gross * rate)
		taxes[name] = t
		total += t
	}
	net := round2(gross - total)
	doc := fmt.Sprintf("%d", 100000+g.rng.Intn(900000))

	return reconcile.Request{
		Transaction: reconcile.BankTransaction{
			Date:        date,
			Amount:      net,
			Description: fmt.Sprintf("PGTO SERVICO %s LIQ NF %s", supplier, doc),
			Direction:   "Débito",
			Account:     account,
			BankCode:    bankCode,
		},
		Candidate: &reconcile.FiscalDocument{
			DocumentNumber: doc,
			CFOP:           g.cfop(),
			DocumentDate:   date,
			TotalAmount:    round2(gross),
			PartnerName:    supplier,
			WithheldTaxes:  taxes,
		},
	}
}

func (g *Generator) batchCase(supplier, date, account, bankCode string) reconcile.Request {
	const batchSize = 3
	candidates := make([]reconcile.FiscalDocument, 0, batchSize)
	total := 0.0
	suffixes := ""
	for i := 0; i < batchSize; i++ {
		doc := g.docNumber()
		amount := g.amount(100, 5000)
		total += amount
		suffixes += " " + doc
		candidates = append(candidates, reconcile.FiscalDocument{
			BatchDocument: "NF-e " + doc,
			BatchAmount:   amount,
		})
	}

	return reconcile.Request{
		Transaction: reconcile.BankTransaction{
			Date:        date,
			Amount:      round2(total),
			Description: fmt.Sprintf("TED PGTO LOTE %s%s", supplier, suffixes),
			Direction:   "Débito",
			Account:     account,
			BankCode:    bankCode,
		},
		Candidates: candidates,
	}
}

func (g *Generator) divergenceCase(supplier, date string, amount float64, account, bankCode string) reconcile.Request {
	docDate, _ := time.Parse("2006-01-02", date)
	docDate = docDate.AddDate(0, 0, -(10 + g.rng.Intn(21)))
	docAmount := round2(amount + 100 + g.rng.Float64()*900)

	return reconcile.Request{
		Transaction: reconcile.BankTransaction{
			Date:        date,
			Amount:      amount,
			Description: fmt.Sprintf("PIX RECEBIDO %s REF VENDA", supplier),
			Direction:   "Crédito",
			Account:     account,
			BankCode:    bankCode,
		},
		Candidate: &reconcile.FiscalDocument{
			DocumentNumber: g.docNumber(),
			CFOP:           g.cfop(),
			DocumentDate:   docDate.Format("2006-01-02"),
			TotalAmount:    docAmount,
			PartnerName:    supplier,
		},
	}
}

func (g *Generator) feeCase(date, account, bankCode string) reconcile.Request {
	return reconcile.Request{
		Transaction: reconcile.BankTransaction{
			Date:        date,
			Amount:      g.amount(5, 120),
			Description: "TARIFA MANUTENCAO CONTA",
			Direction:   "Débito",
			Account:     account,
			BankCode:    bankCode,
		},
	}
}

// GenerateSet builds a mixed batch of requests following the typical
// real-world case distribution.
func (g *Generator) GenerateSet(size int) []reconcile.Request {
	distribution := []struct {
		kind  CaseKind
		share float64
	}{
		{KindNormal, 0.4},
		{KindInstallment, 0.15},
		{KindWithholding, 0.15},
		{KindBatch, 0.1},
		{KindDivergence, 0.2},
	}

	cases := make([]reconcile.Request, 0, size)
	for _, d := range distribution {
		n := int(float64(size) * d.share)
		for i := 0; i < n; i++ {
			cases = append(cases, g.Generate(d.kind))
		}
	}
	return cases
}

// WriteFiles writes one JSON file per case kind into dir, 20 cases each,
// and returns the created file paths.
func (g *Generator) WriteFiles(dir string, perKind int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if perKind <= 0 {
		perKind = 20
	}

	fileNames := []struct {
		kind CaseKind
		name string
	}{
		{KindNormal, "transacoes_normais"},
		{KindInstallment, "transacoes_parceladas"},
		{KindWithholding, "transacoes_retencao"},
		{KindBatch, "transacoes_lote"},
		{KindDivergence, "transacoes_divergencias"},
		{KindFee, "transacoes_taxas"},
	}

	timestamp := g.now.Format("20060102_150405")
	var created []string

	for _, f := range fileNames {
		cases := make([]reconcile.Request, 0, perKind)
		for i := 0; i < perKind; i++ {
			cases = append(cases, g.Generate(f.kind))
		}

		data, err := json.MarshalIndent(cases, "", "  ")
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", f.name, timestamp))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		created = append(created, path)
	}

	return created, nil
}
