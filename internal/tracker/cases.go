package tracker

import (
	"fmt"

	"github.com/hiperfaturometro/hiperfaturometro/internal/analysis"
	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// Materializer turns analyzed procurements into persisted, API-facing cases.
// Only analyses at medium risk or above produce a case.
type Materializer struct {
	prices analysis.PriceReference
}

// NewMaterializer wires the price reference used to recompute the market
// deviation fields of each case.
func NewMaterializer(prices analysis.PriceReference) *Materializer {
	return &Materializer{prices: prices}
}

// Materialize joins records with their analyses and builds cases for every
// analysis at or above medium risk. Input order is preserved.
func (m *Materializer) Materialize(records []types.Procurement, analyses []types.Analysis) []types.Case {
	byID := make(map[string]types.Analysis, len(analyses))
	for _, a := range analyses {
		byID[a.ProcurementID] = a
	}

	var cases []types.Case
	for _, rec := range records {
		a, ok := byID[rec.ID]
		if !ok {
			continue
		}
		if !a.RiskLevel.AtLeast(types.RiskMedium) {
			continue
		}
		cases = append(cases, m.buildCase(rec, a))
	}
	return cases
}

// buildCase derives the financial fields of a case from the winning bid and
// the reference price of the first line item. The market deviation is
// recomputed here rather than read back out of the evidence details, so a
// case stays complete even when the price extractor emitted nothing.
func (m *Materializer) buildCase(rec types.Procurement, a types.Analysis) types.Case {
	winningCompany := "N/A"
	cnpj := "N/A"
	var noticePrice float64
	if winner, ok := rec.Winner(); ok {
		winningCompany = winner.Name
		cnpj = winner.CNPJ
		noticePrice = winner.ProposedPrice
	}

	var product string
	var quantity int
	if len(rec.Items) > 0 {
		product = rec.Items[0].Description
		quantity = rec.Items[0].Quantity
	}

	var marketPrice, percentageDiff, overcharged float64
	if noticePrice > 0 {
		if ref, ok := m.prices.ReferencePrice(product); ok && ref > 0 {
			marketPrice = ref
			percentageDiff = (noticePrice - ref) / ref * 100
			overcharged = (noticePrice - ref) * float64(quantity)
		}
	}

	status := "Em análise"
	if len(a.Recommendations) > 0 {
		status = a.Recommendations[0]
	}

	evidence := make([]string, 0, len(a.Evidence))
	for _, ev := range a.Evidence {
		evidence = append(evidence, ev.Description)
	}

	return types.Case{
		ID:               rec.ID,
		Title:            fmt.Sprintf("Superfaturamento em %s", product),
		Agency:           rec.Agency,
		OpeningDate:      rec.OpeningDate.Format("2006-01-02"),
		EstimatedValue:   rec.EstimatedValue,
		WinningCompany:   winningCompany,
		CNPJ:             cnpj,
		Product:          product,
		Quantity:         quantity,
		NoticePrice:      noticePrice,
		MarketPrice:      marketPrice,
		PercentageDiff:   percentageDiff,
		OverchargedValue: overcharged,
		Evidence:         evidence,
		Status:           status,
		RiskLevel:        a.RiskLevel,
		RiskScore:        int(a.Score),
		PriorityLevel:    priorityFor(a.Score),
		Involved:         involvedParties(rec, winningCompany, cnpj),
	}
}

// priorityFor maps the score to an investigation-urgency tier. Deliberately a
// separate table from the risk classification.
func priorityFor(score float64) types.PriorityLevel {
	switch {
	case score >= 80:
		return types.PriorityCritical
	case score >= 60:
		return types.PriorityHigh
	case score >= 40:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// involvedParties builds the placeholder involved-parties block. Everything
// beyond the company name and CNPJ is simulated until a corporate-registry
// integration exists.
func involvedParties(rec types.Procurement, company, cnpj string) *types.InvolvedParties {
	return &types.InvolvedParties{
		Company: types.Company{
			Name:          company,
			CNPJ:          cnpj,
			Partners:      []string{"João Silva", "Maria Santos"},
			PastWins:      15,
			AnnualRevenue: 5000000.00,
		},
		Approver: types.Approver{
			Name:             "Carlos Oliveira",
			Role:             "Diretor de Compras",
			Agency:           rec.Agency,
			PastProcurements: 50,
			TimeInRole:       "3 anos",
		},
	}
}
