package api

import (
	"fmt"
	"strings"

	"github.com/hiperfaturometro/hiperfaturometro/internal/store"
	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// DataService reads the batch-run snapshots and shapes them for the API. It
// is stateless: every call re-reads the snapshot files, so a batch run that
// swaps them in is picked up immediately.
type DataService struct {
	store *store.Store
}

// NewDataService creates a service over the given snapshot store.
func NewDataService(s *store.Store) *DataService {
	return &DataService{store: s}
}

// Statistics is the aggregate view of the latest batch run.
type Statistics struct {
	TotalAnalyzed    int     `json:"total_licitacoes_analisadas"`
	SuspiciousCases  int     `json:"casos_suspeitos"`
	TotalOvercharged float64 `json:"valor_superfaturado_total"`
	SuspicionRate    float64 `json:"taxa_suspeicao"`
}

// Statistics aggregates over all analyses and materialized cases. An empty
// store yields all-zero statistics, not an error.
func (s *DataService) Statistics() (Statistics, error) {
	analyses, err := s.store.LoadAnalyses()
	if err != nil {
		return Statistics{}, err
	}
	cases, err := s.store.LoadCases()
	if err != nil {
		return Statistics{}, err
	}

	if len(analyses) == 0 {
		return Statistics{}, nil
	}

	var overcharged float64
	for _, c := range cases {
		if c.OverchargedValue > 0 {
			overcharged += c.OverchargedValue
		}
	}

	return Statistics{
		TotalAnalyzed:    len(analyses),
		SuspiciousCases:  len(cases),
		TotalOvercharged: overcharged,
		SuspicionRate:    float64(len(cases)) / float64(len(analyses)) * 100,
	}, nil
}

// CaseFilters narrows the case list. Zero values mean "no filter".
type CaseFilters struct {
	Limit     int
	RiskLevel string
	Agency    string
	Priority  string
}

// NewsItem is a case shaped as a breaking-news entry for the feed.
type NewsItem struct {
	Title            string                 `json:"titulo"`
	Summary          string                 `json:"resumo"`
	Date             string                 `json:"data"`
	Agency           string                 `json:"orgao"`
	Value            string                 `json:"valor"`
	Risk             types.RiskLevel        `json:"risco"`
	RiskLevel        types.RiskLevel        `json:"risk_level"`
	RiskScore        int                    `json:"risk_score"`
	OverchargedValue float64                `json:"valor_superfaturado"`
	Status           string                 `json:"status"`
	Company          string                 `json:"empresa"`
	WinningCompany   string                 `json:"empresa_vencedora"`
	CNPJ             string                 `json:"cnpj"`
	Product          string                 `json:"produto"`
	EstimatedValue   float64                `json:"valor_estimado"`
	PercentageDiff   float64                `json:"diferenca_percentual"`
	NoticePrice      float64                `json:"preco_edital"`
	MarketPrice      float64                `json:"preco_mercado"`
	Quantity         int                    `json:"quantidade"`
	PriorityLevel    types.PriorityLevel    `json:"priority_level"`
	Evidence         []string               `json:"evidencias"`
	Involved         *types.InvolvedParties `json:"envolvidos,omitempty"`
}

// Cases returns the filtered case list as news items. All filters apply
// before the result limit, so the limit never hides matching cases behind
// filtered-out ones.
func (s *DataService) Cases(filters CaseFilters) ([]NewsItem, error) {
	cases, err := s.store.LoadCases()
	if err != nil {
		return nil, err
	}

	items := make([]NewsItem, 0, filters.Limit)
	for _, c := range cases {
		if filters.RiskLevel != "" && !strings.EqualFold(string(c.RiskLevel), filters.RiskLevel) {
			continue
		}
		if filters.Agency != "" && !strings.Contains(strings.ToLower(c.Agency), strings.ToLower(filters.Agency)) {
			continue
		}
		if filters.Priority != "" && !strings.EqualFold(string(c.PriorityLevel), filters.Priority) {
			continue
		}
		items = append(items, toNewsItem(c))
		if len(items) >= filters.Limit {
			break
		}
	}
	return items, nil
}

func toNewsItem(c types.Case) NewsItem {
	return NewsItem{
		Title: fmt.Sprintf("🚨 ALERTA: %s", c.Title),
		Summary: fmt.Sprintf("Detectado superfaturamento de %.0f%% em licitação de %s. Valor estimado: R$ %s",
			c.PercentageDiff, c.Product, formatBRL(c.EstimatedValue)),
		Date:             c.OpeningDate,
		Agency:           c.Agency,
		Value:            fmt.Sprintf("R$ %s", formatBRL(c.EstimatedValue)),
		Risk:             c.RiskLevel,
		RiskLevel:        c.RiskLevel,
		RiskScore:        c.RiskScore,
		OverchargedValue: c.OverchargedValue,
		Status:           c.Status,
		Company:          c.WinningCompany,
		WinningCompany:   c.WinningCompany,
		CNPJ:             c.CNPJ,
		Product:          c.Product,
		EstimatedValue:   c.EstimatedValue,
		PercentageDiff:   c.PercentageDiff,
		NoticePrice:      c.NoticePrice,
		MarketPrice:      c.MarketPrice,
		Quantity:         c.Quantity,
		PriorityLevel:    c.PriorityLevel,
		Evidence:         c.Evidence,
		Involved:         c.Involved,
	}
}

// CaseByID returns the full persisted case, not the news-item projection.
func (s *DataService) CaseByID(id string) (types.Case, bool, error) {
	cases, err := s.store.LoadCases()
	if err != nil {
		return types.Case{}, false, err
	}
	for _, c := range cases {
		if c.ID == id {
			return c, true, nil
		}
	}
	return types.Case{}, false, nil
}

// AgencyGroup aggregates the cases of one issuing body.
type AgencyGroup struct {
	Agency  string  `json:"orgao"`
	Cases   int     `json:"casos"`
	Savings float64 `json:"economia"`
}

// CasesByAgency groups cases by issuing body, ordered by first appearance.
// Savings counts only positive overcharges: a winning bid below the market
// reference is not money recovered.
func (s *DataService) CasesByAgency() ([]AgencyGroup, error) {
	cases, err := s.store.LoadCases()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	groups := make([]AgencyGroup, 0)
	for _, c := range cases {
		i, ok := index[c.Agency]
		if !ok {
			i = len(groups)
			index[c.Agency] = i
			groups = append(groups, AgencyGroup{Agency: c.Agency})
		}
		groups[i].Cases++
		if c.OverchargedValue > 0 {
			groups[i].Savings += c.OverchargedValue
		}
	}
	return groups, nil
}

// CartelTypes returns the fixed catalogue of cartel pattern names the
// extractors are built around.
func (s *DataService) CartelTypes() []string {
	return []string{
		"Same Winner Always",
		"Price Bending",
		"Tailored Specifications",
		"Last Minute Bidders",
	}
}

// formatBRL renders a value with comma thousands separators and two decimal
// places, matching the feed's existing money formatting.
func formatBRL(value float64) string {
	s := fmt.Sprintf("%.2f", value)

	intPart := s[:len(s)-3]
	decPart := s[len(s)-3:]

	negative := false
	if strings.HasPrefix(intPart, "-") {
		negative = true
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if negative {
		return "-" + b.String() + decPart
	}
	return b.String() + decPart
}
