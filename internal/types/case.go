package types

// PriorityLevel is the investigation-urgency tier of a materialized case.
// It is derived from the score with its own threshold table and is not a
// copy of the risk level.
type PriorityLevel string

const (
	PriorityLow      PriorityLevel = "Baixa"
	PriorityMedium   PriorityLevel = "Média"
	PriorityHigh     PriorityLevel = "Alta"
	PriorityCritical PriorityLevel = "Crítica"
)

// Company holds the winning company block of the involved-parties data.
// Everything beyond name and CNPJ is simulated placeholder data standing in
// for a future corporate-registry integration.
type Company struct {
	Name          string   `json:"nome"`
	CNPJ          string   `json:"cnpj"`
	Partners      []string `json:"socios"`
	PastWins      int      `json:"historico_vitorias"`
	AnnualRevenue float64  `json:"faturamento_anual"`
}

// Approver is the simulated approving official of a case.
type Approver struct {
	Name             string `json:"nome"`
	Role             string `json:"cargo"`
	Agency           string `json:"orgao"`
	PastProcurements int    `json:"historico_licitacoes"`
	TimeInRole       string `json:"tempo_cargo"`
}

// InvolvedParties is the placeholder involved-parties block of a case.
type InvolvedParties struct {
	Company  Company  `json:"empresa"`
	Approver Approver `json:"aprovador"`
}

// Case is the persisted, API-facing join of one procurement record and its
// analysis, materialized only for analyses at or above medium risk.
type Case struct {
	ID               string           `json:"id"`
	Title            string           `json:"titulo"`
	Agency           string           `json:"orgao"`
	OpeningDate      string           `json:"data_abertura"`
	EstimatedValue   float64          `json:"valor_estimado"`
	WinningCompany   string           `json:"empresa_vencedora"`
	CNPJ             string           `json:"cnpj"`
	Product          string           `json:"produto"`
	Quantity         int              `json:"quantidade"`
	NoticePrice      float64          `json:"preco_edital"`
	MarketPrice      float64          `json:"preco_mercado"`
	PercentageDiff   float64          `json:"diferenca_percentual"`
	OverchargedValue float64          `json:"valor_superfaturado"`
	Evidence         []string         `json:"evidencias"`
	Status           string           `json:"status"`
	RiskLevel        RiskLevel        `json:"nivel_risco"`
	RiskScore        int              `json:"risk_score"`
	PriorityLevel    PriorityLevel    `json:"priority_level"`
	Involved         *InvolvedParties `json:"envolvidos,omitempty"`
}
