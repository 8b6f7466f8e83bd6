package types

import "time"

// RiskLevel is the coarse classification derived from the overall score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Baixo"
	RiskMedium   RiskLevel = "Médio"
	RiskHigh     RiskLevel = "Alto"
	RiskCritical RiskLevel = "Crítico"
)

var riskOrder = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// AtLeast reports whether r is as severe as other or more.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return riskOrder[r] >= riskOrder[other]
}

// EvidenceKind identifies one suspicious signal a detector can emit.
type EvidenceKind string

const (
	EvidenceExcessivePrice     EvidenceKind = "preco_excessivo"
	EvidenceTailoredSpec       EvidenceKind = "especificacoes_tailor_made"
	EvidenceCartelHistory      EvidenceKind = "empresa_cartel"
	EvidenceLowCompetition     EvidenceKind = "baixa_concorrencia"
	EvidenceSuspiciousDeadline EvidenceKind = "prazo_suspeito"
	EvidenceSuspiciousHistory  EvidenceKind = "historico_suspeito"
)

// Evidence is one detected suspicious signal with a severity score in
// [0,100]. Produced fresh per analysis and never mutated.
type Evidence struct {
	Kind        EvidenceKind   `json:"tipo"`
	Description string         `json:"descricao"`
	Score       float64        `json:"score"`
	Details     map[string]any `json:"detalhes,omitempty"`
}

// Analysis is the risk assessment of a single procurement record. Created
// once per record per batch run and immutable afterwards.
type Analysis struct {
	ProcurementID   string     `json:"licitacao_id"`
	AnalyzedAt      time.Time  `json:"data_analise"`
	Score           float64    `json:"score_geral"`
	RiskLevel       RiskLevel  `json:"nivel_risco"`
	Evidence        []Evidence `json:"evidencias"`
	Recommendations []string   `json:"recomendacoes"`
	Confidence      float64    `json:"confiabilidade"`
	Analyst         string     `json:"analista_responsavel"`
}
