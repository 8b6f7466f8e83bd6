package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		evidence []types.Evidence
		score    float64
		expected []string
	}{
		{
			name: "critical score leads with urgent items",
			evidence: []types.Evidence{
				{Kind: types.EvidenceExcessivePrice},
				{Kind: types.EvidenceCartelHistory},
			},
			score: 85,
			expected: []string{
				"URGENTE: Investigação imediata recomendada",
				"Solicitar auditoria externa",
				"Verificar preços de mercado atualizados",
				"Investigar histórico da empresa no órgão",
			},
		},
		{
			name: "high score band",
			evidence: []types.Evidence{
				{Kind: types.EvidenceTailoredSpec},
			},
			score: 65,
			expected: []string{
				"Análise detalhada recomendada",
				"Verificar histórico da empresa",
				"Revisar especificações técnicas",
			},
		},
		{
			name: "medium score band",
			evidence: []types.Evidence{
				{Kind: types.EvidenceLowCompetition},
			},
			score: 45,
			expected: []string{
				"Monitoramento adicional recomendado",
				"Aumentar prazo para mais participantes",
			},
		},
		{
			name: "low score has only kind items",
			evidence: []types.Evidence{
				{Kind: types.EvidenceExcessivePrice},
			},
			score:    20,
			expected: []string{"Verificar preços de mercado atualizados"},
		},
		{
			name: "duplicate kinds recommended once",
			evidence: []types.Evidence{
				{Kind: types.EvidenceExcessivePrice, Description: "item 1"},
				{Kind: types.EvidenceExcessivePrice, Description: "item 2"},
			},
			score:    20,
			expected: []string{"Verificar preços de mercado atualizados"},
		},
		{
			name: "kind without a mapped action is skipped",
			evidence: []types.Evidence{
				{Kind: types.EvidenceSuspiciousDeadline},
			},
			score:    20,
			expected: []string{},
		},
		{
			name:     "no evidence and low score",
			evidence: nil,
			score:    0,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Recommendations(tt.evidence, tt.score))
		})
	}
}
