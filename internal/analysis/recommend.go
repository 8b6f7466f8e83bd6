package analysis

import "github.com/hiperfaturometro/hiperfaturometro/internal/types"

var kindRecommendations = map[types.EvidenceKind]string{
	types.EvidenceExcessivePrice: "Verificar preços de mercado atualizados",
	types.EvidenceTailoredSpec:   "Revisar especificações técnicas",
	types.EvidenceCartelHistory:  "Investigar histórico da empresa no órgão",
	types.EvidenceLowCompetition: "Aumentar prazo para mais participantes",
}

// Recommendations derives action items from the score band and the evidence
// kinds present. Output order is deterministic: tiered items first, then one
// item per distinct kind in evidence-list order.
func Recommendations(evidence []types.Evidence, score float64) []string {
	recs := []string{}

	switch {
	case score >= 80:
		recs = append(recs,
			"URGENTE: Investigação imediata recomendada",
			"Solicitar auditoria externa")
	case score >= 60:
		recs = append(recs,
			"Análise detalhada recomendada",
			"Verificar histórico da empresa")
	case score >= 40:
		recs = append(recs, "Monitoramento adicional recomendado")
	}

	seen := make(map[types.EvidenceKind]bool, len(evidence))
	for _, ev := range evidence {
		if seen[ev.Kind] {
			continue
		}
		seen[ev.Kind] = true
		if rec, ok := kindRecommendations[ev.Kind]; ok {
			recs = append(recs, rec)
		}
	}

	return recs
}
