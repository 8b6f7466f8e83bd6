package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// exclusivityPhrases is the fixed vocabulary of the tailored-specification
// heuristic. This is a bag-of-phrases check, not semantic analysis: it only
// flags specifications that literally contain wording restricting suppliers.
var exclusivityPhrases = []string{
	"exclusivamente",
	"apenas",
	"somente",
	"obrigatoriamente",
	"marca específica",
	"modelo específico",
}

// detectExcessivePrice compares the winning bid for the first line item with
// the market reference price. An unknown or non-positive reference means the
// signal is unavailable and no evidence is emitted.
func (a *Analyzer) detectExcessivePrice(_ context.Context, rec types.Procurement) *types.Evidence {
	winner, ok := rec.Winner()
	if !ok || len(rec.Items) == 0 {
		return nil
	}

	reference, ok := a.prices.ReferencePrice(rec.Items[0].Description)
	if !ok || reference <= 0 {
		return nil
	}

	pctOver := (winner.ProposedPrice - reference) / reference * 100
	if pctOver <= a.cfg.ExcessivePricePct {
		return nil
	}

	return &types.Evidence{
		Kind:        types.EvidenceExcessivePrice,
		Description: fmt.Sprintf("Preço %.1f%% acima do mercado", pctOver),
		Score:       math.Min(100, pctOver),
		Details: map[string]any{
			"preco_proposto":       winner.ProposedPrice,
			"preco_mercado":        reference,
			"diferenca_percentual": pctOver,
		},
	}
}

// detectTailoredSpec scans the first line item's free-text specification for
// exclusivity wording. Each matched phrase adds a fixed increment; the
// accumulated score is not capped by match count.
func (a *Analyzer) detectTailoredSpec(_ context.Context, rec types.Procurement) *types.Evidence {
	if len(rec.Items) == 0 {
		return nil
	}

	spec := strings.ToLower(rec.Items[0].Specifications)
	score := 0.0
	for _, phrase := range exclusivityPhrases {
		if strings.Contains(spec, phrase) {
			score += 20
		}
	}

	if score <= a.cfg.TailoredSpecScore {
		return nil
	}

	return &types.Evidence{
		Kind:        types.EvidenceTailoredSpec,
		Description: "Especificações muito específicas detectadas",
		Score:       score,
		Details: map[string]any{
			"especificacoes":  rec.Items[0].Specifications,
			"score_suspeicao": score,
		},
	}
}

// detectCartelHistory looks up the winning bidder's historical win rate with
// the issuing body. A failed lookup is logged and treated as signal unknown.
func (a *Analyzer) detectCartelHistory(ctx context.Context, rec types.Procurement) *types.Evidence {
	winner, ok := rec.Winner()
	if !ok {
		return nil
	}

	rate, err := a.history.WinRate(ctx, winner.CNPJ, rec.Agency)
	if err != nil {
		slog.Warn("win-rate lookup unavailable", "cnpj", winner.CNPJ, "orgao", rec.Agency, "error", err)
		return nil
	}

	if rate <= a.cfg.CartelWinRate {
		return nil
	}

	return &types.Evidence{
		Kind:        types.EvidenceCartelHistory,
		Description: fmt.Sprintf("Empresa ganhou %.1f%% das licitações no órgão", rate*100),
		Score:       math.Min(100, rate*100),
		Details: map[string]any{
			"empresa":       winner.Name,
			"cnpj":          winner.CNPJ,
			"taxa_vitorias": rate,
			"orgao":         rec.Agency,
		},
	}
}

// detectLowCompetition flags procurements with fewer eligible bidders than
// the configured minimum. A count of zero short-circuits to the maximal
// score without any division or indexing.
func (a *Analyzer) detectLowCompetition(_ context.Context, rec types.Procurement) *types.Evidence {
	count := rec.EligibleBidders()
	if count >= a.cfg.MinBidders {
		return nil
	}

	return &types.Evidence{
		Kind:        types.EvidenceLowCompetition,
		Description: fmt.Sprintf("Apenas %d participante(s) habilitado(s)", count),
		Score:       math.Max(0, 100-float64(count)*50),
		Details: map[string]any{
			"num_participantes": count,
			"threshold":         a.cfg.MinBidders,
		},
	}
}

// detectSuspiciousDeadline flags procurements closing within fewer whole
// days than the configured threshold. Records already closed clamp to zero
// remaining days and score maximal suspicion.
func (a *Analyzer) detectSuspiciousDeadline(_ context.Context, rec types.Procurement) *types.Evidence {
	days := int(rec.ClosingDate.Sub(a.now()).Hours() / 24)
	if days < 0 {
		days = 0
	}
	if days >= a.cfg.DeadlineDays {
		return nil
	}

	return &types.Evidence{
		Kind:        types.EvidenceSuspiciousDeadline,
		Description: fmt.Sprintf("Apenas %d dias para fechamento", days),
		Score:       math.Max(0, 100-float64(days)*20),
		Details: map[string]any{
			"dias_para_fechamento": days,
			"threshold":            a.cfg.DeadlineDays,
		},
	}
}
