package market

import (
	"context"
	"hash/fnv"
)

// SimulatedWinRates is a stand-in for a procurement-history database. It
// implements analysis.WinRateSource with deterministic placeholder data:
// flagged companies report a high win rate, everyone else gets a stable
// pseudo-random rate in the unremarkable band. The detector contract only
// requires a win rate in [0,1]; where it comes from is this collaborator's
// concern.
type SimulatedWinRates struct {
	flagged map[string]bool
}

// NewSimulatedWinRates marks the given CNPJs as companies with a suspicious
// win history.
func NewSimulatedWinRates(flaggedCNPJs ...string) *SimulatedWinRates {
	flagged := make(map[string]bool, len(flaggedCNPJs))
	for _, cnpj := range flaggedCNPJs {
		flagged[cnpj] = true
	}
	return &SimulatedWinRates{flagged: flagged}
}

// WinRate returns the simulated historical win rate of a company with an
// issuing body. The same inputs always produce the same rate.
func (s *SimulatedWinRates) WinRate(_ context.Context, cnpj, agency string) (float64, error) {
	if s.flagged[cnpj] {
		return 0.85, nil
	}

	h := fnv.New32a()
	h.Write([]byte(cnpj))
	h.Write([]byte{'|'})
	h.Write([]byte(agency))

	// Map the hash into [0.10, 0.60), the band of ordinary suppliers.
	frac := float64(h.Sum32()%1000) / 1000
	return 0.10 + frac*0.50, nil
}
