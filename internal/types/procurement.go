package types

import "time"

// Status of a procurement process as published by the issuing body.
type Status string

const (
	StatusOpen      Status = "Aberta"
	StatusClosed    Status = "Fechada"
	StatusCancelled Status = "Cancelada"
	StatusSuspended Status = "Suspensa"
)

// Modality is the legal modality under which the procurement runs.
type Modality string

const (
	ModalityConcorrencia Modality = "Concorrência"
	ModalityTomadaPrecos Modality = "Tomada de Preços"
	ModalityPregao       Modality = "Pregão"
	ModalityRDC          Modality = "RDC"
)

// Bidder is one company competing for a procurement.
//
// Rank carries the "classificacao" value stated in the notice and is
// informational only: ranks are not required to be unique or contiguous, and
// the winner is always the bidder with the lowest proposed price.
type Bidder struct {
	CNPJ          string  `json:"cnpj"`
	Name          string  `json:"nome"`
	ProposedPrice float64 `json:"preco_proposto"`
	Rank          int     `json:"classificacao"`
	Eligible      bool    `json:"habilitado"`
}

// LineItem is one purchasable item of a procurement notice.
type LineItem struct {
	Code           string   `json:"codigo"`
	Description    string   `json:"descricao"`
	Quantity       int      `json:"quantidade"`
	Unit           string   `json:"unidade"`
	Specifications string   `json:"especificacoes"`
	EstimatedPrice *float64 `json:"preco_estimado,omitempty"`
}

// Procurement is one public purchasing process ("licitação"). Records are
// immutable inputs: collectors produce them once per batch run and nothing
// downstream mutates them.
type Procurement struct {
	ID             string     `json:"id"`
	Number         string     `json:"numero"`
	Agency         string     `json:"orgao"`
	Modality       Modality   `json:"modalidade"`
	Subject        string     `json:"objeto"`
	OpeningDate    time.Time  `json:"data_abertura"`
	ClosingDate    time.Time  `json:"data_fechamento"`
	EstimatedValue float64    `json:"valor_estimado"`
	Status         Status     `json:"status"`
	Items          []LineItem `json:"itens"`
	Bidders        []Bidder   `json:"participantes"`
	NoticeURL      string     `json:"edital_url,omitempty"`
	Notes          string     `json:"observacoes,omitempty"`
}

// Winner returns the bidder with the lowest proposed price. The stated rank
// is deliberately ignored: published rankings can disagree with price order,
// and the lowest bid wins regardless.
func (p *Procurement) Winner() (Bidder, bool) {
	if len(p.Bidders) == 0 {
		return Bidder{}, false
	}
	winner := p.Bidders[0]
	for _, b := range p.Bidders[1:] {
		if b.ProposedPrice < winner.ProposedPrice {
			winner = b
		}
	}
	return winner, true
}

// EligibleBidders counts bidders flagged as habilitado.
func (p *Procurement) EligibleBidders() int {
	n := 0
	for _, b := range p.Bidders {
		if b.Eligible {
			n++
		}
	}
	return n
}
