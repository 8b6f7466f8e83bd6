package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

// syntheticProduct pairs an IT product with its fair unit price in BRL.
type syntheticProduct struct {
	Name      string
	FairPrice float64
	Category  string
}

var syntheticProducts = []syntheticProduct{
	{"Notebook Dell Latitude 5520", 2800.00, "notebook"},
	{"Notebook HP EliteBook 850 G8", 3200.00, "notebook"},
	{"Notebook Lenovo ThinkPad E15", 2900.00, "notebook"},
	{"Tablet Samsung Galaxy Tab A8", 1200.00, "tablet"},
	{"Tablet iPad 10.9\" 64GB Wi-Fi", 2800.00, "tablet"},
	{"Smartphone Samsung Galaxy A54 5G", 1800.00, "smartphone"},
	{"Smartphone Motorola Moto G73 5G", 1400.00, "smartphone"},
	{"Computador Desktop HP EliteDesk 800 G8", 3200.00, "desktop"},
	{"Monitor LG 24\" Full HD", 1200.00, "monitor"},
	{"Impressora HP LaserJet Pro M404dn", 2500.00, "impressora"},
	{"Servidor Dell PowerEdge R750", 180000.00, "servidor"},
	{"Switch Cisco Catalyst 2960-X", 20000.00, "rede"},
	{"Projetor Epson PowerLite 1781W", 3500.00, "projetor"},
	{"Roteador TP-Link Archer AX73", 1200.00, "rede"},
	{"Câmera IP Hikvision DS-2CD2385G1", 4000.00, "seguranca"},
	{"Tablet Samsung Galaxy Tab S8 128GB", 4500.00, "tablet"},
}

var syntheticAgencies = []string{
	"Ministério da Educação", "Ministério da Saúde", "Ministério da Defesa",
	"Prefeitura de São Paulo", "Prefeitura do Rio de Janeiro", "Prefeitura de Belo Horizonte",
	"Governo do Estado de São Paulo", "Governo do Estado do Rio de Janeiro",
	"Tribunal de Contas da União", "Tribunal Superior do Trabalho",
	"Ministério das Comunicações", "Polícia Federal", "Receita Federal",
	"Prefeitura de Salvador", "Prefeitura de Brasília", "Prefeitura de Fortaleza",
	"Governo do Estado de Minas Gerais", "Governo do Estado da Bahia",
	"Ministério da Justiça", "Ministério da Fazenda",
}

var syntheticCompanies = []string{
	"Tech Solutions LTDA", "Digital Devices S.A.", "Global Tech Solutions",
	"Mobile Tech LTDA", "Computer World LTDA", "Smartphone Tech S.A.",
	"Lenovo Solutions Brasil", "Apple Solutions LTDA", "HP Solutions Brasil",
	"Motorola Solutions", "Display Solutions LTDA", "Print Tech Brasil",
	"Server Solutions S.A.", "Network Tech LTDA", "Projector Solutions",
	"WiFi Solutions Brasil", "Security Tech LTDA", "Tablet Solutions S.A.",
	"IT Solutions Group", "Digital Innovation LTDA", "TechCorp Brasil",
	"Inovação Digital S.A.", "Sistemas Avançados LTDA", "Tecnologia Moderna",
	"Digital Systems", "TechBridge Solutions", "Innovation Hub LTDA",
}

// Synthetic is a fixture source standing in for a transparency-portal
// scraper. It emits a crowd of fairly priced procurements plus a small fixed
// set of overpriced ones, so the pipeline always has both negatives and
// positives to work with. Output is deterministic for a given clock.
type Synthetic struct {
	normalCount int
	seed        int64
	now         func() time.Time
}

// NewSynthetic returns the default fixture source: 200 fair records plus the
// curated suspicious set.
func NewSynthetic() *Synthetic {
	return &Synthetic{normalCount: 200, seed: 20240131, now: time.Now}
}

// Name implements Source.
func (s *Synthetic) Name() string {
	return "portal-transparencia-sintetico"
}

// Collect implements Source. lookbackDays is accepted for interface parity;
// the fixture set always spans the last 30 days.
func (s *Synthetic) Collect(ctx context.Context, lookbackDays int) ([]types.Procurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := s.normalRecords()
	records = append(records, s.suspiciousRecords()...)
	return records, nil
}

// SuspiciousCNPJs returns the tax ids of the winning companies in the curated
// overpriced records. Wiring these into the win-rate simulation gives the
// cartel extractor consistent positives.
func (s *Synthetic) SuspiciousCNPJs() []string {
	var cnpjs []string
	for _, rec := range s.suspiciousRecords() {
		if winner, ok := rec.Winner(); ok {
			cnpjs = append(cnpjs, winner.CNPJ)
		}
	}
	return cnpjs
}

// normalRecords generates fairly priced procurements. Ids start at 101 so
// they never collide with the curated suspicious ids PT-2024-001..006.
func (s *Synthetic) normalRecords() []types.Procurement {
	rng := rand.New(rand.NewSource(s.seed))
	now := s.now()
	records := make([]types.Procurement, 0, s.normalCount)

	for i := 0; i < s.normalCount; i++ {
		product := syntheticProducts[rng.Intn(len(syntheticProducts))]
		agency := syntheticAgencies[rng.Intn(len(syntheticAgencies))]
		company := syntheticCompanies[rng.Intn(len(syntheticCompanies))]

		quantity := 50 + rng.Intn(951)
		// Fair price with a small spread, never past the excessive-price
		// threshold.
		proposed := product.FairPrice * (1 + (rng.Float64()*0.10 - 0.05))
		seq := 101 + i

		records = append(records, types.Procurement{
			ID:             fmt.Sprintf("PT-2024-%03d", seq),
			Number:         fmt.Sprintf("%03d/2024", seq),
			Agency:         agency,
			Modality:       types.ModalityPregao,
			Subject:        fmt.Sprintf("Aquisição de %s para modernização tecnológica", product.Name),
			OpeningDate:    now.AddDate(0, 0, -(1 + rng.Intn(30))),
			ClosingDate:    now.AddDate(0, 0, 20+rng.Intn(21)),
			EstimatedValue: product.FairPrice * float64(quantity),
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           fmt.Sprintf("%03d", seq),
				Description:    product.Name,
				Quantity:       quantity,
				Unit:           "UN",
				Specifications: fmt.Sprintf("Especificações técnicas padrão para %s", product.Category),
			}},
			Bidders: []types.Bidder{{
				CNPJ:          randomCNPJ(rng),
				Name:          company,
				ProposedPrice: proposed,
				Rank:          1,
				Eligible:      true,
			}},
		})
	}

	return records
}

func randomCNPJ(rng *rand.Rand) string {
	return fmt.Sprintf("%02d.%03d.%03d/0001-%02d",
		10+rng.Intn(90), 100+rng.Intn(900), 100+rng.Intn(900), 10+rng.Intn(90))
}

// suspiciousRecords is the curated overpriced set, modeled on real IT
// procurement cases.
func (s *Synthetic) suspiciousRecords() []types.Procurement {
	now := s.now()

	return []types.Procurement{
		{
			ID:             "PT-2024-001",
			Number:         "001/2024",
			Agency:         "Ministério da Educação",
			Modality:       types.ModalityPregao,
			Subject:        "Aquisição de notebooks para laboratórios de informática",
			OpeningDate:    now.AddDate(0, 0, -5),
			ClosingDate:    now.AddDate(0, 0, 25),
			EstimatedValue: 1800000.00,
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           "001",
				Description:    "Notebook Dell Latitude 5520",
				Quantity:       500,
				Unit:           "UN",
				Specifications: "Intel Core i5-1135G7, 8GB RAM DDR4, SSD 256GB, Tela 15.6\" Full HD, Windows 11 Pro",
			}},
			Bidders: []types.Bidder{
				{CNPJ: "12.345.678/0001-90", Name: "Tech Solutions LTDA", ProposedPrice: 3600.00, Rank: 1, Eligible: true},
			},
		},
		{
			ID:             "PT-2024-002",
			Number:         "002/2024",
			Agency:         "Prefeitura de São Paulo",
			Modality:       types.ModalityPregao,
			Subject:        "Aquisição de tablets para programa de educação digital",
			OpeningDate:    now.AddDate(0, 0, -3),
			ClosingDate:    now.AddDate(0, 0, 27),
			EstimatedValue: 1800000.00,
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           "002",
				Description:    "Tablet Samsung Galaxy Tab A8",
				Quantity:       1000,
				Unit:           "UN",
				Specifications: "Tela 10.5\", 4GB RAM, 64GB Armazenamento, Android 11, Wi-Fi, Câmera 8MP",
			}},
			Bidders: []types.Bidder{
				{CNPJ: "98.765.432/0001-10", Name: "Digital Devices S.A.", ProposedPrice: 1800.00, Rank: 1, Eligible: true},
				{CNPJ: "11.222.333/0001-44", Name: "Mobile Tech LTDA", ProposedPrice: 1200.00, Rank: 2, Eligible: true},
			},
		},
		{
			ID:             "PT-2024-003",
			Number:         "003/2024",
			Agency:         "Governo do Estado de São Paulo",
			Modality:       types.ModalityPregao,
			Subject:        "Aquisição de computadores desktop para modernização administrativa",
			OpeningDate:    now.AddDate(0, 0, -2),
			ClosingDate:    now.AddDate(0, 0, 28),
			EstimatedValue: 2940000.00,
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           "003",
				Description:    "Computador Desktop HP EliteDesk 800 G8",
				Quantity:       700,
				Unit:           "UN",
				Specifications: "Intel Core i7-11700, 16GB RAM DDR4, SSD 512GB, Windows 11 Pro, Monitor 24\"",
			}},
			Bidders: []types.Bidder{
				{CNPJ: "33.444.555/0001-66", Name: "Global Tech Solutions", ProposedPrice: 4200.00, Rank: 1, Eligible: true},
				{CNPJ: "77.888.999/0001-88", Name: "Computer World LTDA", ProposedPrice: 3200.00, Rank: 2, Eligible: true},
				{CNPJ: "55.666.777/0001-99", Name: "TechMaster S.A.", ProposedPrice: 3500.00, Rank: 3, Eligible: true},
			},
		},
		{
			ID:             "PT-2024-004",
			Number:         "004/2024",
			Agency:         "Ministério da Saúde",
			Modality:       types.ModalityPregao,
			Subject:        "Aquisição de smartphones para agentes de saúde",
			OpeningDate:    now.AddDate(0, 0, -1),
			ClosingDate:    now.AddDate(0, 0, 29),
			EstimatedValue: 1760000.00,
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           "004",
				Description:    "Smartphone Samsung Galaxy A54 5G",
				Quantity:       800,
				Unit:           "UN",
				Specifications: "Tela 6.4\", 8GB RAM, 128GB Armazenamento, Android 13, Câmera 50MP, 5G",
			}},
			Bidders: []types.Bidder{
				{CNPJ: "99.111.222/0001-33", Name: "Mobile Solutions LTDA", ProposedPrice: 2200.00, Rank: 1, Eligible: true},
				{CNPJ: "44.555.666/0001-77", Name: "Smartphone Tech S.A.", ProposedPrice: 1800.00, Rank: 2, Eligible: true},
			},
		},
		{
			ID:             "PT-2024-005",
			Number:         "005/2024",
			Agency:         "Prefeitura do Rio de Janeiro",
			Modality:       types.ModalityPregao,
			Subject:        "Aquisição de notebooks para secretarias municipais",
			OpeningDate:    now.AddDate(0, 0, -4),
			ClosingDate:    now.AddDate(0, 0, 26),
			EstimatedValue: 1500000.00,
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           "005",
				Description:    "Notebook Lenovo ThinkPad E15",
				Quantity:       400,
				Unit:           "UN",
				Specifications: "Intel Core i5-1235U, 8GB RAM DDR4, SSD 256GB, Tela 15.6\" Full HD, Windows 11 Pro",
			}},
			Bidders: []types.Bidder{
				{CNPJ: "22.333.444/0001-55", Name: "Lenovo Solutions Brasil", ProposedPrice: 3750.00, Rank: 1, Eligible: true},
			},
		},
		{
			ID:             "PT-2024-006",
			Number:         "006/2024",
			Agency:         "Ministério da Justiça",
			Modality:       types.ModalityPregao,
			Subject:        "Aquisição de tablets para digitalização de processos",
			OpeningDate:    now.AddDate(0, 0, -6),
			ClosingDate:    now.AddDate(0, 0, 24),
			EstimatedValue: 1050000.00,
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           "006",
				Description:    "Tablet iPad 10.9\" 64GB Wi-Fi",
				Quantity:       300,
				Unit:           "UN",
				Specifications: "Tela 10.9\" Liquid Retina, Chip A14 Bionic, 64GB, Wi-Fi, iPadOS 16, Câmera 12MP",
			}},
			Bidders: []types.Bidder{
				{CNPJ: "66.777.888/0001-11", Name: "Apple Solutions LTDA", ProposedPrice: 3500.00, Rank: 1, Eligible: true},
				{CNPJ: "88.999.000/0001-22", Name: "Tablet Tech S.A.", ProposedPrice: 3800.00, Rank: 2, Eligible: true},
			},
		},
		{
			ID:             "CN-2024-001",
			Number:         "001/2024/CN",
			Agency:         "Tribunal de Contas da União",
			Modality:       types.ModalityPregao,
			Subject:        "Aquisição de notebooks para auditoria fiscal",
			OpeningDate:    now.AddDate(0, 0, -7),
			ClosingDate:    now.AddDate(0, 0, 23),
			EstimatedValue: 900000.00,
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           "001",
				Description:    "Notebook HP EliteBook 850 G8",
				Quantity:       200,
				Unit:           "UN",
				Specifications: "Intel Core i7-1165G7, 16GB RAM DDR4, SSD 512GB, Tela 15.6\" Full HD, Windows 11 Pro",
			}},
			Bidders: []types.Bidder{
				{CNPJ: "15.123.456/0001-78", Name: "HP Solutions Brasil", ProposedPrice: 4500.00, Rank: 1, Eligible: true},
				{CNPJ: "25.234.567/0001-89", Name: "TechCorp LTDA", ProposedPrice: 4800.00, Rank: 2, Eligible: true},
			},
		},
		{
			ID:             "CN-2024-002",
			Number:         "002/2024/CN",
			Agency:         "Receita Federal",
			Modality:       types.ModalityPregao,
			Subject:        "Aquisição de smartphones para fiscalização",
			OpeningDate:    now.AddDate(0, 0, -5),
			ClosingDate:    now.AddDate(0, 0, 25),
			EstimatedValue: 900000.00,
			Status:         types.StatusOpen,
			Items: []types.LineItem{{
				Code:           "002",
				Description:    "Smartphone Motorola Moto G73 5G",
				Quantity:       500,
				Unit:           "UN",
				Specifications: "Tela 6.5\", 8GB RAM, 128GB Armazenamento, Android 13, Câmera 50MP, 5G",
			}},
			Bidders: []types.Bidder{
				{CNPJ: "35.345.678/0001-90", Name: "Motorola Solutions", ProposedPrice: 1800.00, Rank: 1, Eligible: true},
			},
		},
	}
}
