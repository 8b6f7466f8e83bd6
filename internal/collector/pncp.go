package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hiperfaturometro/hiperfaturometro/internal/errors"
	"github.com/hiperfaturometro/hiperfaturometro/internal/monitoring"
	"github.com/hiperfaturometro/hiperfaturometro/internal/resilience"
	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

const (
	// DefaultPNCPBaseURL is the public consultation API of the Portal
	// Nacional de Contratações Públicas.
	DefaultPNCPBaseURL = "https://pncp.gov.br/api/consulta/v1"

	// modalidadePregao is the PNCP modality code for "Pregão Eletrônico".
	modalidadePregao = 5

	pncpPageSize = 50
)

// techTerms filters contratações down to IT procurement, the only category
// the reference price table covers.
var techTerms = []string{"notebook", "computador", "tablet", "equipamento", "software"}

// PNCPClient collects procurement records from the PNCP consultation API. It
// rate-limits itself client-side and retries transient upstream failures with
// bounded exponential backoff.
type PNCPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retryCfg   resilience.RetryConfig
	log        *monitoring.Logger
	maxRecords int
}

// NewPNCPClient creates a client against the given base URL (empty selects
// the public API).
func NewPNCPClient(baseURL string, log *monitoring.Logger) *PNCPClient {
	if baseURL == "" {
		baseURL = DefaultPNCPBaseURL
	}
	return &PNCPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		retryCfg:   resilience.DefaultRetryConfig(),
		log:        log,
		maxRecords: 5,
	}
}

// Name implements Source.
func (c *PNCPClient) Name() string {
	return "pncp"
}

// pncpContratacao is the subset of the PNCP contratação payload this
// collector reads.
type pncpContratacao struct {
	NumeroControlePNCP string  `json:"numeroControlePNCP"`
	AnoCompra          int     `json:"anoCompra"`
	SequencialCompra   int     `json:"sequencialCompra"`
	NumeroCompra       string  `json:"numeroCompra"`
	ObjetoCompra       string  `json:"objetoCompra"`
	ValorTotalEstimado float64 `json:"valorTotalEstimado"`
	DataAbertura       string  `json:"dataAberturaProposta"`
	DataEncerramento   string  `json:"dataEncerramentoProposta"`
	OrgaoEntidade      struct {
		CNPJ        string `json:"cnpj"`
		RazaoSocial string `json:"razaoSocial"`
	} `json:"orgaoEntidade"`
}

type pncpItem struct {
	NumeroItem             int     `json:"numeroItem"`
	Descricao              string  `json:"descricao"`
	Quantidade             float64 `json:"quantidade"`
	UnidadeMedida          string  `json:"unidadeMedida"`
	ValorUnitarioEstimado  float64 `json:"valorUnitarioEstimado"`
	InformacaoComplementar string  `json:"informacaoComplementar"`
}

type pncpResultado struct {
	NIFornecedor            string  `json:"niFornecedor"`
	NomeRazaoSocial         string  `json:"nomeRazaoSocialFornecedor"`
	ValorUnitarioHomologado float64 `json:"valorUnitarioHomologado"`
}

// Collect implements Source: one publication-window query, filtered to tech
// procurement, enriched with line items and per-item winners.
func (c *PNCPClient) Collect(ctx context.Context, lookbackDays int) ([]types.Procurement, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays)

	params := url.Values{}
	params.Set("dataInicial", start.Format("20060102"))
	params.Set("dataFinal", end.Format("20060102"))
	params.Set("codigoModalidadeContratacao", fmt.Sprintf("%d", modalidadePregao))
	params.Set("pagina", "1")
	params.Set("tamanhoPagina", fmt.Sprintf("%d", pncpPageSize))

	var page struct {
		Data []pncpContratacao `json:"data"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/contratacoes/publicacao?"+params.Encode(), &page); err != nil {
		return nil, errors.NewExternalAPIError("PNCP", err)
	}

	var records []types.Procurement
	for _, contratacao := range page.Data {
		if !isTechProcurement(contratacao.ObjetoCompra) {
			continue
		}
		records = append(records, c.toProcurement(ctx, contratacao))
		if len(records) >= c.maxRecords {
			break
		}
	}
	return records, nil
}

func isTechProcurement(subject string) bool {
	lower := strings.ToLower(subject)
	for _, term := range techTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// toProcurement maps a contratação to the internal record, fetching its line
// items and the first item's winner. Detail lookups are best effort: a
// contratação without reachable details still enters the batch with what the
// listing gave us.
func (c *PNCPClient) toProcurement(ctx context.Context, contratacao pncpContratacao) types.Procurement {
	record := types.Procurement{
		ID:             contratacao.NumeroControlePNCP,
		Number:         fmt.Sprintf("%s/%d", contratacao.NumeroCompra, contratacao.AnoCompra),
		Agency:         contratacao.OrgaoEntidade.RazaoSocial,
		Modality:       types.ModalityPregao,
		Subject:        contratacao.ObjetoCompra,
		OpeningDate:    parsePNCPTime(contratacao.DataAbertura),
		ClosingDate:    parsePNCPTime(contratacao.DataEncerramento),
		EstimatedValue: contratacao.ValorTotalEstimado,
		Status:         types.StatusOpen,
	}

	compraPath := fmt.Sprintf("%s/orgaos/%s/compras/%d/%d",
		c.baseURL, contratacao.OrgaoEntidade.CNPJ, contratacao.AnoCompra, contratacao.SequencialCompra)

	var items struct {
		Data []pncpItem `json:"data"`
	}
	if err := c.getJSON(ctx, compraPath+"/itens", &items); err != nil {
		c.log.Warn("PNCP items unavailable", "id", record.ID, "error", err.Error())
		return record
	}

	for _, item := range items.Data {
		estimated := item.ValorUnitarioEstimado
		record.Items = append(record.Items, types.LineItem{
			Code:           fmt.Sprintf("%03d", item.NumeroItem),
			Description:    item.Descricao,
			Quantity:       int(item.Quantidade),
			Unit:           item.UnidadeMedida,
			Specifications: item.InformacaoComplementar,
			EstimatedPrice: &estimated,
		})
	}

	if len(items.Data) > 0 {
		var results struct {
			Data []pncpResultado `json:"data"`
		}
		resultPath := fmt.Sprintf("%s/itens/%d/resultados", compraPath, items.Data[0].NumeroItem)
		if err := c.getJSON(ctx, resultPath, &results); err != nil {
			c.log.Warn("PNCP results unavailable", "id", record.ID, "error", err.Error())
			return record
		}
		for i, supplier := range results.Data {
			record.Bidders = append(record.Bidders, types.Bidder{
				CNPJ:          formatCNPJ(supplier.NIFornecedor),
				Name:          supplier.NomeRazaoSocial,
				ProposedPrice: supplier.ValorUnitarioHomologado,
				Rank:          i + 1,
				Eligible:      true,
			})
		}
	}

	return record
}

// getJSON performs a rate-limited GET with retry and decodes the body.
func (c *PNCPClient) getJSON(ctx context.Context, rawURL string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	resp, err := resilience.RetryHTTP(ctx, c.retryCfg, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "Hiperfaturometro/1.0 (Sistema de Detecção de Hiperfaturamento)")
		return c.httpClient.Do(req)
	})

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	c.log.ExternalAPILogger("PNCP", http.MethodGet, rawURL, statusCode, time.Since(start), err == nil && resp != nil && statusCode < 300)

	if err != nil {
		return err
	}
	if resp == nil {
		return errors.NewExternalAPIError("PNCP", fmt.Errorf("no response"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resilience.NewHTTPError(resp.StatusCode, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// parsePNCPTime parses the timestamp formats PNCP serves.
func parsePNCPTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// formatCNPJ renders a 14-digit tax id in the canonical punctuated form.
func formatCNPJ(digits string) string {
	if len(digits) != 14 {
		return digits
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s",
		digits[0:2], digits[2:5], digits[5:8], digits[8:12], digits[12:14])
}
