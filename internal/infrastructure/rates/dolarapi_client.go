// Package rates implementa la fuente de tasa de cambio Bs/USD: un cliente
// HTTP contra la cotización oficial publicada por dolarapi y una caché Redis
// opcional por delante (la tasa oficial cambia una vez al día).
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/abasto-api/internal/application/ports"
	"github.com/jhoicas/abasto-api/internal/domain"
)

var _ ports.RateSource = (*DolarAPIClient)(nil)

// DolarAPIClient consulta la cotización oficial Bs/USD.
// El endpoint por defecto es https://ve.dolarapi.com/v1/dolares/oficial.
type DolarAPIClient struct {
	url        string
	httpClient *http.Client
}

// NewDolarAPIClient construye el cliente.
func NewDolarAPIClient(url string) *DolarAPIClient {
	return &DolarAPIClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// dolarAPIResponse shape del endpoint de dolarapi.
type dolarAPIResponse struct {
	Promedio decimal.Decimal `json:"promedio"`
}

// CurrentRate devuelve la tasa Bs por USD vigente. Una tasa no positiva del
// upstream se reporta como ErrInvalidRate: nadie debe dividir entre ella.
func (c *DolarAPIClient) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rates: crear request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rates: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rates: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return decimal.Zero, fmt.Errorf("rates: leer respuesta: %w", err)
	}
	var out dolarAPIResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return decimal.Zero, fmt.Errorf("rates: deserializar respuesta: %w", err)
	}
	if !out.Promedio.IsPositive() {
		return decimal.Zero, domain.ErrInvalidRate
	}
	return out.Promedio, nil
}
