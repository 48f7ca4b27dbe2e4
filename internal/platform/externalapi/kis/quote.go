package kis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	quoteentity "kis_backend/internal/feature/quote/domain/entity"
	quoteusecase "kis_backend/internal/feature/quote/usecase"
	"kis_backend/internal/platform/externalapi/kis/dto"
)

// KISQuote fetches the current-price snapshot from the KIS quotation API.
type KISQuote struct {
	cfg    Config
	client *http.Client
}

// Compile-time check to ensure KISQuote implements QuoteRepository.
var _ quoteusecase.QuoteRepository = (*KISQuote)(nil)

// NewKISQuote creates a KISQuote with the given configuration and HTTP client.
func NewKISQuote(cfg Config, client *http.Client) *KISQuote {
	return &KISQuote{cfg: cfg, client: client}
}

// GetQuote returns the current-price snapshot for one symbol.
func (m *KISQuote) GetQuote(ctx context.Context, token, symbol string) (quoteentity.Quote, error) {
	q := url.Values{}
	q.Set("FID_COND_MRKT_DIV_CODE", m.cfg.MarketCode)
	q.Set("FID_INPUT_ISCD", symbol)

	u := fmt.Sprintf("%s/uapi/domestic-stock/v1/quotations/inquire-price?%s",
		m.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return quoteentity.Quote{}, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("authorization", "Bearer "+token)
	req.Header.Set("appkey", m.cfg.AppKey)
	req.Header.Set("appsecret", m.cfg.AppSecret)
	req.Header.Set("tr_id", "FHKST01010100") // domestic stock current price
	req.Header.Set("custtype", "P")

	res, err := m.client.Do(req)
	if err != nil {
		return quoteentity.Quote{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return quoteentity.Quote{}, &StatusError{Code: res.StatusCode}
	}

	var body dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return quoteentity.Quote{}, err
	}
	if body.RtCd != "" && body.RtCd != "0" {
		return quoteentity.Quote{}, fmt.Errorf("kis quote: %s (rt_cd=%s)", body.Msg1, body.RtCd)
	}

	out := body.Output
	name := out.Name
	if name == "" {
		name = symbol
	}
	return quoteentity.Quote{
		Code:         symbol,
		Name:         name,
		CurrentPrice: parseIntOrZero(out.CurrentPrice),
		PriceChange:  parseIntOrZero(out.PriceChange),
		ChangeRate:   parseFloatOrZero(out.ChangeRate),
		OpenPrice:    parseIntOrZero(out.OpenPrice),
		HighPrice:    parseIntOrZero(out.HighPrice),
		LowPrice:     parseIntOrZero(out.LowPrice),
		Volume:       parseIntOrZero(out.Volume),
	}, nil
}
