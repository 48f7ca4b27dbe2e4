package kis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	chartentity "kis_backend/internal/feature/chart/domain/entity"
	chartusecase "kis_backend/internal/feature/chart/usecase"
	"kis_backend/internal/platform/externalapi/kis/dto"
)

// KISMarket fetches OHLCV chart pages from the KIS quotation API.
type KISMarket struct {
	cfg    Config
	client *http.Client
}

// Compile-time check to ensure KISMarket implements MarketRepository.
var _ chartusecase.MarketRepository = (*KISMarket)(nil)

// NewKISMarket creates a KISMarket with the given configuration and HTTP client.
func NewKISMarket(cfg Config, client *http.Client) *KISMarket {
	return &KISMarket{cfg: cfg, client: client}
}

// marketNow returns the current time in the exchange's timezone. The FID date
// params are KST calendar dates, so a server west of UTC+9 must not use its
// local date or the default window can miss the current trading day.
func marketNow() time.Time {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return time.Now().In(loc)
}

// windowStart computes the start date for a window ending at end. Each window
// covers entity.WindowSize bars, so the calendar span depends on the interval
// (30 trading days fit in ~30 calendar days only approximately; the spans are
// generous and the upstream bounds the page at 30 bars regardless).
func windowStart(end time.Time, interval chartentity.Interval) time.Time {
	switch interval {
	case chartentity.IntervalWeek:
		return end.AddDate(0, 0, -7*chartentity.WindowSize)
	case chartentity.IntervalMonth:
		return end.AddDate(0, -chartentity.WindowSize, 0)
	default:
		return end.AddDate(0, 0, -chartentity.WindowSize)
	}
}

// GetChart returns at most entity.WindowSize bars for the window ending at
// end; a zero end means the most recent window. Bars are returned in upstream
// order (most recent first) with Symbol/Interval left empty for the caller to
// fill. Blank or malformed numeric fields parse to zero rather than failing
// the page.
func (m *KISMarket) GetChart(ctx context.Context, token, symbol string, interval chartentity.Interval, end time.Time) ([]chartentity.Bar, error) {
	if end.IsZero() {
		end = marketNow()
	}
	start := windowStart(end, interval)

	q := url.Values{}
	q.Set("FID_COND_MRKT_DIV_CODE", m.cfg.MarketCode)
	q.Set("FID_INPUT_ISCD", symbol)
	q.Set("FID_INPUT_DATE_1", start.Format("20060102"))
	q.Set("FID_INPUT_DATE_2", end.Format("20060102"))
	q.Set("FID_PERIOD_DIV_CODE", string(interval))
	q.Set("FID_ORG_ADJ_PRC", "0") // unadjusted prices

	u := fmt.Sprintf("%s/uapi/domestic-stock/v1/quotations/inquire-daily-itemchartprice?%s",
		m.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("authorization", "Bearer "+token)
	req.Header.Set("appkey", m.cfg.AppKey)
	req.Header.Set("appsecret", m.cfg.AppSecret)
	req.Header.Set("tr_id", "FHKST03010100") // domestic stock period chart
	req.Header.Set("custtype", "P")

	res, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.RtCd != "" && body.RtCd != "0" {
		return nil, fmt.Errorf("kis chart: %s (rt_cd=%s)", body.Msg1, body.RtCd)
	}

	bars := make([]chartentity.Bar, 0, len(body.Output2))
	for _, v := range body.Output2 {
		if v.Date == "" {
			// The upstream pads short pages with empty rows; skip them.
			continue
		}
		bars = append(bars, chartentity.Bar{
			Date:   normalizeDate(v.Date),
			Open:   parseIntOrZero(v.Open),
			High:   parseIntOrZero(v.High),
			Low:    parseIntOrZero(v.Low),
			Close:  parseIntOrZero(v.Close),
			Volume: parseIntOrZero(v.Volume),
		})
	}
	return bars, nil
}
