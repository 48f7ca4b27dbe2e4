package kis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chartentity "kis_backend/internal/feature/chart/domain/entity"
)

func testConfig(baseURL string) Config {
	return Config{
		AppKey:     "test-key",
		AppSecret:  "test-secret",
		BaseURL:    baseURL,
		MarketCode: "J",
		Timeout:    5 * time.Second,
	}
}

func TestKISMarket_GetChart_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("FID_INPUT_ISCD") != "005930" {
			t.Errorf("expected symbol 005930, got %s", q.Get("FID_INPUT_ISCD"))
		}
		if q.Get("FID_PERIOD_DIV_CODE") != "D" {
			t.Errorf("expected period D, got %s", q.Get("FID_PERIOD_DIV_CODE"))
		}
		if q.Get("FID_ORG_ADJ_PRC") != "0" {
			t.Errorf("expected unadjusted prices, got %s", q.Get("FID_ORG_ADJ_PRC"))
		}
		if q.Get("FID_INPUT_DATE_2") != "20240614" {
			t.Errorf("expected end date 20240614, got %s", q.Get("FID_INPUT_DATE_2"))
		}
		if got := r.Header.Get("authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", got)
		}
		if got := r.Header.Get("tr_id"); got != "FHKST03010100" {
			t.Errorf("expected chart tr_id, got %q", got)
		}
		if got := r.Header.Get("appkey"); got != "test-key" {
			t.Errorf("expected appkey header, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"rt_cd": "0",
			"msg_cd": "MCA00000",
			"msg1": "OK",
			"output2": [
				{
					"stck_bsop_date": "20240614",
					"stck_oprc": "78000",
					"stck_hgpr": "78500",
					"stck_lwpr": "77300",
					"stck_clpr": "78300",
					"acml_vol": "12345678"
				},
				{
					"stck_bsop_date": "20240613",
					"stck_oprc": "77500",
					"stck_hgpr": "78100",
					"stck_lwpr": "77200",
					"stck_clpr": "77900",
					"acml_vol": "11111111"
				}
			]
		}`))
	}))
	defer server.Close()

	market := NewKISMarket(testConfig(server.URL), server.Client())
	end := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	bars, err := market.GetChart(context.Background(), "test-token", "005930", chartentity.IntervalDay, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	// Upstream order (most recent first) is preserved.
	if bars[0].Date != "2024-06-14" {
		t.Errorf("expected normalized date 2024-06-14, got %s", bars[0].Date)
	}
	if bars[0].Close != 78300 {
		t.Errorf("expected close 78300, got %d", bars[0].Close)
	}
	if bars[0].Volume != 12345678 {
		t.Errorf("expected volume 12345678, got %d", bars[0].Volume)
	}
	if bars[1].Date != "2024-06-13" {
		t.Errorf("expected date 2024-06-13, got %s", bars[1].Date)
	}
	// Symbol and interval are the caller's responsibility.
	if bars[0].Symbol != "" || bars[0].Interval != "" {
		t.Errorf("expected empty keys, got %q/%q", bars[0].Symbol, bars[0].Interval)
	}
}

func TestKISMarket_GetChart_SkipsPaddingRows(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"rt_cd": "0",
			"output2": [
				{"stck_bsop_date": "20240614", "stck_clpr": "78300"},
				{"stck_bsop_date": "", "stck_clpr": ""},
				{"stck_bsop_date": "", "stck_clpr": ""}
			]
		}`))
	}))
	defer server.Close()

	market := NewKISMarket(testConfig(server.URL), server.Client())

	bars, err := market.GetChart(context.Background(), "tok", "005930", chartentity.IntervalDay, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected padding rows skipped, got %d bars", len(bars))
	}
}

func TestKISMarket_GetChart_BlankNumericFieldsParseToZero(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"rt_cd": "0",
			"output2": [
				{"stck_bsop_date": "20240614", "stck_oprc": "", "stck_hgpr": "x", "stck_lwpr": "77300", "stck_clpr": "78300", "acml_vol": ""}
			]
		}`))
	}))
	defer server.Close()

	market := NewKISMarket(testConfig(server.URL), server.Client())

	bars, err := market.GetChart(context.Background(), "tok", "005930", chartentity.IntervalDay, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
	if bars[0].Open != 0 || bars[0].High != 0 || bars[0].Volume != 0 {
		t.Errorf("blank fields must parse to zero, got %+v", bars[0])
	}
	if bars[0].Low != 77300 || bars[0].Close != 78300 {
		t.Errorf("valid fields must still parse, got %+v", bars[0])
	}
}

func TestKISMarket_GetChart_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden},
		{"internal server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			market := NewKISMarket(testConfig(server.URL), server.Client())

			_, err := market.GetChart(context.Background(), "tok", "005930", chartentity.IntervalDay, time.Time{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected StatusError, got %T", err)
			}
			if se.Code != tt.statusCode {
				t.Errorf("expected code %d, got %d", tt.statusCode, se.Code)
			}
		})
	}
}

func TestKISMarket_GetChart_UpstreamErrorCode(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rt_cd": "1", "msg1": "invalid symbol", "output2": []}`))
	}))
	defer server.Close()

	market := NewKISMarket(testConfig(server.URL), server.Client())

	_, err := market.GetChart(context.Background(), "tok", "BADSYM", chartentity.IntervalDay, time.Time{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid symbol") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}

func TestKISMarket_GetChart_ZeroEndDefaultsToKSTToday(t *testing.T) {
	t.Parallel()

	var gotEnd string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEnd = r.URL.Query().Get("FID_INPUT_DATE_2")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rt_cd": "0", "output2": []}`))
	}))
	defer server.Close()

	m := NewKISMarket(testConfig(server.URL), server.Client())

	if _, err := m.GetChart(context.Background(), "test-token", "005930", chartentity.IntervalDay, time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := marketNow().Format("20060102"); gotEnd != want {
		t.Errorf("expected the KST trading date %s, got %s", want, gotEnd)
	}
}

func TestMarketNow_UsesKST(t *testing.T) {
	t.Parallel()

	now := marketNow()

	_, offset := now.Zone()
	if offset != 9*60*60 {
		t.Errorf("expected a UTC+9 zone offset, got %d", offset)
	}
	if d := time.Since(now); d < -time.Second || d > time.Second {
		t.Errorf("expected the current instant, drifted by %v", d)
	}
}

func TestWindowStart(t *testing.T) {
	t.Parallel()

	end := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		interval chartentity.Interval
		want     time.Time
	}{
		{chartentity.IntervalDay, end.AddDate(0, 0, -30)},
		{chartentity.IntervalWeek, end.AddDate(0, 0, -210)},
		{chartentity.IntervalMonth, end.AddDate(0, -30, 0)},
	}

	for _, tt := range tests {
		if got := windowStart(end, tt.interval); !got.Equal(tt.want) {
			t.Errorf("windowStart(%s): expected %v, got %v", tt.interval, tt.want, got)
		}
	}
}
