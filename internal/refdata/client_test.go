package refdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthlab/wealth-calculator/internal/config"
	"github.com/wealthlab/wealth-calculator/internal/domain"
)

type backend struct {
	t            *testing.T
	exchangeHits atomic.Int32
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path
	switch {
	case path == "/api/v1/domestic-etfs":
		assert.Equal(b.t, "high_dividend", r.URL.Query().Get("etf_type"))
		fmt.Fprint(w, `[{"id":7,"ticker":"441640","name":"Covered Call","etf_type":"high_dividend","etf_tax_type":"A"}]`)
	case path == "/api/v1/domestic-etfs-daily-chart/etf/7/period":
		assert.Equal(b.t, "6", r.URL.Query().Get("months_ago"))
		fmt.Fprint(w, `{"date":"2025-01-02","close":"9000"}`)
	case path == "/api/v1/domestic-etfs-daily-chart/etf/7/latest":
		fmt.Fprint(w, `{"date":"2025-07-01","close":10000}`)
	case path == "/api/v1/domestic-etfs-daily-chart/etf/8/latest":
		fmt.Fprint(w, `{"date":"2025-07-01","close":null}`)
	case path == "/api/v1/domestic-etfs-dividend/etf/7/period":
		fmt.Fprint(w, `[
			{"record_date":"2025-03-31","payment_date":"2025-04-03","dividend_amt":"100","taxable_amt":"40"},
			{"record_date":"2025-05-30","payment_date":"2025-06-04","dividend_amt":"110","taxable_amt":null},
			{"record_date":"2025-04-30","dividend_amt":105,"taxable_amt":50}
		]`)
	case path == "/api/v1/usa-etfs-dividend/etf/3/period":
		fmt.Fprint(w, `[{"record_date":"2025-06-12","dividend_amt":"0.2512"}]`)
	case path == "/api/v1/usa-etfs-dividend/etf/4/period":
		http.NotFound(w, r)
	case strings.HasPrefix(path, "/api/v1/usd-krw-exchange/date/"):
		b.exchangeHits.Add(1)
		date := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v1/usd-krw-exchange/date/"), "/nearest")
		if date == "1999-01-01" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"date":%q,"exchange_rate":"1385.5"}`, date)
	case path == "/api/v1/common-code-masters":
		fmt.Fprint(w, `[{"id":1,"code":"ACCOUNT_TYPE","code_name":"Account type"},{"id":9,"code":"DIVIDEND_PERIOD","code_name":"Dividend period"}]`)
	case path == "/api/v1/common-code-details":
		assert.Equal(b.t, "9", r.URL.Query().Get("master_id"))
		fmt.Fprint(w, `[
			{"id":1,"master_id":9,"detail_code":"one_year","detail_code_name":"1 year"},
			{"id":2,"master_id":9,"code":"6m","detail_code_name":"6 months"},
			{"id":3,"master_id":9,"detail_code":"Q","detail_code_name":"three months"}
		]`)
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T) (*Client, *backend) {
	t.Helper()
	b := &backend{t: t}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	settings := &config.Settings{APIBaseURL: srv.URL, HTTPTimeout: 2 * time.Second, ExchangeConcurrency: 2}
	return NewClient(settings, nil), b
}

func TestClient_ETFs(t *testing.T) {
	c, _ := newTestClient(t)
	etfs, err := c.ETFs(context.Background(), domain.MarketDomestic, "high_dividend")
	require.NoError(t, err)
	require.Len(t, etfs, 1)
	assert.Equal(t, int64(7), etfs[0].ID)
	assert.Equal(t, "A", etfs[0].TaxType)

	_, err = c.ETFs(context.Background(), domain.Market("jp"), "")
	assert.Error(t, err)
}

func TestClient_Quotes(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	purchase, err := c.PurchaseQuote(ctx, domain.MarketDomestic, 7, domain.SixMonths)
	require.NoError(t, err)
	assert.Equal(t, "9000", purchase.Close.String())
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), purchase.Date)

	latest, err := c.LatestQuote(ctx, domain.MarketDomestic, 7)
	require.NoError(t, err)
	assert.Equal(t, "10000", latest.Close.String())

	_, err = c.LatestQuote(ctx, domain.MarketDomestic, 8)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.LatestQuote(ctx, domain.MarketUSA, 99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_DividendHistorySortedDescending(t *testing.T) {
	c, _ := newTestClient(t)
	history, err := c.DividendHistory(context.Background(), domain.MarketDomestic, 7, domain.OneYear)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC), history[0].RecordDate)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), history[1].RecordDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), history[2].RecordDate)

	// a null taxable amount counts as zero for domestic funds
	assert.True(t, history[0].PerShareTaxableAmount.IsZero())
	assert.Equal(t, "50", history[1].PerShareTaxableAmount.String())
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), history[2].PaymentDate)
}

func TestClient_DividendHistoryForeign(t *testing.T) {
	c, _ := newTestClient(t)
	history, err := c.DividendHistory(context.Background(), domain.MarketUSA, 3, domain.ThreeMonths)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "0.2512", history[0].PerShareTaxableAmount.String())

	empty, err := c.DividendHistory(context.Background(), domain.MarketUSA, 4, domain.OneYear)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClient_ExchangeRateIsCached(t *testing.T) {
	c, b := newTestClient(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)

	q, err := c.ExchangeRate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "1385.5", q.Rate.String())
	assert.Equal(t, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), q.Date)

	_, err = c.ExchangeRate(ctx, day.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int32(1), b.exchangeHits.Load())
}

func TestClient_ExchangeRatesSkipsFailures(t *testing.T) {
	c, b := newTestClient(t)
	dates := []time.Time{
		time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	rates, err := c.ExchangeRates(context.Background(), dates)
	require.NoError(t, err)
	assert.Len(t, rates, 2)
	assert.Equal(t, "1385.5", rates["2025-03-13"].String())
	_, ok := rates["1999-01-01"]
	assert.False(t, ok)
	assert.Equal(t, int32(3), b.exchangeHits.Load())
}

func TestClient_ZeroSettingsUseDefaults(t *testing.T) {
	b := &backend{t: t}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	c := NewClient(&config.Settings{APIBaseURL: srv.URL}, nil)
	assert.Equal(t, config.DefaultHTTPTimeout, c.timeout)
	assert.Equal(t, 1, c.concurrency)

	done := make(chan error, 1)
	go func() {
		_, err := c.ExchangeRates(context.Background(), []time.Time{time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)})
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("ExchangeRates did not return")
	}
	assert.Equal(t, int32(1), b.exchangeHits.Load())
}

func TestClient_ExchangeRatesCancelled(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ExchangeRates(ctx, []time.Time{time.Now()})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_PeriodOptions(t *testing.T) {
	c, _ := newTestClient(t)
	options, err := c.PeriodOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, PeriodOption{Code: "one_year", Name: "1 year", Period: domain.OneYear}, options[0])
	assert.Equal(t, domain.SixMonths, options[1].Period)
	assert.Equal(t, "6m", options[1].Code)
	assert.Equal(t, domain.ThreeMonths, options[2].Period)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(&config.Settings{APIBaseURL: srv.URL, HTTPTimeout: time.Second, ExchangeConcurrency: 1}, nil)
	_, err := c.ETFs(context.Background(), domain.MarketUSA, "")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
}

func TestIsDividendPeriodMaster(t *testing.T) {
	assert.True(t, isDividendPeriodMaster(codeMaster{Code: "dividend_period"}))
	assert.True(t, isDividendPeriodMaster(codeMaster{Code: "X", CodeName: "Dividend Period"}))
	assert.True(t, isDividendPeriodMaster(codeMaster{Code: "X", CodeName: "배당 기간"}))
	assert.False(t, isDividendPeriodMaster(codeMaster{Code: "X", CodeName: "Dividend tax"}))
}
