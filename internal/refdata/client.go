// Package refdata is the client for the reference-data backend: the ETF
// master, daily charts, dividend records, USD/KRW exchange rates and the
// common-code tables.
package refdata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/config"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/dateutil"
)

// ErrNotFound is returned when the backend has no record for the request.
var ErrNotFound = errors.New("refdata: not found")

const (
	commonCodeMastersPath = "/api/v1/common-code-masters"
	commonCodeDetailsPath = "/api/v1/common-code-details"
	exchangePath          = "/api/v1/usd-krw-exchange"
)

// StatusError is a non-2xx backend response other than 404.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("refdata: GET %s: status %d", e.URL, e.Status)
}

// Client fetches reference data over HTTP. Exchange rates are cached per
// calendar date for the life of the client. A Client is safe for concurrent use.
type Client struct {
	settings    *config.Settings
	http        *fasthttp.Client
	timeout     time.Duration
	concurrency int
	logger      calculation.Logger
	rates       sync.Map // YYYY-MM-DD -> domain.ExchangeQuote
}

// NewClient creates a client for the backend named in settings. A zero
// timeout means config.DefaultHTTPTimeout; concurrency is at least 1.
func NewClient(settings *config.Settings, logger calculation.Logger) *Client {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	timeout := settings.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	concurrency := max(settings.ExchangeConcurrency, 1)
	return &Client{
		settings: settings,
		http: &fasthttp.Client{
			Name:                "wealthlab-refdata",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		timeout:     timeout,
		concurrency: concurrency,
		logger:      logger,
	}
}

func marketBase(m domain.Market) (string, error) {
	switch m {
	case domain.MarketDomestic:
		return "/api/v1/domestic-etfs", nil
	case domain.MarketUSA:
		return "/api/v1/usa-etfs", nil
	default:
		return "", fmt.Errorf("refdata: unknown market %q", m)
	}
}

// ETFs lists the funds of a market, filtered by etfType when it is non-empty.
func (c *Client) ETFs(ctx context.Context, market domain.Market, etfType string) ([]domain.ETF, error) {
	base, err := marketBase(market)
	if err != nil {
		return nil, err
	}
	if etfType != "" {
		base += "?etf_type=" + url.QueryEscape(etfType)
	}
	var etfs []domain.ETF
	if err := c.getJSON(ctx, base, &etfs); err != nil {
		return nil, err
	}
	return etfs, nil
}

// PurchaseQuote returns the closing price at the start of the period window.
func (c *Client) PurchaseQuote(ctx context.Context, market domain.Market, etfID int64, period domain.Period) (domain.PriceQuote, error) {
	base, err := marketBase(market)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	path := fmt.Sprintf("%s-daily-chart/etf/%d/period?months_ago=%d", base, etfID, period.MonthsAgo())
	return c.quote(ctx, path)
}

// LatestQuote returns the most recent closing price.
func (c *Client) LatestQuote(ctx context.Context, market domain.Market, etfID int64) (domain.PriceQuote, error) {
	base, err := marketBase(market)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	return c.quote(ctx, fmt.Sprintf("%s-daily-chart/etf/%d/latest", base, etfID))
}

func (c *Client) quote(ctx context.Context, path string) (domain.PriceQuote, error) {
	var point chartPoint
	if err := c.getJSON(ctx, path, &point); err != nil {
		return domain.PriceQuote{}, err
	}
	if !point.Close.Valid || !point.Close.Decimal.IsPositive() {
		return domain.PriceQuote{}, fmt.Errorf("%s: no closing price: %w", path, ErrNotFound)
	}
	date, err := dateutil.ParseISODate(string(point.Date))
	if err != nil {
		return domain.PriceQuote{}, fmt.Errorf("%s: %w", path, err)
	}
	return domain.PriceQuote{Date: date, Close: point.Close.Decimal}, nil
}

// DividendHistory returns the dividends paid within the period window, most
// recent record date first. A fund without records yields an empty history.
func (c *Client) DividendHistory(ctx context.Context, market domain.Market, etfID int64, period domain.Period) ([]domain.DividendHistoryEntry, error) {
	base, err := marketBase(market)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s-dividend/etf/%d/period?months_ago=%d", base, etfID, period.MonthsAgo())

	var records []dividendRecord
	if err := c.getJSON(ctx, path, &records); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.DividendHistoryEntry{}, nil
		}
		return nil, err
	}

	// Foreign records carry no separate taxable amount.
	taxableDefaultsToGross := market == domain.MarketUSA
	history := make([]domain.DividendHistoryEntry, 0, len(records))
	for _, r := range records {
		entry, err := r.toHistoryEntry(taxableDefaultsToGross)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		history = append(history, entry)
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].RecordDate.After(history[j].RecordDate)
	})
	return history, nil
}

// ExchangeRate returns the USD/KRW rate nearest to date.
func (c *Client) ExchangeRate(ctx context.Context, date time.Time) (domain.ExchangeQuote, error) {
	key := dateutil.FormatISODate(date)
	if cached, ok := c.rates.Load(key); ok {
		return cached.(domain.ExchangeQuote), nil
	}

	var rec exchangeRecord
	if err := c.getJSON(ctx, exchangePath+"/date/"+key+"/nearest", &rec); err != nil {
		return domain.ExchangeQuote{}, err
	}
	quote := domain.ExchangeQuote{Date: dateutil.StartOfDay(date), Rate: rec.ExchangeRate}
	if rec.Date != "" {
		if observed, err := dateutil.ParseISODate(string(rec.Date)); err == nil {
			quote.Date = observed
		}
	}
	c.rates.Store(key, quote)
	return quote, nil
}

// ExchangeRates looks up the rate for each date concurrently, keyed by
// YYYY-MM-DD. Dates whose lookup fails are logged and left out; only a
// cancelled context fails the batch.
func (c *Client) ExchangeRates(ctx context.Context, dates []time.Time) (map[string]decimal.Decimal, error) {
	result := make(map[string]decimal.Decimal, len(dates))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		key := dateutil.FormatISODate(d)
		if seen[key] {
			continue
		}
		seen[key] = true

		date := d
		g.Go(func() error {
			quote, err := c.ExchangeRate(gctx, date)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.logger.Warnf("exchange rate for %s unavailable: %v", key, err)
				return nil
			}
			mu.Lock()
			result[key] = quote.Rate
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// PeriodOptions resolves the dividend period master and returns its details.
// Each option is mapped to a Period from its code and display name.
func (c *Client) PeriodOptions(ctx context.Context) ([]PeriodOption, error) {
	var masters []codeMaster
	if err := c.getJSON(ctx, commonCodeMastersPath, &masters); err != nil {
		return nil, err
	}
	var master *codeMaster
	for i := range masters {
		if isDividendPeriodMaster(masters[i]) {
			master = &masters[i]
			break
		}
	}
	if master == nil {
		return nil, fmt.Errorf("dividend period master: %w", ErrNotFound)
	}

	var details []codeDetail
	path := commonCodeDetailsPath + "?master_id=" + strconv.FormatInt(master.ID, 10)
	if err := c.getJSON(ctx, path, &details); err != nil {
		return nil, err
	}
	options := make([]PeriodOption, 0, len(details))
	for _, d := range details {
		options = append(options, PeriodOption{
			Code:   d.code(),
			Name:   d.DetailCodeName,
			Period: domain.ParsePeriod(d.code(), d.DetailCodeName),
		})
	}
	return options, nil
}

// getJSON performs a GET against the backend and decodes the body into out.
// The request honours the earlier of the client timeout and the context deadline.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	uri := c.settings.APIURL(endpoint)
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	start := time.Now()
	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("refdata: GET %s: %w", uri, err)
	}
	c.logger.Debugf("GET %s -> %d in %s", uri, resp.StatusCode(), time.Since(start))

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusNotFound:
		return fmt.Errorf("GET %s: %w", uri, ErrNotFound)
	case status < 200 || status > 299:
		return &StatusError{URL: uri, Status: status}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("refdata: decode %s: %w", uri, err)
	}
	return nil
}
