package fred

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"RateSpread/internal/domain/models"
	drepo "RateSpread/internal/domain/repository"
	"RateSpread/pkg/cache"
	"RateSpread/pkg/config"
	xhttp "RateSpread/pkg/http"
	"RateSpread/pkg/logger"
	"RateSpread/pkg/util"
)

// Client implements a SeriesSource backed by the FRED observations API.
type Client struct {
	baseURL string
	apiKey  string

	http  *xhttp.Client
	cache cache.Service
	ttl   time.Duration
	log   *logger.Logger

	pmmsID      string
	candidates  []string
	proxyOffset float64
}

// New creates a new FRED SeriesSource.
func New(cfg *config.Config, store cache.Service, log *logger.Logger) drepo.SeriesSource {
	return &Client{
		baseURL:     cfg.Fred.BaseURL,
		apiKey:      cfg.Fred.APIKey,
		http:        xhttp.NewClient(xhttp.WithTimeout(cfg.Fred.Timeout)),
		cache:       store,
		ttl:         cfg.Fred.CacheTTL,
		log:         log,
		pmmsID:      cfg.Analysis.PMMSSeries,
		candidates:  cfg.Analysis.CC30Candidates,
		proxyOffset: cfg.Analysis.ProxyOffset,
	}
}

type fredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type fredResponse struct {
	Observations []fredObservation `json:"observations"`
}

// FetchSeries retrieves one series by id over [start, end]. Failures are
// typed; there is no retry.
func (c *Client) FetchSeries(ctx context.Context, id, label string, start, end time.Time) models.FetchOutcome {
	if cached, err := c.cache.Get(ctx, id); err == nil {
		c.log.Debug("fred: cache hit", logger.String("series", id))
		return models.Fetched(&models.Series{ID: id, Label: label, Obs: cached.Obs})
	}

	var resp fredResponse
	params := map[string][]string{
		"series_id":         {id},
		"observation_start": {start.Format(util.DateFormat)},
		"observation_end":   {end.Format(util.DateFormat)},
		"file_type":         {"json"},
		"sort_order":        {"asc"},
	}
	if c.apiKey != "" {
		params["api_key"] = []string{c.apiKey}
	}

	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/series/observations",
		QueryParams: params,
	}, &resp)
	if err != nil {
		reason := models.FailNetwork
		if s := xhttp.StatusOf(err); s == 400 || s == 404 {
			reason = models.FailNotFound
		}
		return models.FetchFailed(reason, fmt.Errorf("fetch %s: %w", id, err))
	}

	s := &models.Series{ID: id, Label: label}
	for _, o := range resp.Observations {
		// FRED marks missing values with "."
		if o.Value == "." || o.Value == "" {
			continue
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		d, err := util.ParseDate(o.Date)
		if err != nil {
			continue
		}
		s.Obs = append(s.Obs, models.Observation{Date: d, Value: v})
	}

	if len(s.Obs) == 0 {
		return models.FetchFailed(models.FailEmpty, fmt.Errorf("fetch %s: no observations", id))
	}

	if err := c.cache.Set(ctx, id, s, c.ttl); err != nil {
		c.log.Warn("fred: cache set failed", logger.String("series", id), logger.Error(err))
	}

	c.log.Info("fred: downloaded series",
		logger.String("series", id),
		logger.Int("records", s.Len()),
		logger.Date("from", s.First()),
		logger.Date("to", s.Last()))
	return models.Fetched(s)
}

// FetchCC30 tries each configured current-coupon candidate series in
// order, then falls back to a proxy built from the PMMS series minus the
// configured offset.
func (c *Client) FetchCC30(ctx context.Context, label string, start, end time.Time) models.FetchOutcome {
	for _, id := range c.candidates {
		o := c.FetchSeries(ctx, id, label, start, end)
		if o.OK() {
			return o
		}
		c.log.Warn("fred: cc30 candidate unavailable",
			logger.String("series", id),
			logger.String("reason", o.Reason.String()))
	}

	pmms := c.FetchSeries(ctx, c.pmmsID, c.pmmsID, start, end)
	if !pmms.OK() {
		return models.FetchFailed(pmms.Reason, fmt.Errorf("cc30 proxy: %w", pmms.Err))
	}

	proxy := &models.Series{ID: "CC30_PROXY", Label: label}
	proxy.Obs = make([]models.Observation, len(pmms.Series.Obs))
	for i, o := range pmms.Series.Obs {
		proxy.Obs[i] = models.Observation{Date: o.Date, Value: o.Value - c.proxyOffset}
	}

	note := fmt.Sprintf("proxy: %s - %.2f; replace with actual current coupon data for accuracy",
		c.pmmsID, c.proxyOffset)
	c.log.Warn("fred: using cc30 proxy", logger.String("note", note))
	return models.FetchOutcome{Series: proxy, Proxy: true, Note: note}
}

var _ drepo.SeriesSource = (*Client)(nil)
