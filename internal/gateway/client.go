package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/papertrade/tradedash/internal/domain"
)

var log = logrus.WithField("module", "gateway")

const (
	positionsPath      = "/api/positions"
	tradesTodayPath    = "/api/analytics/trades/today"
	dailyAnalyticsPath = "/api/analytics/daily"
	submitTradePath    = "/api/trade"
)

// Client is the typed wrapper around the paper-trading backend's REST
// surface. Calls are one-shot: no retry is built in, readers rely on the
// polling cycle to self-heal and submissions are retried by the user.
type Client struct {
	http *resty.Client
}

// NewClient creates a gateway client against the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: http}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// GetPositions fetches the current positions keyed by symbol.
func (c *Client) GetPositions(ctx context.Context) (map[domain.Symbol]domain.Position, error) {
	var out map[domain.Symbol]domain.Position
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(positionsPath)
	if err := translate(resp, err); err != nil {
		return nil, errors.Wrap(err, "get positions")
	}
	if out == nil {
		out = map[domain.Symbol]domain.Position{}
	}
	return out, nil
}

// GetTradesToday fetches today's trades in backend order.
func (c *Client) GetTradesToday(ctx context.Context) ([]domain.Trade, error) {
	var out []domain.Trade
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(tradesTodayPath)
	if err := translate(resp, err); err != nil {
		return nil, errors.Wrap(err, "get trades today")
	}
	return out, nil
}

// analyticsEnvelope is the wire shape of /api/analytics/daily.
type analyticsEnvelope struct {
	DailyAnalytics map[domain.Symbol]domain.DailyAnalytic `json:"dailyAnalytics"`
}

// GetDailyAnalytics fetches per-symbol daily aggregates. A response with
// no dailyAnalytics field yields an empty map, not an error.
func (c *Client) GetDailyAnalytics(ctx context.Context) (map[domain.Symbol]domain.DailyAnalytic, error) {
	var envelope analyticsEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&envelope).
		Get(dailyAnalyticsPath)
	if err := translate(resp, err); err != nil {
		return nil, errors.Wrap(err, "get daily analytics")
	}
	if envelope.DailyAnalytics == nil {
		return map[domain.Symbol]domain.DailyAnalytic{}, nil
	}
	return envelope.DailyAnalytics, nil
}

// SubmitTrade posts a validated order. Callers must have validated the
// request already; the backend's rejection message, if any, comes back
// inside a ServerError.
func (c *Client) SubmitTrade(ctx context.Context, req domain.TradeRequest) error {
	requestID := uuid.NewString()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		SetBody(req).
		Post(submitTradePath)
	if err := translate(resp, err); err != nil {
		return errors.Wrapf(err, "submit trade %s", requestID)
	}
	log.WithFields(logrus.Fields{
		"request_id": requestID,
		"symbol":     req.Symbol,
		"side":       req.Side,
	}).Debug("trade accepted")
	return nil
}

// translate folds resty's (response, error) pair into the uniform
// failure taxonomy: transport errors become NetworkError, non-2xx
// responses become ServerError with the body's message when present.
// A body that arrived but failed to decode is a payload problem, not
// a transport one; resty leaves RawResponse set in that case.
func translate(resp *resty.Response, err error) error {
	if err != nil {
		if resp != nil && resp.RawResponse != nil {
			return errors.Wrap(err, "malformed response body")
		}
		return &NetworkError{Err: err}
	}
	if resp.IsSuccess() {
		return nil
	}
	return &ServerError{
		Status:  resp.StatusCode(),
		Message: messageFromBody(resp.Body()),
	}
}

func messageFromBody(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
