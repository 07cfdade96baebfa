// Package trader submits market orders to the Upbit REST API.
package trader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aettikang/auto-coin-sel/internal/domain"
)

const (
	defaultBaseURL = "https://api.upbit.com"
	orderEndpoint  = "/v1/orders"
	lookupEndpoint = "/v1/order"

	// requestTimeout bounds each request's wall clock; exceeding it is
	// classified as a transport fault.
	requestTimeout = 12 * time.Second
)

// UpbitTrader signs and submits market-buy requests against one account.
type UpbitTrader struct {
	client  *http.Client
	baseURL string
	creds   Credentials
	l       *zap.Logger
}

// NewUpbitTrader returns a trader for the given base URL and credentials.
// An empty baseURL selects the production API.
func NewUpbitTrader(l *zap.Logger, baseURL string, creds Credentials) *UpbitTrader {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &UpbitTrader{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: baseURL,
		creds:   creds,
		l:       l,
	}
}

// Submit places a market buy spending intent.Amount of quote currency. The
// exchange computes the filled quantity from the current market price. The
// returned outcome is always populated; failures are carried as data, never
// as an error the caller must branch on.
func (t *UpbitTrader) Submit(ctx context.Context, intent domain.OrderIntent) domain.OrderOutcome {
	outcome := domain.OrderOutcome{
		Market:     intent.Pair.Market(),
		Amount:     intent.Amount,
		Identifier: intent.Identifier,
	}

	params := url.Values{}
	params.Set("market", intent.Pair.Market())
	params.Set("side", "bid")
	params.Set("ord_type", "price")
	params.Set("price", strconv.FormatInt(intent.Amount, 10))
	params.Set("identifier", intent.Identifier)

	resp, body, err := t.send(ctx, http.MethodPost, orderEndpoint, params)
	if err != nil {
		outcome.Result = domain.ResultFailed
		outcome.Detail = err.Error()
		return outcome
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if msg := apiErrorMessage(body); msg != "" {
			outcome.Result = domain.ResultFailed
			outcome.Detail = msg
			return outcome
		}
		outcome.Result = domain.ResultAccepted
		outcome.Detail = orderUUID(body)
		return outcome
	}

	outcome.Result, outcome.Detail = classifyOrderError(resp.StatusCode, body)
	return outcome
}

// Exists reports whether an order with the identifier is already registered
// on the exchange. A transport fault is returned as an error so the caller
// can fail open toward submission.
func (t *UpbitTrader) Exists(ctx context.Context, identifier string) (bool, error) {
	params := url.Values{}
	params.Set("identifier", identifier)

	resp, _, err := t.send(ctx, http.MethodGet, lookupEndpoint, params)
	if err != nil {
		return false, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, errors.Errorf("order lookup returned status %d", resp.StatusCode)
	}
}

// send issues one authenticated request. POST carries the parameters as a
// JSON body, GET as the query string; the token always covers the url-encoded
// parameter set.
func (t *UpbitTrader) send(ctx context.Context, method, endpoint string, params url.Values) (*http.Response, []byte, error) {
	token, err := t.creds.token(params)
	if err != nil {
		return nil, nil, err
	}

	target := t.baseURL + endpoint
	var reqBody io.Reader
	if method == http.MethodGet {
		target += "?" + params.Encode()
	} else {
		flat := make(map[string]string, len(params))
		for key := range params {
			flat[key] = params.Get(key)
		}
		encoded, marshalErr := json.Marshal(flat)
		if marshalErr != nil {
			return nil, nil, errors.Wrap(marshalErr, "failed to encode request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build request")
	}
	t.l.Debug("sending exchange request",
		zap.String("method", method),
		zap.String("endpoint", endpoint))
	req.Header.Set("Authorization", "Bearer "+token)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "request to %s failed", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read response body")
	}

	return resp, body, nil
}

// classifyOrderError maps an order-submission error response onto a result.
// Upbit signals identifier reuse only through the error text, so the wording
// match lives behind this single function until the exchange exposes a
// structured code for it.
func classifyOrderError(status int, body []byte) (domain.OrderResult, string) {
	msg := apiErrorMessage(body)

	lower := strings.ToLower(msg)
	if strings.Contains(lower, "identifier") &&
		(strings.Contains(lower, "already") || strings.Contains(lower, "duplicat") || strings.Contains(lower, "used")) {
		return domain.ResultDuplicate, msg
	}

	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return domain.ResultFailed, fmt.Sprintf("status %d: %s", status, msg)
}

type apiError struct {
	Error struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

// apiErrorMessage extracts the error name and message from an Upbit error
// body, or "" when the body carries no error object.
func apiErrorMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(e.Error.Name) + " " + strings.TrimSpace(e.Error.Message))
}

// orderUUID extracts the exchange-assigned order id from a success body.
func orderUUID(body []byte) string {
	var parsed struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.UUID
}
