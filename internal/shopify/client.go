package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/metrics"
)

const defaultAPIVersion = "2023-04"

// Gateway forwards GraphQL queries to a shop's Admin API on behalf of that shop
type Gateway struct {
	apiVersion string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGateway creates a new Shopify GraphQL gateway. A nil httpClient gets a 30s default.
func NewGateway(apiVersion string, httpClient *http.Client, logger *zap.Logger) *Gateway {
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		apiVersion: apiVersion,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query string `json:"query"`
}

// Result is the outcome of one passthrough call. Body is the response JSON
// verbatim; Err is set when the call produced no data (transport, non-2xx
// status or an unparseable body). A nil Err with an empty product list is
// valid empty data, not a failure.
type Result struct {
	Body    json.RawMessage
	Err     error
	Outcome domain.GatewayOutcome
}

// OK reports whether the call returned data
func (r Result) OK() bool {
	return r.Err == nil
}

// Null reports whether the call degraded to the "no data" sentinel
func (r Result) Null() bool {
	return r.Err != nil || len(r.Body) == 0
}

// Query posts query to https://<shop>/admin/api/<version>/graphql.json.
// Failures are logged and folded into the Result, never returned as panics or errors.
func (g *Gateway) Query(ctx context.Context, shop, accessToken, query string) Result {
	res := g.do(ctx, shop, accessToken, query)
	metrics.RecordGateway(string(res.Outcome))
	if res.Err != nil {
		g.logger.Error("Error fetching data",
			zap.String("shop", shop),
			zap.String("outcome", string(res.Outcome)),
			zap.Error(res.Err),
		)
	}
	return res
}

func (g *Gateway) do(ctx context.Context, shop, accessToken, query string) Result {
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, g.apiVersion)

	jsonData, err := json.Marshal(GraphQLRequest{Query: query})
	if err != nil {
		return Result{Err: fmt.Errorf("failed to marshal request: %w", err), Outcome: domain.GatewayOutcomeTransport}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return Result{Err: fmt.Errorf("failed to create request: %w", err), Outcome: domain.GatewayOutcomeTransport}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to execute request: %w", err), Outcome: domain.GatewayOutcomeTransport}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to read response: %w", err), Outcome: domain.GatewayOutcomeTransport}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Err: fmt.Errorf("HTTP error! status: %d", resp.StatusCode), Outcome: domain.GatewayOutcomeStatus}
	}

	if !json.Valid(body) {
		return Result{Err: fmt.Errorf("failed to parse response body: %s", string(body)), Outcome: domain.GatewayOutcomeParse}
	}

	return Result{Body: json.RawMessage(body), Outcome: domain.GatewayOutcomeOK}
}
