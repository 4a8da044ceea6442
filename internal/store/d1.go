package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("store")

// D1Client executes SQL statements against the Cloudflare D1 HTTP query
// endpoint. Each Query is a single bearer-authenticated request/response
// round trip; there is no pooling, retrying or batching.
type D1Client struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewD1Client builds a client for the given account's database.
func NewD1Client(accountID, databaseID, token string) *D1Client {
	endpoint := fmt.Sprintf(
		"https://api.cloudflare.com/client/v4/accounts/%s/d1/database/%s/query",
		accountID, databaseID,
	)
	return NewD1ClientWithEndpoint(endpoint, token)
}

// NewD1ClientWithEndpoint is NewD1Client with an explicit query endpoint
// URL, for API-compatible proxies and tests.
func NewD1ClientWithEndpoint(endpoint, token string) *D1Client {
	return &D1Client{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type d1Request struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

type d1APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type d1Result struct {
	Success bool  `json:"success"`
	Results []Row `json:"results"`
}

type d1Response struct {
	Success bool         `json:"success"`
	Errors  []d1APIError `json:"errors"`
	Result  []d1Result   `json:"result"`
}

// Query posts the statement to D1 and returns the first statement
// result's rows. Any HTTP failure, API-level failure or per-statement
// error surfaces as a *BackendError.
func (c *D1Client) Query(ctx context.Context, query string, params ...any) ([]Row, error) {
	ctx, span := tracer.Start(ctx, "d1.query")
	span.SetAttributes(attribute.String("db.statement", query))
	defer span.End()

	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(d1Request{SQL: query, Params: params})
	if err != nil {
		return nil, fmt.Errorf("failed to encode d1 request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build d1 request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "d1 request failed")
		return nil, &BackendError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		span.SetStatus(codes.Error, "d1 returned non-success status")
		return nil, &BackendError{Status: resp.StatusCode, Message: string(message)}
	}

	var decoded d1Response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		span.RecordError(err)
		return nil, &BackendError{Message: "malformed d1 response: " + err.Error()}
	}

	if !decoded.Success || len(decoded.Errors) > 0 {
		details := make([]string, 0, len(decoded.Errors))
		for _, apiErr := range decoded.Errors {
			details = append(details, fmt.Sprintf("%d: %s", apiErr.Code, apiErr.Message))
		}
		message := strings.Join(details, "; ")
		if message == "" {
			message = "unknown error"
		}
		span.SetStatus(codes.Error, "d1 query failed")
		return nil, &BackendError{Message: message}
	}

	if len(decoded.Result) == 0 || !decoded.Result[0].Success {
		span.SetStatus(codes.Error, "d1 query failed")
		return nil, &BackendError{Message: "empty result payload"}
	}

	rows := decoded.Result[0].Results
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}
