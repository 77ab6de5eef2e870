// Package service implements the network-facing services for the remote
// storage integration: the JSON HTTP client and the credential store.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ablecats/filestream/internal/cloudreve/domain"
	apperrors "github.com/ablecats/filestream/internal/errors"
)

// snippetLimit bounds how much of a malformed response body ends up in error
// messages.
const snippetLimit = 200

// Client is the sole network surface to the remote storage service. Every
// request is bounded by the configured total timeout and decoded into the
// shared response envelope.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient creates a Client with the given per-request timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
		logger:     logger,
	}
}

// PostJSON sends a JSON body and decodes the response envelope.
func (c *Client) PostJSON(
	ctx context.Context,
	rawURL string,
	body any,
	headers map[string]string,
) (*domain.Envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode request body")
	}

	req, err := c.newRequest(ctx, http.MethodPost, rawURL, bytes.NewReader(payload), headers)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// GetJSON sends a GET request with query parameters and decodes the response
// envelope.
func (c *Client) GetJSON(
	ctx context.Context,
	rawURL string,
	params url.Values,
	headers map[string]string,
) (*domain.Envelope, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil, headers)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *Client) newRequest(
	ctx context.Context,
	method, rawURL string,
	body io.Reader,
	headers map[string]string,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build request")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// do executes the request under the client timeout and parses the body as a
// response envelope. Non-JSON bodies surface as ErrProtocol with a snippet of
// the response for diagnostics.
func (c *Client) do(req *http.Request) (*domain.Envelope, error) {
	ctx, cancel := context.WithTimeout(req.Context(), c.timeout)
	defer cancel()
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read response body")
	}

	c.logger.Debug("remote storage request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		slog.Int("http_status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	var envelope domain.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperrors.Wrapf(
			apperrors.ErrProtocol,
			"invalid response: %s", snippet(raw),
		)
	}
	return &envelope, nil
}

// snippet truncates a response body for inclusion in error messages.
func snippet(raw []byte) string {
	if len(raw) > snippetLimit {
		raw = raw[:snippetLimit]
	}
	return string(raw)
}

// BearerHeader builds the Authorization header every authenticated endpoint
// expects.
func BearerHeader(accessToken string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + accessToken}
}
