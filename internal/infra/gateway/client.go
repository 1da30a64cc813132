// Package gateway implements the HTTP collaborator set the reconciliation
// core calls into. The booking backend owns the conversation with the
// payment provider; this client only submits, polls, and queries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"eventpay/internal/infra"
	"eventpay/internal/pkg/config"
)

type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
}

func NewClient(logger *slog.Logger, cfg config.BackendConfig) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindTransport, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindBadPayload, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindTransport, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindTransport, req.Method+" "+req.URL.Path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return infra.WrapGatewayErr(c.logger, infra.KindNotFound, req.URL.Path, nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return infra.WrapGatewayErr(c.logger, infra.KindBadStatus,
			req.URL.Path+" returned "+resp.Status, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindBadPayload, "decode response", err)
	}
	return nil
}
