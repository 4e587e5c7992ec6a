package enricher

//go:generate go run go.uber.org/mock/mockgen -source=./enricher.go -destination=./mocks/enricher_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slotlink/config"
	"slotlink/infras/otel"
	"slotlink/shared/constant"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

const (
	enrichPath       = "/v1/enrich"
	maxTries         = 3
	maxResponseBytes = 1 << 20
)

var (
	ErrDisabled = errors.New("enrichment service is not configured")
	ErrUpstream = errors.New("enrichment service failed")
)

type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Request struct {
	Email      string `json:"email"`
	ProfileRef string `json:"profile_ref,omitempty"`
	Answers    []QA   `json:"answers"`
}

type Response struct {
	Summary        string          `json:"summary"`
	ProfileSummary string          `json:"profile_summary,omitempty"`
	Raw            json.RawMessage `json:"-"`
}

// Client talks to the external profile enrichment API.
type Client interface {
	Enabled() bool
	Enrich(ctx context.Context, req Request) (Response, error)
}

type clientImpl struct {
	config *config.Config
	otel   otel.Otel
	http   *http.Client
}

func New(config *config.Config, otel otel.Otel) Client {
	timeout := time.Duration(config.External.Enrichment.TimeoutSeconds) * time.Second

	if config.External.Enrichment.Endpoint == "" {
		log.Warn().Msg("Enrichment endpoint is not configured, notes fall back to answers only")
	}

	return &clientImpl{
		config: config,
		otel:   otel,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *clientImpl) Enabled() bool {
	return c.config.External.Enrichment.Endpoint != ""
}

func (c *clientImpl) Enrich(ctx context.Context, req Request) (res Response, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Enrich")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !c.Enabled() {
		return res, ErrDisabled
	}

	body, err := json.Marshal(req)
	if err != nil {
		return res, fmt.Errorf("failed to marshal enrichment request: %w", err)
	}

	url := strings.TrimSuffix(c.config.External.Enrichment.Endpoint, "/") + enrichPath

	raw, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.post(ctx, url, body)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxTries))
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to call enrichment service")

		return res, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if err = json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("%w: failed to decode response: %w", ErrUpstream, err)
	}

	res.Raw = raw

	return res, nil
}

func (c *clientImpl) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	if key := c.config.External.Enrichment.APIKey; key != "" {
		httpReq.Header.Set(constant.RequestHeaderAPIKey, key)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError, resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return payload, nil
}
