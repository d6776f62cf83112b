// Package apiclient calls the external internship REST API.
//
// Every authenticated call reads the bearer credential from a CredentialSource
// at call time, so a logout between two calls is observed by the second one.
// Calls are never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/observability"
	"github.com/spec-kit/intern-dashboard/internal/schemas"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

const maxBodyBytes = 4 << 20

// CredentialSource supplies the bearer credential for a call.
type CredentialSource interface {
	Credential() string
}

// StaticCredential is a fixed credential.
type StaticCredential string

// Credential implements CredentialSource.
func (s StaticCredential) Credential() string {
	return string(s)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Schemas    *schemas.Validator
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// Client is the shared transport for every fetcher.
type Client struct {
	baseURL string
	http    *http.Client
	schemas *schemas.Validator
	logger  *zap.Logger
	metrics *observability.Metrics
}

// New builds a Client. Without an HTTPClient one is created with a traced transport.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		schemas: opts.Schemas,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// Auth returns the unauthenticated fetcher for sign-in and sign-up.
func (c *Client) Auth() *AuthFetcher {
	return &AuthFetcher{client: c}
}

// Resources groups the authenticated fetchers of one session.
type Resources struct {
	Users       *UsersFetcher
	Tasks       *TasksFetcher
	Evaluations *EvaluationsFetcher
	Company     *CompanyFetcher
	Domains     *DomainsFetcher
}

// For binds the authenticated fetchers to creds.
func (c *Client) For(creds CredentialSource) *Resources {
	return &Resources{
		Users:       &UsersFetcher{client: c, creds: creds},
		Tasks:       &TasksFetcher{client: c, creds: creds},
		Evaluations: &EvaluationsFetcher{client: c, creds: creds},
		Company:     &CompanyFetcher{client: c, creds: creds},
		Domains:     &DomainsFetcher{client: c, creds: creds},
	}
}

type call struct {
	method string
	path   string
	// schema names the payload schema of a successful body; empty skips validation.
	schema string
	body   any
	out    any
	creds  CredentialSource
}

func (c *Client) do(ctx context.Context, in call) (err error) {
	start := time.Now()
	resource := resourceLabel(in.path)
	defer func() {
		c.metrics.RecordAPICall(resource, in.method, outcome(err), time.Since(start))
	}()

	var reader io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.baseURL+in.path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.creds != nil {
		if token := in.creds.Credential(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn("api unreachable", zap.String("method", in.method), zap.String("path", in.path), zap.Error(err))
		return &apperrors.ConnectivityError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &apperrors.ConnectivityError{Err: err}
	}

	c.logger.Debug("api call",
		zap.String("method", in.method),
		zap.String("path", in.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.APIError{Status: resp.StatusCode, Message: errorMessage(body, resp.StatusCode)}
	}
	// The caller has gone away; its result must not be applied.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 || in.out == nil {
		return nil
	}

	if in.schema != "" && c.schemas != nil {
		if err := c.schemas.Validate(in.schema, body); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(body, in.out); err != nil {
		return &apperrors.SchemaError{Resource: resource, Problems: []string{err.Error()}}
	}
	return nil
}

// errorMessage extracts the message of an error body: {"error": "..."},
// {"message": "..."} or {"error": {"message": "..."}}.
func errorMessage(body []byte, status int) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Error) > 0 {
			var text string
			if json.Unmarshal(envelope.Error, &text) == nil && text != "" {
				return text
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func resourceLabel(path string) string {
	rest := strings.TrimPrefix(path, "/api/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "unknown"
	}
	return rest
}

func outcome(err error) string {
	var (
		apiErr    *apperrors.APIError
		connErr   *apperrors.ConnectivityError
		schemaErr *apperrors.SchemaError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &apiErr):
		return "api_error"
	case errors.As(err, &connErr):
		return "connectivity"
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
