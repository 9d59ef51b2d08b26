package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/senyabanana/brief-responses-frontend/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/senyabanana/brief-responses-frontend/internal/repository"

// Client - HTTP-клиент API данных маркетплейса.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	tracer  trace.Tracer
}

// NewClient создает клиент API данных.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer(tracerName),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// do выполняет запрос к API и разбирает JSON-ответ; ошибки приводятся к *models.APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	ctx, span := c.tracer.Start(ctx, "dataapi "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	err := c.roundTrip(ctx, span, method, path, query, body, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, span trace.Span, method, path string, query url.Values, body any, out any) error {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &models.APIError{StatusCode: http.StatusServiceUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.APIError{StatusCode: http.StatusServiceUnavailable, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) *models.APIError {
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == nil {
		return &models.APIError{StatusCode: status, Message: strings.TrimSpace(string(raw))}
	}
	return &models.APIError{StatusCode: status, Message: payload.Error}
}

// IsNotFound сообщает, что API ответил 404.
func IsNotFound(err error) bool {
	var apiErr *models.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
