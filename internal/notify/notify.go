// Package notify отправляет письма через API сервиса уведомлений.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	uuidLength = 36
	emailPath  = "/v2/notifications/email"
)

// Email - письмо по шаблону.
type Email struct {
	To              string
	TemplateID      string
	Personalisation map[string]string
	Reference       string
}

// Notifier - интерфейс отправки писем.
type Notifier interface {
	SendEmail(ctx context.Context, email Email) error
}

// EmailError - письмо не удалось отправить.
type EmailError struct {
	To  string
	Err error
}

func (e *EmailError) Error() string {
	return fmt.Sprintf("send email to %s: %v", e.To, e.Err)
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// LogNotifier пишет письма в журнал вместо отправки. Нужен для разработки без ключа API.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) SendEmail(ctx context.Context, email Email) error {
	n.Logger.InfoContext(ctx, "email not sent",
		slog.String("to", email.To),
		slog.String("template_id", email.TemplateID),
		slog.String("reference", email.Reference),
	)
	return nil
}

// Client - клиент API уведомлений.
type Client struct {
	BaseURL   string
	ServiceID string
	secret    string
	HTTP      *http.Client
	Now       func() time.Time
	tracer    trace.Tracer
}

// NewClient создает клиент по ключу вида {name}-{serviceId}-{secret}.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	serviceID, secret, err := splitAPIKey(apiKey)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ServiceID: serviceID,
		secret:    secret,
		HTTP:      &http.Client{Timeout: timeout},
		Now:       time.Now,
		tracer:    otel.Tracer("github.com/senyabanana/brief-responses-frontend/internal/notify"),
	}, nil
}

func splitAPIKey(apiKey string) (string, string, error) {
	if len(apiKey) < 2*uuidLength+2 {
		return "", "", fmt.Errorf("notify api key is too short")
	}
	secret := apiKey[len(apiKey)-uuidLength:]
	serviceID := apiKey[len(apiKey)-2*uuidLength-1 : len(apiKey)-uuidLength-1]
	if _, err := uuid.Parse(serviceID); err != nil {
		return "", "", fmt.Errorf("notify api key has invalid service id: %w", err)
	}
	return serviceID, secret, nil
}

// token подписывает короткоживущий JWT для заголовка Authorization.
func (c *Client) token() (string, error) {
	claims := jwt.MapClaims{
		"iss": c.ServiceID,
		"iat": c.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.secret))
}

type emailRequest struct {
	EmailAddress    string            `json:"email_address"`
	TemplateID      string            `json:"template_id"`
	Personalisation map[string]string `json:"personalisation,omitempty"`
	Reference       string            `json:"reference,omitempty"`
}

// SendEmail отправляет письмо по шаблону.
func (c *Client) SendEmail(ctx context.Context, email Email) error {
	ctx, span := c.tracer.Start(ctx, "notify send_email",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("notify.template_id", email.TemplateID)),
	)
	defer span.End()

	if err := c.send(ctx, span, email); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &EmailError{To: email.To, Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, span trace.Span, email Email) error {
	payload, err := json.Marshal(emailRequest{
		EmailAddress:    email.To,
		TemplateID:      email.TemplateID,
		Personalisation: email.Personalisation,
		Reference:       email.Reference,
	})
	if err != nil {
		return err
	}

	token, err := c.token()
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+emailPath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notify responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Reference возвращает детерминированную ссылку идемпотентности для письма.
func Reference(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join(parts, "|"))).String()
}
