// Package session проверяет сессию поставщика, выданную сервисом входа.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
)

// CSRFField - имя поля формы с CSRF-токеном.
const CSRFField = "csrf_token"

var (
	ErrNoSession      = errors.New("session cookie is missing")
	ErrInvalidSession = errors.New("session token is invalid")
)

// Claims - содержимое токена сессии.
type Claims struct {
	jwt.RegisteredClaims
	SupplierID   int    `json:"supplierId"`
	EmailAddress string `json:"emailAddress"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	CSRF         string `json:"csrf,omitempty"`
}

// Session - проверенная сессия пользователя.
type Session struct {
	Supplier  models.Supplier
	CSRFToken string
}

// Manager читает и выпускает токены сессии.
type Manager struct {
	secret     []byte
	CookieName string
	LoginURL   string
	Now        func() time.Time
	logger     *slog.Logger
}

// NewManager создает новый экземпляр Manager.
func NewManager(secret, cookieName, loginURL string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		secret:     []byte(secret),
		CookieName: cookieName,
		LoginURL:   loginURL,
		Now:        time.Now,
		logger:     logger,
	}
}

// Issue подписывает токен сессии. Используется сервисом входа в разработке и в тестах.
func (m *Manager) Issue(supplier models.Supplier, ttl time.Duration) (string, error) {
	now := m.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   supplier.EmailAddress,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		SupplierID:   supplier.SupplierID,
		EmailAddress: supplier.EmailAddress,
		Name:         supplier.Name,
		Role:         supplier.Role,
		CSRF:         uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse проверяет cookie сессии и возвращает сессию.
func (m *Manager) Parse(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.CookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return nil, ErrNoSession
	}
	raw := strings.TrimSpace(cookie.Value)

	var claims Claims
	_, err = jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	csrf := claims.CSRF
	if csrf == "" {
		csrf = uuid.NewSHA1(uuid.NameSpaceURL, []byte(raw)).String()
	}
	return &Session{
		Supplier: models.Supplier{
			SupplierID:   claims.SupplierID,
			EmailAddress: claims.EmailAddress,
			Name:         claims.Name,
			Role:         claims.Role,
		},
		CSRFToken: csrf,
	}, nil
}

type contextKey struct{}

// WithSession кладет сессию в контекст запроса.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext достает сессию из контекста запроса.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// SupplierFrom возвращает поставщика из контекста запроса.
func SupplierFrom(ctx context.Context) (models.Supplier, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return models.Supplier{}, false
	}
	return s.Supplier, true
}

// CSRFToken возвращает CSRF-токен текущей сессии.
func CSRFToken(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.CSRFToken
	}
	return ""
}

// RequireSupplier пропускает только поставщиков с действующей сессией
// и проверяет CSRF-токен у запросов POST.
func (m *Manager) RequireSupplier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Parse(r)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				m.logger.Info("rejected session", slog.String("path", r.URL.Path), slog.Any("error", err))
			}
			http.Redirect(w, r, m.loginURL(r), http.StatusFound)
			return
		}
		if s.Supplier.Role != models.SupplierRole {
			WriteFlash(w, r, ErrorNotice(i18n.T(i18n.FlashSupplierLogin)))
			http.Redirect(w, r, m.loginURL(r), http.StatusFound)
			return
		}
		if r.Method == http.MethodPost && !validCSRF(r.PostFormValue(CSRFField), s.CSRFToken) {
			m.logger.Info("csrf token mismatch", slog.String("path", r.URL.Path), slog.Int("supplier_id", s.Supplier.SupplierID))
			WriteFlash(w, r, ErrorNotice(i18n.T(i18n.FlashSessionExpired)))
			http.Redirect(w, r, m.loginURL(r), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// validCSRF сравнивает токен из тела формы с токеном сессии за постоянное время.
func validCSRF(got, want string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func (m *Manager) loginURL(r *http.Request) string {
	next := r.URL.Path
	if r.URL.RawQuery != "" {
		next += "?" + r.URL.RawQuery
	}
	return m.LoginURL + "?" + url.Values{"next": {next}}.Encode()
}
