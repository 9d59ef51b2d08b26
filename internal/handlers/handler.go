package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"
	"github.com/senyabanana/brief-responses-frontend/internal/views"
)

// Base - общие зависимости обработчиков страниц.
type Base struct {
	Logger    *slog.Logger
	Timeout   time.Duration
	StaticURL string
}

// NewBase создает новый экземпляр Base.
func NewBase(logger *slog.Logger, timeout time.Duration, staticURL string) Base {
	if logger == nil {
		logger = slog.Default()
	}
	return Base{Logger: logger, Timeout: timeout, StaticURL: staticURL}
}

func (h Base) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.Timeout)
}

// page собирает общие данные страницы и забирает flash-сообщение.
func (h Base) page(w http.ResponseWriter, r *http.Request) views.Page {
	page := views.Page{
		StaticURL: h.StaticURL,
		CSRFToken: session.CSRFToken(r.Context()),
	}
	if notice, ok := session.ReadFlash(w, r); ok {
		page.Flash = &views.Flash{Kind: string(notice.Kind), Message: notice.Message}
	}
	return page
}

func (h Base) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}

// supplier возвращает поставщика из сессии. Без сессии отвечает 500:
// маршрут забыли закрыть проверкой сессии.
func (h Base) supplier(w http.ResponseWriter, r *http.Request) (models.Supplier, bool) {
	supplier, ok := session.SupplierFrom(r.Context())
	if !ok {
		h.Logger.Error("route is not protected by session middleware", slog.String("path", r.URL.Path))
		h.renderError(w, r, http.StatusInternalServerError)
	}
	return supplier, ok
}

// pathID разбирает числовой параметр пути. Некорректный идентификатор - 404.
func (h Base) pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, ok := utils.ParseID(r.PathValue(name))
	if !ok {
		h.renderError(w, r, http.StatusNotFound)
	}
	return id, ok
}

func (h Base) renderError(w http.ResponseWriter, r *http.Request, status int) {
	h.render(w, r, status, views.ErrorPage(h.page(w, r), status))
}

// handleError отвечает страницей, соответствующей ошибке сервиса.
func (h Base) handleError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var ineligible *services.IneligibleError
	if errors.As(err, &ineligible) {
		h.Logger.Info(action, slog.String("reason", string(ineligible.Verdict.Reason)), slog.String("path", r.URL.Path))
		h.render(w, r, http.StatusForbidden, views.NotEligible(h.page(w, r), ineligible.Verdict))
		return
	}

	var errorResponse *models.ErrorResponse
	if errors.As(err, &errorResponse) {
		if errorResponse.StatusCode >= http.StatusInternalServerError {
			h.Logger.Error(action, slog.Int("status", errorResponse.StatusCode), slog.Any("error", err))
		} else {
			h.Logger.Info(action, slog.Int("status", errorResponse.StatusCode), slog.Any("error", err))
		}
		h.renderError(w, r, errorResponse.StatusCode)
		return
	}

	h.Logger.Error(action, slog.Any("error", err))
	h.renderError(w, r, http.StatusInternalServerError)
}

func (h Base) redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}

// NotFound отвечает страницей 404 на неизвестные адреса.
func (h Base) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound)
}
