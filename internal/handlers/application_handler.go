package handlers

import (
	"net/http"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/router/paths"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
	"github.com/senyabanana/brief-responses-frontend/internal/views"
)

// ApplicationHandler - проверка ответов, отправка заявки и страница результата.
type ApplicationHandler struct {
	Base
	Service *services.ApplicationService
}

// NewApplicationHandler создает новый экземпляр ApplicationHandler.
func NewApplicationHandler(base Base, service *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Base: base, Service: service}
}

// CheckAnswers показывает ответы заявки по группам.
func (h *ApplicationHandler) CheckAnswers(w http.ResponseWriter, r *http.Request) {
	briefID, ok := h.pathID(w, r, "briefId")
	if !ok {
		return
	}
	responseID, ok := h.pathID(w, r, "responseId")
	if !ok {
		return
	}
	supplier, ok := h.supplier(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	applicationPage, err := h.Service.Summary(ctx, briefID, responseID, supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to load application")
		return
	}
	h.render(w, r, http.StatusOK, views.CheckAnswers(h.page(w, r), applicationPage))
}

// Submit отправляет заявку покупателю.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	briefID, ok := h.pathID(w, r, "briefId")
	if !ok {
		return
	}
	responseID, ok := h.pathID(w, r, "responseId")
	if !ok {
		return
	}
	supplier, ok := h.supplier(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	outcome, err := h.Service.Submit(ctx, briefID, responseID, supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to submit application")
		return
	}
	if outcome.Page != nil {
		h.Logger.Info("application rejected",
			"brief_id", briefID, "response_id", responseID, "alert", outcome.Page.Alert)
		h.render(w, r, http.StatusBadRequest, views.CheckAnswers(h.page(w, r), outcome.Page))
		return
	}

	session.WriteFlash(w, r, session.SuccessNotice(i18n.T(i18n.FlashApplicationSubmitted)))
	h.redirect(w, r, paths.Result(briefID))
}

// Result показывает, что будет после отправки заявки.
func (h *ApplicationHandler) Result(w http.ResponseWriter, r *http.Request) {
	briefID, ok := h.pathID(w, r, "briefId")
	if !ok {
		return
	}
	supplier, ok := h.supplier(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	resultPage, err := h.Service.Result(ctx, briefID, supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to load result")
		return
	}

	switch resultPage.Action {
	case services.RedirectToStart:
		h.redirect(w, r, paths.Start(briefID))
	case services.RedirectToApplication:
		h.redirect(w, r, paths.Application(briefID, resultPage.Response.ID))
	default:
		h.render(w, r, http.StatusOK, views.ResultPage(h.page(w, r), resultPage))
	}
}
