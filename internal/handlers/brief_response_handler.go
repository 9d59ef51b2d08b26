package handlers

import (
	"log/slog"
	"net/http"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/router/paths"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
	"github.com/senyabanana/brief-responses-frontend/internal/views"
)

// BriefResponseHandler - обработчики мастера заполнения заявки.
type BriefResponseHandler struct {
	Base
	Service *services.BriefResponseService
}

// NewBriefResponseHandler создает новый экземпляр BriefResponseHandler.
func NewBriefResponseHandler(base Base, service *services.BriefResponseService) *BriefResponseHandler {
	return &BriefResponseHandler{Base: base, Service: service}
}

// Start показывает страницу "перед началом" или ведет к уже начатой заявке.
func (h *BriefResponseHandler) Start(w http.ResponseWriter, r *http.Request) {
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

	state, err := h.Service.Start(ctx, briefID, supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to start brief response")
		return
	}

	switch {
	case state.Submitted != nil:
		h.redirect(w, r, paths.Application(briefID, state.Submitted.ID))
	case state.Draft != nil:
		h.redirect(w, r, paths.Response(briefID, state.Draft.ID))
	default:
		h.render(w, r, http.StatusOK, views.StartPage(h.page(w, r), state.Brief))
	}
}

// CreateResponse создает пустую заявку и ведет к ее первому разделу.
func (h *BriefResponseHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
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

	state, err := h.Service.StartResponse(ctx, briefID, supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to create brief response")
		return
	}

	if state.Submitted != nil {
		h.redirect(w, r, paths.Application(briefID, state.Submitted.ID))
		return
	}
	h.redirect(w, r, paths.Response(briefID, state.Draft.ID))
}

// Resume ведет к первому неотвеченному разделу или к проверке ответов.
func (h *BriefResponseHandler) Resume(w http.ResponseWriter, r *http.Request) {
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

	sectionID, err := h.Service.FirstIncomplete(ctx, briefID, responseID, supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to resume brief response")
		return
	}
	if sectionID == "" {
		h.redirect(w, r, paths.Application(briefID, responseID))
		return
	}
	h.redirect(w, r, paths.Section(briefID, responseID, sectionID))
}

// ShowSection показывает раздел заявки с сохраненными ответами.
func (h *BriefResponseHandler) ShowSection(w http.ResponseWriter, r *http.Request) {
	h.showSection(w, r, false)
}

// ShowEditSection показывает раздел при правке со страницы проверки ответов.
func (h *BriefResponseHandler) ShowEditSection(w http.ResponseWriter, r *http.Request) {
	h.showSection(w, r, true)
}

// SaveSection сохраняет раздел заявки.
func (h *BriefResponseHandler) SaveSection(w http.ResponseWriter, r *http.Request) {
	h.saveSection(w, r, false)
}

// SaveEditSection сохраняет раздел и возвращает к проверке ответов.
func (h *BriefResponseHandler) SaveEditSection(w http.ResponseWriter, r *http.Request) {
	h.saveSection(w, r, true)
}

func (h *BriefResponseHandler) showSection(w http.ResponseWriter, r *http.Request, editFlow bool) {
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

	sectionPage, err := h.Service.LoadSection(ctx, briefID, responseID, r.PathValue("section"), supplier, editFlow)
	if err != nil {
		h.handleError(w, r, err, "failed to load section")
		return
	}
	h.render(w, r, http.StatusOK, views.SectionForm(h.page(w, r), sectionPage))
}

func (h *BriefResponseHandler) saveSection(w http.ResponseWriter, r *http.Request, editFlow bool) {
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
	if err := r.ParseForm(); err != nil {
		h.Logger.Info("failed to parse form", slog.Any("error", err))
		h.renderError(w, r, http.StatusBadRequest)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	outcome, err := h.Service.SaveSection(ctx, briefID, responseID, r.PathValue("section"), supplier, r.PostForm, editFlow)
	if err != nil {
		h.handleError(w, r, err, "failed to save section")
		return
	}

	switch {
	case outcome.Page != nil:
		h.render(w, r, http.StatusBadRequest, views.SectionForm(h.page(w, r), outcome.Page))
	case outcome.Updated:
		session.WriteFlash(w, r, session.SuccessNotice(i18n.T(i18n.FlashApplicationUpdated)))
		h.redirect(w, r, paths.Application(briefID, responseID))
	case outcome.NextSection == "":
		h.redirect(w, r, paths.Application(briefID, responseID))
	default:
		h.redirect(w, r, paths.Section(briefID, responseID, outcome.NextSection))
	}
}
