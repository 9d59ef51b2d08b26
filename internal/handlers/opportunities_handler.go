package handlers

import (
	"net/http"

	"github.com/senyabanana/brief-responses-frontend/internal/router/paths"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/views"
)

// OpportunitiesHandler - публичные страницы брифов и заявки поставщика по фреймворку.
type OpportunitiesHandler struct {
	Base
	Service *services.OpportunitiesService
}

// NewOpportunitiesHandler создает новый экземпляр OpportunitiesHandler.
func NewOpportunitiesHandler(base Base, service *services.OpportunitiesService) *OpportunitiesHandler {
	return &OpportunitiesHandler{Base: base, Service: service}
}

// RedirectToBrief ведет на публичную страницу брифа.
func (h *OpportunitiesHandler) RedirectToBrief(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.NotFound(w, r)
		return
	}

	briefID, ok := h.pathID(w, r, "briefId")
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	brief, err := h.Service.PublishedBrief(ctx, briefID)
	if err != nil {
		h.handleError(w, r, err, "failed to load brief")
		return
	}
	h.redirect(w, r, paths.Opportunity(brief.FrameworkFramework, brief.ID))
}

// Dashboard показывает начатые и отправленные заявки поставщика.
func (h *OpportunitiesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	supplier, ok := h.supplier(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	dashboard, err := h.Service.Dashboard(ctx, r.PathValue("frameworkSlug"), supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to load opportunities dashboard")
		return
	}
	h.render(w, r, http.StatusOK, views.Dashboard(h.page(w, r), dashboard))
}
