package handlers

import (
	"net/http"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
	"github.com/senyabanana/brief-responses-frontend/internal/views"
)

// questionField - имя поля формы с вопросом покупателю.
const questionField = "clarification-question"

// ClarificationHandler - вопросы поставщика покупателю.
type ClarificationHandler struct {
	Base
	Service *services.ClarificationService
}

// NewClarificationHandler создает новый экземпляр ClarificationHandler.
func NewClarificationHandler(base Base, service *services.ClarificationService) *ClarificationHandler {
	return &ClarificationHandler{Base: base, Service: service}
}

// QuestionForm показывает форму вопроса по брифу.
func (h *ClarificationHandler) QuestionForm(w http.ResponseWriter, r *http.Request) {
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

	brief, err := h.Service.QuestionForm(ctx, briefID, supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to load question form")
		return
	}
	h.render(w, r, http.StatusOK, views.QuestionForm(h.page(w, r), views.QuestionFormData{Brief: brief}))
}

// AskQuestion отправляет вопрос покупателю и подтверждение поставщику.
func (h *ClarificationHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
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

	outcome, err := h.Service.AskQuestion(ctx, briefID, supplier, r.PostFormValue(questionField))
	if err != nil {
		h.handleError(w, r, err, "failed to send clarification question")
		return
	}

	page := h.page(w, r)
	if !outcome.Sent {
		h.render(w, r, http.StatusBadRequest, views.QuestionForm(page, views.QuestionFormData{
			Brief:    outcome.Brief,
			Question: outcome.Question,
			Error:    outcome.Error,
		}))
		return
	}

	h.Logger.Info("clarification question sent", "brief_id", briefID, "supplier_id", supplier.SupplierID)
	page.Flash = &views.Flash{Kind: string(session.FlashSuccess), Message: i18n.T(i18n.FlashQuestionSent, outcome.Brief.Title)}
	h.render(w, r, http.StatusOK, views.QuestionForm(page, views.QuestionFormData{Brief: outcome.Brief}))
}

// QuestionAndAnswerSession показывает сведения о сессии вопросов и ответов.
func (h *ClarificationHandler) QuestionAndAnswerSession(w http.ResponseWriter, r *http.Request) {
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

	brief, err := h.Service.QuestionAndAnswerSession(ctx, briefID, supplier)
	if err != nil {
		h.handleError(w, r, err, "failed to load question and answer session")
		return
	}
	h.render(w, r, http.StatusOK, views.QuestionAndAnswerSession(h.page(w, r), brief))
}
