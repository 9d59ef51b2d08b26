package views

import (
	"github.com/a-h/templ"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/router/paths"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"
)

// QuestionFormData - состояние формы вопроса покупателю.
type QuestionFormData struct {
	Brief    *models.Brief
	Question string
	Error    string
}

// QuestionForm - форма вопроса по брифу.
func QuestionForm(page Page, data QuestionFormData) templ.Component {
	brief := data.Brief
	heading := i18n.T(i18n.UIQuestionHeading, brief.Title)
	page = page.WithTitle(heading, AccountCrumbs(
		Breadcrumb{Label: brief.Title, URL: paths.Opportunity(brief.FrameworkFramework, brief.ID)},
		Breadcrumb{Label: heading},
	)...)

	return Layout(page, component(func(b *builder) {
		if data.Error != "" {
			b.open("div", a("class", "govuk-error-summary"), a("id", "error-summary"), a("role", "alert"))
			b.el("h2", i18n.T(i18n.ErrorSummaryTitle), a("class", "govuk-error-summary__title"))
			b.open("ul", a("class", "govuk-list govuk-error-summary__list"))
			b.open("li")
			b.link("#input-clarification-question", data.Error)
			b.close("li")
			b.close("ul")
			b.close("div")
		}

		b.el("h1", heading, a("class", "govuk-heading-l"))
		b.open("form", a("method", "post"), a("action", paths.AskQuestion(brief.ID)), flag("novalidate", true))
		b.hidden(session.CSRFField, page.CSRFToken)
		b.el("label", i18n.T(i18n.UIQuestionLabel), a("class", "govuk-label"), a("for", "input-clarification-question"))
		if brief.ClarificationQuestionsPublishedBy != "" {
			b.el("div", i18n.T(i18n.UIQuestionHint, utils.DateFormat(brief.ClarificationQuestionsPublishedBy)), a("class", "govuk-hint"))
		}
		if data.Error != "" {
			b.open("span", a("class", "govuk-error-message"), a("id", "error-clarification-question"))
			b.el("span", i18n.T(i18n.ErrorInlinePrefix), a("class", "govuk-visually-hidden"))
			b.text(" " + data.Error)
			b.close("span")
		}
		b.open("textarea", a("class", "govuk-textarea"), a("id", "input-clarification-question"), a("name", "clarification-question"), a("rows", "8"))
		b.text(data.Question)
		b.close("textarea")
		b.button(i18n.T(i18n.UIQuestionSubmit))
		b.close("form")
	}))
}

// QuestionAndAnswerSession - сведения о сессии вопросов и ответов.
func QuestionAndAnswerSession(page Page, brief *models.Brief) templ.Component {
	heading := i18n.T(i18n.UIQASessionHeading)
	page = page.WithTitle(heading, AccountCrumbs(
		Breadcrumb{Label: brief.Title, URL: paths.Opportunity(brief.FrameworkFramework, brief.ID)},
		Breadcrumb{Label: heading},
	)...)

	return Layout(page, component(func(b *builder) {
		b.el("h1", heading, a("class", "govuk-heading-l"))
		b.el("p", brief.QuestionAndAnswerSessionDetails, a("class", "govuk-body"), a("id", "session-details"))
	}))
}
