package views

import (
	"github.com/a-h/templ"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/router/paths"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"
)

// CheckAnswers - страница проверки и отправки ответов.
func CheckAnswers(page Page, ap *services.ApplicationPage) templ.Component {
	brief := ap.Brief
	heading := i18n.T(i18n.CheckAnswersSubmittedHeading, brief.Title)
	crumb := i18n.T(i18n.CheckAnswersSubmittedCrumb)
	if ap.IsDraft() {
		heading = i18n.T(i18n.CheckAnswersDraftHeading)
		crumb = i18n.T(i18n.CheckAnswersDraftCrumb)
	}
	page = page.WithTitle(heading, AccountCrumbs(
		Breadcrumb{Label: brief.Title, URL: paths.Opportunity(brief.FrameworkFramework, brief.ID)},
		Breadcrumb{Label: crumb},
	)...)

	return Layout(page, component(func(b *builder) {
		if ap.Alert != "" {
			b.el("div", ap.Alert, a("class", "dm-alert dm-alert--error"), a("role", "alert"), a("id", "submission-alert"))
		}
		b.el("h1", heading, a("class", "govuk-heading-l"))
		if ap.ShowOutcome {
			b.el("p", i18n.T(i18n.UIOutcomePublished), a("class", "govuk-body"), a("id", "outcome"))
		}
		if ap.CanSubmit && brief.ApplicationsClosedAt != "" {
			b.el("p", i18n.T(i18n.CheckAnswersUpdateUntil, utils.DateTimeFormat(brief.ApplicationsClosedAt)), a("class", "govuk-body"))
		}

		for _, group := range ap.Groups {
			b.el("h2", group.Heading, a("class", "govuk-heading-m"))
			b.open("dl", a("class", "govuk-summary-list"))
			for _, row := range group.Rows {
				summaryRow(b, ap, row)
			}
			b.close("dl")
		}

		if ap.CanSubmit {
			b.open("form", a("method", "post"), a("action", paths.Application(brief.ID, ap.Response.ID)))
			b.hidden(session.CSRFField, page.CSRFToken)
			b.button(i18n.T(i18n.UISubmitApplication))
			b.close("form")
		}
		b.link(paths.Opportunity(brief.FrameworkFramework, brief.ID), i18n.T(i18n.UIViewOpportunity), a("class", "govuk-link"))
	}))
}

func summaryRow(b *builder, ap *services.ApplicationPage, row services.SummaryRow) {
	b.open("div", a("class", "govuk-summary-list__row"), a("id", "summary-"+row.Section.ID))
	b.el("dt", row.Label, a("class", "govuk-summary-list__key"))
	b.open("dd", a("class", "govuk-summary-list__value"))
	switch {
	case len(row.Items) == 0:
		b.el("span", i18n.T(i18n.ValidationRequired), a("class", "dm-summary-missing"))
	case len(row.Items) == 1 && row.Items[0].Label == "":
		b.text(row.Items[0].Value)
	default:
		b.open("ul", a("class", "govuk-list"))
		for _, item := range row.Items {
			b.open("li")
			if item.Label != "" {
				b.el("strong", item.Label)
				b.raw(" ")
			}
			b.text(item.Value)
			b.close("li")
		}
		b.close("ul")
	}
	b.close("dd")
	if ap.ShowEdit && row.Section.Editable() {
		b.open("dd", a("class", "govuk-summary-list__actions"))
		b.link(paths.EditSection(ap.Brief.ID, ap.Response.ID, row.EditURL), i18n.T(i18n.UIEdit), a("class", "govuk-link"))
		b.close("dd")
	}
	b.close("div")
}

// ResultPage - подтверждение отправленной заявки.
func ResultPage(page Page, rp *services.ResultPage) templ.Component {
	brief := rp.Brief
	heading := i18n.T(i18n.UIResultHeading, brief.Title)
	page = page.WithTitle(heading, AccountCrumbs(
		Breadcrumb{Label: brief.Title, URL: paths.Opportunity(brief.FrameworkFramework, brief.ID)},
		Breadcrumb{Label: i18n.T(i18n.CheckAnswersSubmittedCrumb)},
	)...)

	return Layout(page, component(func(b *builder) {
		b.el("h1", heading, a("class", "govuk-heading-l"))
		b.el("h2", i18n.T(i18n.UIWhatHappensNext), a("class", "govuk-heading-m"))
		if brief.ApplicationsClosedAt != "" {
			b.el("p", i18n.T(i18n.UIResultClosing, utils.DateFormat(brief.ApplicationsClosedAt)), a("class", "govuk-body"))
		}
		b.el("h3", i18n.T(i18n.UIShortlist), a("class", "govuk-heading-s"))
		b.el("p", i18n.T(i18n.UIShortlistBody), a("class", "govuk-body"))
		b.open("ul", a("class", "govuk-list govuk-list--bullet"), a("id", "evaluation-methods"))
		for _, method := range rp.Evaluations {
			b.el("li", method)
		}
		b.close("ul")
		if rp.Response != nil {
			b.link(paths.Application(brief.ID, rp.Response.ID), i18n.T(i18n.CheckAnswersSubmittedCrumb), a("class", "govuk-link"))
		}
	}))
}

// NotEligible - страница отказа с причиной, 403.
func NotEligible(page Page, verdict services.EligibilityVerdict) templ.Component {
	action := i18n.T(i18n.EligibilityApplyAction)
	if verdict.Mode == services.ClarificationMode {
		action = i18n.T(i18n.EligibilityClarificationAction)
	}
	heading := i18n.T(i18n.EligibilityHeading, action)

	var reason string
	switch verdict.Reason {
	case services.NotOnFramework:
		reason = i18n.T(i18n.EligibilityNotOnFramework, action, verdict.FrameworkName)
	case services.NotOnLot:
		reason = i18n.T(i18n.EligibilityNotOnLot, action, verdict.FrameworkName)
	default:
		reason = i18n.T(i18n.EligibilityNotOnRole, action, verdict.FrameworkName)
	}

	page = page.WithTitle(heading, AccountCrumbs(Breadcrumb{Label: heading})...)
	return Layout(page, component(func(b *builder) {
		b.el("h1", heading, a("class", "govuk-heading-l"))
		b.el("p", reason, a("class", "govuk-body"), a("data-reason", verdict.DataReasonSlug), a("id", "ineligible-reason"))
	}))
}
