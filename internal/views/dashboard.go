package views

import (
	"github.com/a-h/templ"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/router/paths"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"
)

// Dashboard - заявки поставщика по фреймворку.
func Dashboard(page Page, dashboard *services.OpportunitiesDashboard) templ.Component {
	heading := i18n.T(i18n.UIDashboardHeading, dashboard.Framework.Name)
	page = page.WithTitle(heading, AccountCrumbs(Breadcrumb{Label: heading})...)

	return Layout(page, component(func(b *builder) {
		b.el("h1", heading, a("class", "govuk-heading-l"))
		responseTable(b, "drafts", i18n.T(i18n.UIDashboardDrafts), i18n.T(i18n.UIDashboardNoDrafts), dashboard.Drafts, true)
		responseTable(b, "completed", i18n.T(i18n.UIDashboardCompleted), i18n.T(i18n.UIDashboardNoComplete), dashboard.Completed, false)
	}))
}

func responseTable(b *builder, id, heading, empty string, responses []models.BriefResponse, drafts bool) {
	b.open("section", a("id", id))
	b.el("h2", heading, a("class", "govuk-heading-m"))
	if len(responses) == 0 {
		b.el("p", empty, a("class", "govuk-body"))
		b.close("section")
		return
	}
	b.open("ul", a("class", "govuk-list"))
	for _, response := range responses {
		if response.Brief == nil {
			continue
		}
		b.open("li", a("class", "dm-opportunity"))
		target := paths.Opportunity(response.Brief.FrameworkFramework, response.Brief.ID)
		if drafts {
			target = paths.Application(response.Brief.ID, response.ID)
		}
		b.link(target, response.Brief.Title, a("class", "govuk-link"))
		if response.Brief.ApplicationsClosedAt != "" {
			b.el("p", i18n.T(i18n.UIDashboardClosing, utils.DateFormat(response.Brief.ApplicationsClosedAt)), a("class", "govuk-body-s"))
		}
		b.close("li")
	}
	b.close("ul")
	b.close("section")
}
