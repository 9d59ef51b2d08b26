package views

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/senyabanana/brief-responses-frontend/internal/content"
	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/router/paths"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
)

// StartPage - страница "перед началом" заявки.
func StartPage(page Page, brief *models.Brief) templ.Component {
	heading := i18n.T(i18n.UIStartHeading, brief.Title)
	page = page.WithTitle(heading, AccountCrumbs(Breadcrumb{Label: brief.Title, URL: paths.Opportunity(brief.FrameworkFramework, brief.ID)}, Breadcrumb{Label: heading})...)
	return Layout(page, component(func(b *builder) {
		b.el("h1", heading, a("class", "govuk-heading-l"))
		b.el("h2", i18n.T(i18n.UIStartIntro), a("class", "govuk-heading-m"))
		b.el("p", i18n.T(i18n.UIStartBody), a("class", "govuk-body"))
		b.open("form", a("method", "post"), a("action", paths.Start(brief.ID)))
		b.hidden(session.CSRFField, page.CSRFToken)
		b.button(i18n.T(i18n.UIStartApplication))
		b.close("form")
	}))
}

// SectionForm - страница одной секции мастера заявки.
func SectionForm(page Page, sp *services.SectionPage) templ.Component {
	brief := sp.Brief
	section := sp.Section
	question := section.QuestionFor(brief)

	action := paths.Section(brief.ID, sp.Response.ID, section.ID)
	back := ""
	if sp.EditFlow {
		action = paths.EditSection(brief.ID, sp.Response.ID, section.ID)
		back = paths.Application(brief.ID, sp.Response.ID)
	} else if sp.PreviousID != "" {
		back = paths.Section(brief.ID, sp.Response.ID, sp.PreviousID)
	}

	page = page.WithTitle(question, AccountCrumbs(
		Breadcrumb{Label: brief.Title, URL: paths.Opportunity(brief.FrameworkFramework, brief.ID)},
		Breadcrumb{Label: section.Name},
	)...)

	return Layout(page, component(func(b *builder) {
		if back != "" {
			label := i18n.T(i18n.UIBackToPrevious)
			if sp.EditFlow {
				label = i18n.T(i18n.UIBackToApplication)
			}
			b.link(back, label, a("class", "govuk-back-link"))
		}
		if len(sp.Errors) > 0 {
			errorSummary(b, sp)
		}

		b.open("form", a("method", "post"), a("action", action), flag("novalidate", true))
		b.hidden(session.CSRFField, page.CSRFToken)
		b.open("fieldset", a("class", "govuk-fieldset"), a("id", "section-"+section.ID))
		b.open("legend", a("class", "govuk-fieldset__legend govuk-fieldset__legend--l"))
		b.el("h1", question, a("class", "govuk-fieldset__heading"))
		b.close("legend")
		if hint := section.HintFor(brief); hint != "" {
			b.el("div", hint, a("class", "govuk-hint"), a("id", section.ID+"-hint"))
		}
		if sp.MaxDayRate != "" {
			b.el("p", i18n.T(i18n.UIMaxDayRate, i18n.Money(sp.MaxDayRate)), a("class", "govuk-body"), a("id", "max-day-rate"))
		}

		switch section.Type {
		case content.TextSection:
			textInput(b, sp)
		case content.BooleanSection:
			fe, hasErr := sp.Errors.Find(section.ID, "", -1)
			inlineError(b, sp, fe, hasErr)
			yesNoRadios(b, section.ID, "input-"+section.ID, sp.Values[section.ID])
		case content.BooleanListSection:
			for i, item := range section.Items(brief) {
				key := fmt.Sprintf("%s-%d", section.ID, i)
				b.open("div", a("class", "govuk-form-group"))
				b.el("p", item, a("class", "govuk-body govuk-!-font-weight-bold"))
				fe, hasErr := sp.Errors.Find(section.ID, "", i)
				inlineError(b, sp, fe, hasErr)
				yesNoRadios(b, key, "input-"+key, sp.Values[key])
				b.close("div")
			}
		case content.EvidenceListSection:
			for i, item := range section.Items(brief) {
				b.open("div", a("class", "govuk-form-group"))
				evidenceInput(b, sp, item, i)
				b.close("div")
			}
		case content.YesNoEvidenceListSection:
			for i, item := range section.Items(brief) {
				key := fmt.Sprintf("yesNo-%d", i)
				b.open("div", a("class", "govuk-form-group"))
				b.el("p", item, a("class", "govuk-body govuk-!-font-weight-bold"))
				fe, hasErr := sp.Errors.Find(section.ID, "yesNo", i)
				inlineError(b, sp, fe, hasErr)
				yesNoRadios(b, key, "input-"+key, sp.Values[key])
				evidenceInput(b, sp, "", i)
				b.close("div")
			}
		}
		b.close("fieldset")

		if sp.EditFlow {
			b.button(i18n.T(i18n.UISaveAndReturn))
		} else {
			b.button(i18n.T(i18n.UISaveAndContinue))
		}
		b.close("form")
	}))
}

func errorSummary(b *builder, sp *services.SectionPage) {
	b.open("div", a("class", "govuk-error-summary"), a("id", "error-summary"), a("role", "alert"))
	b.el("h2", i18n.T(i18n.ErrorSummaryTitle), a("class", "govuk-error-summary__title"))
	b.open("ul", a("class", "govuk-list govuk-error-summary__list"))
	for _, fe := range sp.Errors {
		b.open("li")
		b.link("#"+errorAnchor(sp.Section, fe), errorText(sp, fe))
		b.close("li")
	}
	b.close("ul")
	b.close("div")
}

func errorText(sp *services.SectionPage, fe models.FieldError) string {
	fallback := i18n.T(i18n.ValidationDefault)
	if fe.Code == "answer_required" {
		fallback = i18n.T(i18n.ValidationRequired)
	}
	return sp.Section.ErrorMessage(fe, sp.Brief, fallback)
}

// errorAnchor возвращает id поля, к которому относится ошибка.
func errorAnchor(section *content.Section, fe models.FieldError) string {
	switch {
	case fe.Indexed() && fe.Field == "evidence":
		return fmt.Sprintf("input-evidence-%d", fe.Index)
	case fe.Indexed() && fe.Field == "yesNo":
		return fmt.Sprintf("input-yesNo-%d-1", fe.Index)
	case fe.Indexed():
		return fmt.Sprintf("input-%s-%d-1", section.ID, fe.Index)
	case section.Type == content.BooleanSection:
		return "input-" + section.ID + "-1"
	}
	return "input-" + section.ID
}

func inlineError(b *builder, sp *services.SectionPage, fe models.FieldError, ok bool) {
	if !ok {
		return
	}
	b.open("span", a("class", "govuk-error-message"), a("id", "error-"+errorAnchor(sp.Section, fe)))
	b.el("span", i18n.T(i18n.ErrorInlinePrefix), a("class", "govuk-visually-hidden"))
	b.text(" " + errorText(sp, fe))
	b.close("span")
}

func textInput(b *builder, sp *services.SectionPage) {
	section := sp.Section
	id := "input-" + section.ID
	fe, hasErr := sp.Errors.Find(section.ID, "", -1)
	inlineError(b, sp, fe, hasErr)

	inputType := section.InputType
	if inputType == "" {
		inputType = "text"
	}
	if section.Prefix != "" {
		b.el("span", section.Prefix, a("class", "dm-input-prefix"))
	}
	class := "govuk-input"
	if hasErr {
		class += " govuk-input--error"
	}
	b.open("input", a("class", class), a("type", inputType), a("id", id), a("name", section.ID), a("value", sp.Values[section.ID]))
}

func evidenceInput(b *builder, sp *services.SectionPage, label string, i int) {
	key := fmt.Sprintf("evidence-%d", i)
	id := "input-" + key
	if label != "" {
		b.el("label", label, a("class", "govuk-label govuk-!-font-weight-bold"), a("for", id))
	}
	fe, hasErr := sp.Errors.Find(sp.Section.ID, "evidence", i)
	inlineError(b, sp, fe, hasErr)
	class := "govuk-textarea"
	if hasErr {
		class += " govuk-textarea--error"
	}
	b.open("textarea", a("class", class), a("id", id), a("name", key), a("rows", "5"))
	b.text(sp.Values[key])
	b.close("textarea")
}

func yesNoRadios(b *builder, name, idPrefix, value string) {
	b.open("div", a("class", "govuk-radios govuk-radios--inline"))
	for i, option := range []struct {
		value string
		label string
	}{
		{"true", i18n.T(i18n.UIYes)},
		{"false", i18n.T(i18n.UINo)},
	} {
		id := fmt.Sprintf("%s-%d", idPrefix, i+1)
		b.open("div", a("class", "govuk-radios__item"))
		b.open("input", a("class", "govuk-radios__input"), a("type", "radio"), a("id", id), a("name", name), a("value", option.value), flag("checked", value == option.value))
		b.el("label", option.label, a("class", "govuk-label govuk-radios__label"), a("for", id))
		b.close("div")
	}
	b.close("div")
}
