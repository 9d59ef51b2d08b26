package views

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/router/paths"
)

// Breadcrumb - звено навигационной цепочки. Последнее звено без ссылки.
type Breadcrumb struct {
	Label string
	URL   string
}

// Flash - одноразовое сообщение над содержимым страницы.
type Flash struct {
	Kind    string
	Message string
}

// Page - общие данные для каркаса страницы.
type Page struct {
	Title       string
	Breadcrumbs []Breadcrumb
	Flash       *Flash
	StaticURL   string
	CSRFToken   string
}

// WithTitle возвращает копию страницы с заголовком и цепочкой навигации.
func (p Page) WithTitle(title string, crumbs ...Breadcrumb) Page {
	p.Title = title
	p.Breadcrumbs = crumbs
	return p
}

// AccountCrumbs - начало цепочки навигации страниц поставщика.
func AccountCrumbs(extra ...Breadcrumb) []Breadcrumb {
	crumbs := []Breadcrumb{
		{Label: i18n.T(i18n.UIServiceName), URL: "/"},
		{Label: i18n.T(i18n.UIYourAccount), URL: paths.Account},
	}
	return append(crumbs, extra...)
}

// Layout оборачивает тело страницы в общий каркас.
func Layout(page Page, body templ.Component) templ.Component {
	return component(func(b *builder) {
		b.raw("<!DOCTYPE html>")
		b.open("html", a("lang", "en-GB"))
		b.open("head")
		b.open("meta", a("charset", "utf-8"))
		b.el("title", page.Title+" – "+i18n.T(i18n.UIServiceName))
		if page.StaticURL != "" {
			b.open("link", a("rel", "stylesheet"), a("href", page.StaticURL+"/application.css"))
		}
		b.close("head")

		b.open("body")
		b.open("header", a("class", "govuk-header"))
		b.link("/", i18n.T(i18n.UIServiceName), a("class", "govuk-header__link"))
		b.close("header")

		b.open("div", a("class", "govuk-width-container"))
		breadcrumbs(b, page.Breadcrumbs)
		b.open("main", a("id", "content"), a("class", "govuk-main-wrapper"))
		if page.Flash != nil {
			b.el("div", page.Flash.Message,
				a("class", "dm-alert dm-alert--"+page.Flash.Kind),
				a("role", "alert"),
				a("data-flash", page.Flash.Kind))
		}
		b.render(body)
		b.close("main")
		b.close("div")
		b.close("body")
		b.close("html")
	})
}

func breadcrumbs(b *builder, crumbs []Breadcrumb) {
	if len(crumbs) == 0 {
		return
	}
	b.open("nav", a("class", "govuk-breadcrumbs"), a("aria-label", "Breadcrumb"))
	b.open("ol", a("class", "govuk-breadcrumbs__list"))
	for _, crumb := range crumbs {
		b.open("li", a("class", "govuk-breadcrumbs__list-item"))
		if crumb.URL != "" {
			b.link(crumb.URL, crumb.Label, a("class", "govuk-breadcrumbs__link"))
		} else {
			b.text(crumb.Label)
		}
		b.close("li")
	}
	b.close("ol")
	b.close("nav")
}

// ErrorPage - страница ошибки для кода ответа.
func ErrorPage(page Page, status int) templ.Component {
	title, body := errorCopy(status)
	page = page.WithTitle(title)
	return Layout(page, component(func(b *builder) {
		b.el("h1", title, a("class", "govuk-heading-l"))
		b.el("p", body, a("class", "govuk-body"))
	}))
}

func errorCopy(status int) (string, string) {
	switch status {
	case http.StatusBadRequest:
		return i18n.T(i18n.ErrorBadRequestTitle), i18n.T(i18n.ErrorBadRequestBody)
	case http.StatusNotFound:
		return i18n.T(i18n.ErrorNotFoundTitle), i18n.T(i18n.ErrorNotFoundBody)
	default:
		return i18n.T(i18n.ErrorTechnicalTitle), i18n.T(i18n.ErrorTechnicalBody)
	}
}
