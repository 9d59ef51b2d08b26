// Package views рендерит HTML-страницы фронтенда как компоненты templ.
package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// attr - атрибут элемента. Флаговый атрибут выводится без значения, если включен.
type attr struct {
	name  string
	value string
	flag  bool
	on    bool
}

func a(name, value string) attr {
	return attr{name: name, value: value}
}

func flag(name string, on bool) attr {
	return attr{name: name, flag: true, on: on}
}

// builder пишет разметку и запоминает первую ошибку записи.
type builder struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(b *builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &builder{ctx: ctx, w: w}
		fn(b)
		return b.err
	})
}

func (b *builder) raw(parts ...string) {
	for _, part := range parts {
		if b.err != nil {
			return
		}
		_, b.err = io.WriteString(b.w, part)
	}
}

func (b *builder) text(s string) {
	b.raw(templ.EscapeString(s))
}

func (b *builder) open(tag string, attrs ...attr) {
	b.raw("<", tag)
	for _, at := range attrs {
		switch {
		case at.flag && at.on:
			b.raw(" ", at.name)
		case at.flag:
		default:
			b.raw(" ", at.name, `="`, templ.EscapeString(at.value), `"`)
		}
	}
	b.raw(">")
}

func (b *builder) close(tag string) {
	b.raw("</", tag, ">")
}

// el пишет элемент с текстом.
func (b *builder) el(tag, text string, attrs ...attr) {
	b.open(tag, attrs...)
	b.text(text)
	b.close(tag)
}

func (b *builder) link(href, text string, attrs ...attr) {
	b.el("a", text, append([]attr{a("href", href)}, attrs...)...)
}

func (b *builder) render(c templ.Component) {
	if b.err != nil || c == nil {
		return
	}
	b.err = c.Render(b.ctx, b.w)
}

func (b *builder) hidden(name, value string) {
	b.open("input", a("type", "hidden"), a("name", name), a("value", value))
}

func (b *builder) button(label string) {
	b.el("button", label, a("type", "submit"), a("class", "govuk-button"))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
