package utils

import (
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	"2006-01-02T15:04:05.000000Z",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseTimestamp разбирает дату из API в одном из известных форматов.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DateFormat форматирует дату как "Tuesday 29 March 2016", иначе возвращает исходную строку.
func DateFormat(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return value
	}
	return t.Format("Monday 2 January 2006")
}

// DateTimeFormat форматирует момент как "Thursday 7 April 2016 at 12:00am GMT".
func DateTimeFormat(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return value
	}
	return t.Format("Monday 2 January 2006 at 3:04pm") + " GMT"
}

// ParseID разбирает числовой идентификатор из пути.
func ParseID(value string) (int, bool) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Contains - проверка вхождения значения в набор допустимых.
func Contains[T comparable](valid []T, value T) bool {
	for _, candidate := range valid {
		if candidate == value {
			return true
		}
	}
	return false
}

// WordCount считает слова, разделенные пробельными символами.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

var anExceptions = []string{"one", "once", "uni", "use", "usa", "usu", "eu", "ewe"}

// IndefiniteArticle выбирает "a" или "an" по первому звуку слова.
func IndefiniteArticle(word string) string {
	lower := strings.ToLower(strings.TrimSpace(word))
	if lower == "" {
		return "a"
	}
	for _, prefix := range anExceptions {
		if strings.HasPrefix(lower, prefix) {
			return "a"
		}
	}
	if strings.HasPrefix(lower, "hour") || strings.HasPrefix(lower, "honest") {
		return "an"
	}
	switch rune(lower[0]) {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

// WithArticle возвращает фразу с неопределенным артиклем.
func WithArticle(word string) string {
	return IndefiniteArticle(word) + " " + strings.ToLower(strings.TrimSpace(word))
}
