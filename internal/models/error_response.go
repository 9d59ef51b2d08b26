package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// ErrorKind - класс ошибки, определяющий ответ пользователю.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindForbidden           ErrorKind = "forbidden"
	KindValidationFailed    ErrorKind = "validation_failed"
	KindBusinessRule        ErrorKind = "business_rule"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindSessionExpired      ErrorKind = "session_expired"
	KindBadRequest          ErrorKind = "bad_request"
	KindInternal            ErrorKind = "internal"
)

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	Kind       ErrorKind `json:"-"`
	StatusCode int       `json:"-"`
	Message    string    `json:"reason"`
	Cause      error     `json:"-"`
}

// NewErrorResponse создает новую ошибку с заданным кодом.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		Kind:       kindForStatus(statusCode),
		StatusCode: statusCode,
		Message:    message,
	}
}

func (e *ErrorResponse) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ErrorResponse) Unwrap() error {
	return e.Cause
}

// Wrap сохраняет исходную ошибку для журнала.
func (e *ErrorResponse) Wrap(cause error) *ErrorResponse {
	e.Cause = cause
	return e
}

// NotFound - ресурс отсутствует, недоступен или чужой.
func NotFound() *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, "not found")
}

// Forbidden - поставщик не имеет права работать с брифом.
func Forbidden(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusForbidden, message)
}

// Unavailable - внешний сервис недоступен.
func Unavailable(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusServiceUnavailable, message)
}

func kindForStatus(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusForbidden:
		return KindForbidden
	case statusCode == http.StatusBadRequest:
		return KindBadRequest
	case statusCode == http.StatusServiceUnavailable:
		return KindUpstreamUnavailable
	default:
		return KindInternal
	}
}

// APIError - ошибка, полученная от внешнего API.
type APIError struct {
	StatusCode int
	Message    any
}

func (e *APIError) Error() string {
	switch msg := e.Message.(type) {
	case string:
		return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
	default:
		b, _ := json.Marshal(msg)
		return fmt.Sprintf("api error %d: %s", e.StatusCode, b)
	}
}

// IsServerError сообщает, что ошибка вызвана сбоем на стороне API.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// Fields возвращает структурированные ошибки полей, если они есть.
func (e *APIError) Fields() (map[string]any, bool) {
	fields, ok := e.Message.(map[string]any)
	return fields, ok
}

// FieldError - ошибка валидации одного поля, для списков с индексом.
type FieldError struct {
	Question string
	Field    string
	Index    int
	Code     string
}

// Indexed сообщает, относится ли ошибка к элементу списка.
func (f FieldError) Indexed() bool {
	return f.Index >= 0
}

// ValidationErrors - упорядоченный набор ошибок полей.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("%d validation errors", len(v))
}

// For возвращает ошибки, относящиеся к вопросу.
func (v ValidationErrors) For(question string) ValidationErrors {
	var out ValidationErrors
	for _, fe := range v {
		if fe.Question == question {
			out = append(out, fe)
		}
	}
	return out
}

// Find ищет ошибку по вопросу, полю и индексу.
func (v ValidationErrors) Find(question, field string, index int) (FieldError, bool) {
	for _, fe := range v {
		if fe.Question == question && fe.Field == field && fe.Index == index {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Has сообщает, есть ли ошибка с заданным кодом у вопроса.
func (v ValidationErrors) Has(question, code string) bool {
	for _, fe := range v {
		if fe.Question == question && fe.Code == code {
			return true
		}
	}
	return false
}

// ParseValidationErrors разбирает структурированную ошибку API.
// Значение поля - либо код ошибки, либо список {field, index, error}.
func ParseValidationErrors(payload map[string]any) ValidationErrors {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out ValidationErrors
	for _, key := range keys {
		switch value := payload[key].(type) {
		case string:
			out = append(out, FieldError{Question: key, Index: -1, Code: value})
		case []any:
			for _, item := range value {
				entry, ok := item.(map[string]any)
				if !ok {
					continue
				}
				fe := FieldError{Question: key, Index: -1}
				fe.Field, _ = entry["field"].(string)
				fe.Code, _ = entry["error"].(string)
				if index, ok := entry["index"].(float64); ok {
					fe.Index = int(index)
				}
				out = append(out, fe)
			}
		}
	}
	return out
}
