package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// FlashCookieName - cookie с одноразовым сообщением для следующей страницы.
const FlashCookieName = "dm_flash"

// FlashKind - вид сообщения.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Notice - одноразовое сообщение, переживающее редирект.
type Notice struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// SuccessNotice создает сообщение об успехе.
func SuccessNotice(message string) Notice {
	return Notice{Kind: FlashSuccess, Message: message}
}

// ErrorNotice создает сообщение об ошибке.
func ErrorNotice(message string) Notice {
	return Notice{Kind: FlashError, Message: message}
}

// WriteFlash сохраняет сообщение для следующей страницы.
func WriteFlash(w http.ResponseWriter, r *http.Request, notice Notice) {
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadFlash читает и удаляет сообщение.
func ReadFlash(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return Notice{}, false
	}
	ClearFlash(w, r)
	return decodeNotice(cookie.Value)
}

// ClearFlash удаляет cookie с сообщением.
func ClearFlash(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decodeNotice(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalizeNotice(notice)
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Message = strings.TrimSpace(notice.Message)
	if notice.Message == "" {
		return Notice{}, false
	}
	switch notice.Kind {
	case FlashSuccess, FlashError:
		return notice, true
	}
	return Notice{}, false
}
