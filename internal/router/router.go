package router

import (
	"log/slog"
	"net/http"

	"github.com/senyabanana/brief-responses-frontend/internal/handlers"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
)

// Handlers - обработчики страниц, подключаемые к маршрутам.
type Handlers struct {
	Responses      *handlers.BriefResponseHandler
	Applications   *handlers.ApplicationHandler
	Clarifications *handlers.ClarificationHandler
	Opportunities  *handlers.OpportunitiesHandler
}

// InitRoutes собирает маршруты страниц поставщика и общие middleware.
func InitRoutes(h Handlers, sessions *session.Manager, logger *slog.Logger) http.Handler {
	notFound := http.HandlerFunc(h.Opportunities.NotFound)

	// Страницы брифов и обзор фреймворка разделены: шаблоны
	// {briefId}/ask-a-question и frameworks/{frameworkSlug} пересекаются.
	briefs := http.NewServeMux()
	briefs.HandleFunc("GET /suppliers/opportunities/{briefId}/ask-a-question", h.Clarifications.QuestionForm)
	briefs.HandleFunc("POST /suppliers/opportunities/{briefId}/ask-a-question", h.Clarifications.AskQuestion)
	briefs.HandleFunc("GET /suppliers/opportunities/{briefId}/question-and-answer-session", h.Clarifications.QuestionAndAnswerSession)

	briefs.HandleFunc("GET /suppliers/opportunities/{briefId}/responses/start", h.Responses.Start)
	briefs.HandleFunc("POST /suppliers/opportunities/{briefId}/responses/start", h.Responses.CreateResponse)
	briefs.HandleFunc("GET /suppliers/opportunities/{briefId}/responses/result", h.Applications.Result)
	briefs.HandleFunc("GET /suppliers/opportunities/{briefId}/responses/{responseId}", h.Responses.Resume)
	briefs.HandleFunc("POST /suppliers/opportunities/{briefId}/responses/{responseId}", h.Responses.Resume)
	briefs.HandleFunc("GET /suppliers/opportunities/{briefId}/responses/{responseId}/application", h.Applications.CheckAnswers)
	briefs.HandleFunc("POST /suppliers/opportunities/{briefId}/responses/{responseId}/application", h.Applications.Submit)
	briefs.HandleFunc("GET /suppliers/opportunities/{briefId}/responses/{responseId}/{section}", h.Responses.ShowSection)
	briefs.HandleFunc("POST /suppliers/opportunities/{briefId}/responses/{responseId}/{section}", h.Responses.SaveSection)
	briefs.HandleFunc("GET /suppliers/opportunities/{briefId}/responses/{responseId}/{section}/edit", h.Responses.ShowEditSection)
	briefs.HandleFunc("POST /suppliers/opportunities/{briefId}/responses/{responseId}/{section}/edit", h.Responses.SaveEditSection)
	briefs.Handle("/", notFound)

	frameworks := http.NewServeMux()
	frameworks.HandleFunc("GET /suppliers/opportunities/frameworks/{frameworkSlug}", h.Opportunities.Dashboard)
	frameworks.Handle("/", notFound)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /_status", handlers.StatusHandler(logger))
	mux.Handle("/suppliers/opportunities", notFound)
	mux.HandleFunc("/suppliers/opportunities/{briefId}", h.Opportunities.RedirectToBrief)
	mux.Handle("/suppliers/opportunities/frameworks/", sessions.RequireSupplier(frameworks))
	mux.Handle("/suppliers/opportunities/", sessions.RequireSupplier(briefs))
	mux.Handle("/", notFound)

	return RequestID(LogRequests(logger, SecureHeaders(CanonicalPath(mux))))
}
