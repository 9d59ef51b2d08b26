package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/senyabanana/brief-responses-frontend/internal/content"
	"github.com/senyabanana/brief-responses-frontend/internal/handlers"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/notify"
	"github.com/senyabanana/brief-responses-frontend/internal/repository"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const (
	testBriefID    = 1234
	testResponseID = 5678
	testFramework  = "digital-outcomes-and-specialists-4"
	notifyAPIKey   = "test_key-26785a09-ab16-4eb0-8407-a37497a57506-3d844edf-8d35-48ac-975b-e847b4f122b0"
)

var testSupplier = models.Supplier{SupplierID: 1, EmailAddress: "supplier@example.com", Name: "Supplier", Role: models.SupplierRole}

type env struct {
	api      *fakeAPI
	notify   *fakeNotify
	handler  http.Handler
	sessions *session.Manager
	token    string
	csrf     string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	api := newFakeAPI()
	apiServer := httptest.NewServer(api.routes(t))
	t.Cleanup(apiServer.Close)

	notifier := &fakeNotify{}
	notifyServer := httptest.NewServer(notifier)
	t.Cleanup(notifyServer.Close)

	registry, err := content.Load()
	require.NoError(t, err)
	notifyClient, err := notify.NewClient(notifyServer.URL, notifyAPIKey, time.Second)
	require.NoError(t, err)

	client := repository.NewClient(apiServer.URL, "myToken", time.Second)
	briefs := repository.NewAPIBriefRepository(client)
	frameworks := repository.NewAPIFrameworkRepository(client)
	serviceRepo := repository.NewAPIServiceRepository(client)
	responses := repository.NewAPIBriefResponseRepository(client)
	audit := repository.NewAPIAuditRepository(client)
	eligibility := services.NewEligibilityService(briefs, serviceRepo)

	base := handlers.NewBase(logger, time.Second, "/static")
	sessions := session.NewManager("secret", "dm_session", "/user/login", logger)
	h := Handlers{
		Responses: handlers.NewBriefResponseHandler(base,
			services.NewBriefResponseService(briefs, frameworks, serviceRepo, responses, eligibility, registry)),
		Applications: handlers.NewApplicationHandler(base,
			services.NewApplicationService(briefs, responses, eligibility, registry)),
		Clarifications: handlers.NewClarificationHandler(base,
			services.NewClarificationService(briefs, audit, notifyClient, eligibility,
				services.ClarificationTemplates{Question: "question-template", Confirmation: "confirmation-template"},
				"https://www.example.gov.uk")),
		Opportunities: handlers.NewOpportunitiesHandler(base,
			services.NewOpportunitiesService(briefs, frameworks, responses)),
	}

	e := &env{api: api, notify: notifier, handler: InitRoutes(h, sessions, logger), sessions: sessions}
	e.login(t, testSupplier)
	return e
}

func (e *env) login(t *testing.T, supplier models.Supplier) {
	t.Helper()
	token, err := e.sessions.Issue(supplier, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: e.sessions.CookieName, Value: token})
	s, err := e.sessions.Parse(req)
	require.NoError(t, err)

	e.token = token
	e.csrf = s.CSRFToken
}

func (e *env) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if method == http.MethodPost {
		if form == nil {
			form = url.Values{}
		}
		if _, ok := form[session.CSRFField]; !ok {
			form.Set(session.CSRFField, e.csrf)
		}
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if e.token != "" {
		req.AddCookie(&http.Cookie{Name: e.sessions.CookieName, Value: e.token})
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func flashOf(t *testing.T, rec *httptest.ResponseRecorder) session.Notice {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.FlashCookieName {
			req.AddCookie(cookie)
		}
	}
	notice, ok := session.ReadFlash(httptest.NewRecorder(), req)
	require.True(t, ok, "expected a flash cookie")
	return notice
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func byID(t *testing.T, doc *html.Node, id string) *html.Node {
	t.Helper()
	n := find(doc, func(n *html.Node) bool { return attr(n, "id") == id })
	require.NotNil(t, n, "no element with id %q", id)
	return n
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func responsePath(suffix string) string {
	return "/suppliers/opportunities/1234/responses/5678" + suffix
}

func TestStatusAndCommonHeaders(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/_status", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestTrailingSlashRedirectsPermanently(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/start/?a=b", nil)

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/suppliers/opportunities/1234/responses/start?a=b", rec.Header().Get("Location"))

	rec = e.do(t, http.MethodGet, "//example.com/", nil)
	assert.Equal(t, "/example.com", rec.Header().Get("Location"))
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	e := newEnv(t)

	for _, target := range []string{"/nope", "/suppliers/opportunities", "/suppliers/opportunities/1234/nope"} {
		rec := e.do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Page not found", target)
	}
}

func TestWizardRequiresSession(t *testing.T) {
	e := newEnv(t)
	e.token = ""

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/start", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/user/login?next=%2Fsuppliers%2Fopportunities%2F1234%2Fresponses%2Fstart", rec.Header().Get("Location"))
}

func TestPostWithStaleCSRFTokenRedirectsToLogin(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/suppliers/opportunities/1234/responses/start", url.Values{session.CSRFField: {"stale"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/user/login?next="))
	assert.Equal(t, "Your session has expired. Please log in again.", flashOf(t, rec).Message)
	assert.Empty(t, e.api.responses)
}

func TestBriefRedirectsToPublicPage(t *testing.T) {
	e := newEnv(t)
	e.token = ""

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/digital-outcomes-and-specialists/opportunities/1234", rec.Header().Get("Location"))

	rec = e.do(t, http.MethodGet, "/suppliers/opportunities/4321", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartCreatesResponseAndResumes(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	form := find(parse(t, rec), func(n *html.Node) bool { return n.Data == "form" })
	require.NotNil(t, form)
	assert.Equal(t, "/suppliers/opportunities/1234/responses/start", attr(form, "action"))

	rec = e.do(t, http.MethodPost, "/suppliers/opportunities/1234/responses/start", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/suppliers/opportunities/1234/responses/9001", rec.Header().Get("Location"))

	rec = e.do(t, http.MethodPost, "/suppliers/opportunities/1234/responses/start", nil)
	assert.Equal(t, "/suppliers/opportunities/1234/responses/9001", rec.Header().Get("Location"))
	assert.Len(t, e.api.responses, 1)

	rec = e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/9001", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/suppliers/opportunities/1234/responses/9001/availability", rec.Header().Get("Location"))
}

func TestStartRedirectsSubmittedResponseToApplication(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "submitted", nil)

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/start", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, responsePath("/application"), rec.Header().Get("Location"))
}

func TestStartOnClosedBriefIsNotFound(t *testing.T) {
	e := newEnv(t)
	e.api.setBrief("status", "closed")

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/start", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSectionRoundTrip(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "draft", nil)

	rec := e.do(t, http.MethodPost, responsePath("/availability"), url.Values{"availability": {"Next Monday"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, responsePath("/dayRate"), rec.Header().Get("Location"))

	require.Len(t, e.api.updates, 1)
	assert.Equal(t, map[string]any{"availability": "Next Monday"}, e.api.updates[0]["briefResponses"])
	assert.Equal(t, []any{"availability"}, e.api.updates[0]["page_questions"])

	rec = e.do(t, http.MethodGet, responsePath("/availability"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Next Monday", attr(byID(t, parse(t, rec), "input-availability"), "value"))
}

func TestSectionValidationReplaysSubmittedValues(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "draft", map[string]any{
		"essentialRequirements": []any{
			map[string]any{"evidence": "stored one"},
			map[string]any{"evidence": "stored two"},
		},
	})
	e.api.updateError = map[string]any{
		"essentialRequirements": []any{
			map[string]any{"field": "evidence", "index": 0, "error": "under_100_words"},
		},
	}
	tooLong := strings.Repeat("word ", 101)

	rec := e.do(t, http.MethodPost, responsePath("/essentialRequirements"), url.Values{
		"evidence-0": {tooLong},
		"evidence-1": {"fresh two"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "100 words or fewer")
	doc := parse(t, rec)
	assert.Equal(t, strings.TrimSpace(tooLong), text(byID(t, doc, "input-evidence-0")))
	assert.Equal(t, "fresh two", text(byID(t, doc, "input-evidence-1")))
}

func TestNiceToHaveSectionSkippedWhenBriefHasNone(t *testing.T) {
	e := newEnv(t)
	e.api.setBrief("niceToHaveRequirements", []any{})
	e.api.addResponse(testResponseID, "draft", nil)

	rec := e.do(t, http.MethodGet, responsePath("/niceToHaveRequirements"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodPost, responsePath("/niceToHaveRequirements"), url.Values{"yesNo-0": {"false"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodPost, responsePath("/essentialRequirements"), url.Values{
		"evidence-0": {"one"},
		"evidence-1": {"two"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, responsePath("/respondToEmailAddress"), rec.Header().Get("Location"))
}

func TestOtherSuppliersResponseIsNotFound(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "draft", map[string]any{"supplierId": 99})

	for _, target := range []string{responsePath(""), responsePath("/availability"), responsePath("/application")} {
		rec := e.do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
	rec := e.do(t, http.MethodPost, responsePath("/availability"), url.Values{"availability": {"Now"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, e.api.updates)
}

func TestEditSubmittedApplicationFlashesUpdate(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "submitted", nil)

	rec := e.do(t, http.MethodPost, responsePath("/dayRate/edit"), url.Values{"dayRate": {"650"}})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, responsePath("/application"), rec.Header().Get("Location"))
	assert.Equal(t, "Your application has been updated.", flashOf(t, rec).Message)
}

func TestEditDraftSectionFlashesUpdate(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "draft", nil)

	rec := e.do(t, http.MethodPost, responsePath("/dayRate/edit"), url.Values{"dayRate": {"650"}})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, responsePath("/application"), rec.Header().Get("Location"))
	assert.Equal(t, "Your application has been updated.", flashOf(t, rec).Message)
	require.Len(t, e.api.updates, 1)
	assert.Equal(t, map[string]any{"dayRate": "650"}, e.api.updates[0]["briefResponses"])
}

func TestIneligibleSupplierIsForbidden(t *testing.T) {
	e := newEnv(t)
	e.api.eligible = false

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/start", nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	reason := byID(t, parse(t, rec), "ineligible-reason")
	assert.Equal(t, "supplier-not-on-"+testFramework, attr(reason, "data-reason"))
}

func TestSubmitClosedBriefShowsAlertWithoutSubmitting(t *testing.T) {
	e := newEnv(t)
	e.api.setBrief("status", "closed")
	e.api.addResponse(testResponseID, "draft", nil)

	rec := e.do(t, http.MethodPost, responsePath("/application"), nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This opportunity has already closed for applications.", text(byID(t, parse(t, rec), "submission-alert")))
	assert.Zero(t, e.api.submits)
}

func TestSubmitWithdrawnBriefIsNotFound(t *testing.T) {
	e := newEnv(t)
	e.api.setBrief("status", "withdrawn")
	e.api.addResponse(testResponseID, "draft", nil)

	rec := e.do(t, http.MethodPost, responsePath("/application"), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, e.api.submits)
}

func TestSubmitLiveBriefRedirectsToResult(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "draft", nil)

	rec := e.do(t, http.MethodPost, responsePath("/application"), nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/suppliers/opportunities/1234/responses/result", rec.Header().Get("Location"))
	assert.Equal(t, "Your application has been submitted.", flashOf(t, rec).Message)
	assert.Equal(t, 1, e.api.submits)

	rec = e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/result", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	methods := text(byID(t, parse(t, rec), "evaluation-methods"))
	assert.Contains(t, methods, "a work history")
	assert.Contains(t, methods, "an interview")
}

func TestSubmitIncompleteApplication(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "draft", nil)
	e.api.submitStatus = http.StatusBadRequest
	e.api.submitError = map[string]any{"essentialRequirements": "answer_required"}

	rec := e.do(t, http.MethodPost, responsePath("/application"), nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You need to complete all the sections before you can submit your application.",
		text(byID(t, parse(t, rec), "submission-alert")))
}

func TestSubmitUpstreamFailureIsUnavailable(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "draft", nil)
	e.api.submitStatus = http.StatusInternalServerError
	e.api.submitError = "database exploded"

	rec := e.do(t, http.MethodPost, responsePath("/application"), nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sorry, we’re experiencing technical difficulties")
	assert.NotContains(t, rec.Body.String(), "database exploded")
}

func TestResultRedirects(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/result", nil)
	assert.Equal(t, "/suppliers/opportunities/1234/responses/start", rec.Header().Get("Location"))

	e.api.addResponse(testResponseID, "draft", nil)
	rec = e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/result", nil)
	assert.Equal(t, responsePath("/application"), rec.Header().Get("Location"))
}

func TestResultForIneligibleSupplierIsForbidden(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "submitted", nil)
	e.api.eligible = false

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/result", nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	reason := byID(t, parse(t, rec), "ineligible-reason")
	assert.Equal(t, "supplier-not-on-"+testFramework, attr(reason, "data-reason"))
}

func TestResultForWithdrawnBrief(t *testing.T) {
	e := newEnv(t)
	e.api.setBrief("status", "withdrawn")
	e.api.addResponse(testResponseID, "submitted", nil)

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/responses/result", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClarificationQuestionTooWordy(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/suppliers/opportunities/1234/ask-a-question", url.Values{
		"clarification-question": {strings.Repeat("why ", 101)},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "100 words or fewer")
	assert.Empty(t, e.notify.recipients())
	assert.Empty(t, e.api.audits)
}

func TestClarificationQuestionSent(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/suppliers/opportunities/1234/ask-a-question", url.Values{
		"clarification-question": {"Is <this> remote?"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your question has been sent.")
	assert.Equal(t, []string{"buyer@example.com", "supplier@example.com"}, e.notify.recipients())
	require.Len(t, e.api.audits, 1)
	assert.Equal(t, "send_clarification_question", e.api.audits[0]["type"])
	assert.Equal(t, "briefs", e.api.audits[0]["objectType"])
}

func TestClarificationNotifyFailureIsUnavailable(t *testing.T) {
	e := newEnv(t)
	e.notify.fail = true

	rec := e.do(t, http.MethodPost, "/suppliers/opportunities/1234/ask-a-question", url.Values{
		"clarification-question": {"Is this remote?"},
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, e.api.audits)
}

func TestClarificationClosedIsNotFound(t *testing.T) {
	e := newEnv(t)
	e.api.setBrief("clarificationQuestionsAreClosed", true)

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/ask-a-question", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuestionAndAnswerSession(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/1234/question-and-answer-session", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	e.api.setBrief("questionAndAnswerSessionDetails", "Call us on Tuesday")
	rec = e.do(t, http.MethodGet, "/suppliers/opportunities/1234/question-and-answer-session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Call us on Tuesday", text(byID(t, parse(t, rec), "session-details")))
}

func TestOpportunitiesDashboard(t *testing.T) {
	e := newEnv(t)
	e.api.addResponse(testResponseID, "draft", nil)

	rec := e.do(t, http.MethodGet, "/suppliers/opportunities/frameworks/"+testFramework, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	drafts := byID(t, parse(t, rec), "drafts")
	assert.Contains(t, text(drafts), "I need a developer")

	rec = e.do(t, http.MethodGet, "/suppliers/opportunities/frameworks/g-cloud-9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
