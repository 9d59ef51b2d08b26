// Package i18n хранит пользовательские тексты фронтенда и форматирует их для en-GB.
package i18n

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale - язык интерфейса.
var Locale = language.BritishEnglish

const (
	FlashApplicationSubmitted = "flash.application_submitted"
	FlashApplicationUpdated   = "flash.application_updated"
	FlashQuestionSent         = "flash.question_sent"
	FlashSessionExpired       = "flash.session_expired"
	FlashSupplierLogin        = "flash.supplier_login_required"

	SubmissionIncomplete = "submission.incomplete"
	SubmissionProblem    = "submission.problem"
	SubmissionClosed     = "submission.closed"

	ErrorBadRequestTitle  = "error.bad_request.title"
	ErrorBadRequestBody   = "error.bad_request.body"
	ErrorNotFoundTitle    = "error.not_found.title"
	ErrorNotFoundBody     = "error.not_found.body"
	ErrorTechnicalTitle   = "error.technical.title"
	ErrorTechnicalBody    = "error.technical.body"
	ErrorSummaryTitle     = "error.summary.title"
	ErrorInlinePrefix     = "error.inline.prefix"
	ValidationDefault     = "validation.default"
	ValidationRequired    = "validation.answer_required"
	ValidationIndexMissed = "validation.index_missing"

	ClarificationRequired = "clarification.required"
	ClarificationTooLong  = "clarification.too_long"
	ClarificationTooWordy = "clarification.too_many_words"

	EligibilityApplyAction         = "eligibility.action.apply"
	EligibilityClarificationAction = "eligibility.action.clarification"
	EligibilityHeading             = "eligibility.heading"
	EligibilityNotOnFramework      = "eligibility.supplier_not_on_framework"
	EligibilityNotOnLot            = "eligibility.supplier_not_on_lot"
	EligibilityNotOnRole           = "eligibility.supplier_not_on_role"

	CheckAnswersDraftHeading     = "application.heading.draft"
	CheckAnswersSubmittedHeading = "application.heading.submitted"
	CheckAnswersDraftCrumb       = "application.breadcrumb.draft"
	CheckAnswersSubmittedCrumb   = "application.breadcrumb.submitted"
	CheckAnswersUpdateUntil      = "application.update_until"
	DayRateAmount                = "application.day_rate"

	UIServiceName         = "ui.service_name"
	UIOpportunities       = "ui.breadcrumb.opportunities"
	UIYourAccount         = "ui.breadcrumb.account"
	UIYes                 = "ui.yes"
	UINo                  = "ui.no"
	UISaveAndContinue     = "ui.save_and_continue"
	UISaveAndReturn       = "ui.save_and_return"
	UIBackToPrevious      = "ui.back_to_previous"
	UIBackToApplication   = "ui.back_to_application"
	UIEdit                = "ui.edit"
	UIMaxDayRate          = "ui.max_day_rate"
	UIStartHeading        = "ui.start.heading"
	UIStartIntro          = "ui.start.intro"
	UIStartBody           = "ui.start.body"
	UIStartApplication    = "ui.start.button"
	UISubmitApplication   = "ui.application.submit"
	UIViewOpportunity     = "ui.application.view_opportunity"
	UIOutcomePublished    = "ui.application.outcome"
	UIResultHeading       = "ui.result.heading"
	UIWhatHappensNext     = "ui.result.next"
	UIResultClosing       = "ui.result.closing"
	UIShortlist           = "ui.result.shortlist"
	UIShortlistBody       = "ui.result.shortlist_body"
	UIQuestionHeading     = "ui.question.heading"
	UIQuestionLabel       = "ui.question.label"
	UIQuestionHint        = "ui.question.hint"
	UIQuestionSubmit      = "ui.question.submit"
	UIQASessionHeading    = "ui.qa_session.heading"
	UIDashboardHeading    = "ui.dashboard.heading"
	UIDashboardDrafts     = "ui.dashboard.drafts"
	UIDashboardCompleted  = "ui.dashboard.completed"
	UIDashboardNoDrafts   = "ui.dashboard.no_drafts"
	UIDashboardNoComplete = "ui.dashboard.no_completed"
	UIDashboardClosing    = "ui.dashboard.closing"
)

var en = map[string]string{
	FlashApplicationSubmitted: "Your application has been submitted.",
	FlashApplicationUpdated:   "Your application has been updated.",
	FlashQuestionSent:         "Your question has been sent. The buyer will post your question and their answer on the ‘%s’ page.",
	FlashSessionExpired:       "Your session has expired. Please log in again.",
	FlashSupplierLogin:        "You must log in with a supplier account to see this page",

	SubmissionIncomplete: "You need to complete all the sections before you can submit your application.",
	SubmissionProblem:    "There was a problem submitting your application.",
	SubmissionClosed:     "This opportunity has already closed for applications.",

	ErrorBadRequestTitle:  "Sorry, there was a problem with your request",
	ErrorBadRequestBody:   "Please do not attempt the same request again.",
	ErrorNotFoundTitle:    "Page not found",
	ErrorNotFoundBody:     "Check you’ve entered the correct web address or start again on the Digital Marketplace homepage.",
	ErrorTechnicalTitle:   "Sorry, we’re experiencing technical difficulties",
	ErrorTechnicalBody:    "Try again later.",
	ErrorSummaryTitle:     "There is a problem",
	ErrorInlinePrefix:     "Error:",
	ValidationDefault:     "There was a problem with your answer to this question",
	ValidationRequired:    "You need to answer this question.",
	ValidationIndexMissed: "You need to answer this question.",

	ClarificationRequired: "Enter your question",
	ClarificationTooLong:  "Question must be %d characters or fewer",
	ClarificationTooWordy: "Question must be 100 words or fewer",

	EligibilityApplyAction:         "apply for this opportunity",
	EligibilityClarificationAction: "ask a question about this opportunity",
	EligibilityHeading:             "You can’t %s",
	EligibilityNotOnFramework:      "You can’t %s because you’re not a %s supplier.",
	EligibilityNotOnLot:            "You can’t %s because you didn’t say you could provide services in this category when you applied to the %s framework.",
	EligibilityNotOnRole:           "You can’t %s because you didn’t say you could provide this specialist role when you applied to the %s framework.",

	CheckAnswersDraftHeading:     "Check and submit your answers",
	CheckAnswersSubmittedHeading: "Your application for ‘%s’",
	CheckAnswersDraftCrumb:       "Check your answers",
	CheckAnswersSubmittedCrumb:   "Your application",
	CheckAnswersUpdateUntil:      "Once you submit you can update your application until %s.",
	DayRateAmount:                "£%d",

	UIServiceName:         "Digital Marketplace",
	UIOpportunities:       "Supplier opportunities",
	UIYourAccount:         "Your account",
	UIYes:                 "Yes",
	UINo:                  "No",
	UISaveAndContinue:     "Save and continue",
	UISaveAndReturn:       "Save and return to check your answers",
	UIBackToPrevious:      "Back to previous page",
	UIBackToApplication:   "Back to check your answers",
	UIEdit:                "Edit",
	UIMaxDayRate:          "The maximum day rate you gave when you applied to the framework was %s.",
	UIStartHeading:        "Apply for ‘%s’",
	UIStartIntro:          "Before you start",
	UIStartBody:           "You’ll need to give evidence of the skills and experience the buyer asked for. You can save your answers and come back later.",
	UIStartApplication:    "Start application",
	UISubmitApplication:   "Submit application",
	UIViewOpportunity:     "View the opportunity",
	UIOutcomePublished:    "The buyer has published the outcome of this opportunity.",
	UIResultHeading:       "Your application for ‘%s’ has been submitted",
	UIWhatHappensNext:     "What happens next",
	UIResultClosing:       "The buyer will start shortlisting after the opportunity closes on %s.",
	UIShortlist:           "Shortlist",
	UIShortlistBody:       "If you’re shortlisted, the buyer will evaluate you using:",
	UIQuestionHeading:     "Ask a question about ‘%s’",
	UIQuestionLabel:       "Your question",
	UIQuestionHint:        "Your question will be published with the buyer’s answer by %s. Don’t include your company name.",
	UIQuestionSubmit:      "Ask question",
	UIQASessionHeading:    "Question and answer session",
	UIDashboardHeading:    "Your %s opportunities",
	UIDashboardDrafts:     "Applications you’ve started",
	UIDashboardCompleted:  "Applications you’ve submitted",
	UIDashboardNoDrafts:   "You haven’t started any applications.",
	UIDashboardNoComplete: "You haven’t submitted any applications.",
	UIDashboardClosing:    "Closing date: %s",
}

func init() {
	for key, text := range en {
		if err := message.SetString(Locale, key, text); err != nil {
			panic(err)
		}
	}
}

// Printer возвращает принтер для языка интерфейса.
func Printer() *message.Printer {
	return message.NewPrinter(Locale)
}

// T форматирует текст по ключу каталога.
func T(key string, args ...any) string {
	return Printer().Sprintf(key, args...)
}

// Money форматирует дневную ставку в фунтах с разделителями разрядов.
func Money(amount string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(amount), "£")
	if trimmed == "" {
		return ""
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return "£" + trimmed
	}
	return T(DayRateAmount, n)
}
