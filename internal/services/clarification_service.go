package services

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/notify"
	"github.com/senyabanana/brief-responses-frontend/internal/repository"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"
)

const (
	// MaxQuestionLength - предел длины вопроса в символах.
	MaxQuestionLength = 5100
	// MaxQuestionWords - предел длины вопроса в словах.
	MaxQuestionWords = 100

	clarificationAuditType = "send_clarification_question"
	briefsObjectType       = "briefs"
)

// ClarificationTemplates - шаблоны писем с вопросом покупателю.
type ClarificationTemplates struct {
	Question     string
	Confirmation string
}

// ClarificationService принимает вопросы поставщиков по брифу.
type ClarificationService struct {
	Briefs      repository.BriefRepository
	Audit       repository.AuditRepository
	Notifier    notify.Notifier
	Eligibility *EligibilityService
	Templates   ClarificationTemplates
	BaseURL     string
}

// NewClarificationService создает новый экземпляр ClarificationService.
func NewClarificationService(
	briefs repository.BriefRepository,
	audit repository.AuditRepository,
	notifier notify.Notifier,
	eligibility *EligibilityService,
	templates ClarificationTemplates,
	baseURL string,
) *ClarificationService {
	return &ClarificationService{
		Briefs:      briefs,
		Audit:       audit,
		Notifier:    notifier,
		Eligibility: eligibility,
		Templates:   templates,
		BaseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// QuestionForm проверяет, что поставщик может задать вопрос по брифу.
func (s *ClarificationService) QuestionForm(ctx context.Context, briefID int, supplier models.Supplier) (*models.Brief, error) {
	brief, err := getBrief(ctx, s.Briefs, briefID, models.LiveBrief)
	if err != nil {
		return nil, err
	}
	if brief.ClarificationQuestionsAreClosed {
		return nil, models.NotFound()
	}
	if err := s.Eligibility.Require(ctx, brief, supplier, ClarificationMode); err != nil {
		return nil, err
	}
	return brief, nil
}

// QuestionAndAnswerSession возвращает бриф для страницы сессии вопросов и ответов.
func (s *ClarificationService) QuestionAndAnswerSession(ctx context.Context, briefID int, supplier models.Supplier) (*models.Brief, error) {
	brief, err := s.QuestionForm(ctx, briefID, supplier)
	if err != nil {
		return nil, err
	}
	if brief.QuestionAndAnswerSessionDetails == "" {
		return nil, models.NotFound()
	}
	return brief, nil
}

// AskOutcome - результат отправки вопроса.
type AskOutcome struct {
	Brief    *models.Brief
	Question string
	// Error - текст ошибки проверки вопроса; письма в этом случае не отправляются.
	Error string
	Sent  bool
}

// ValidateQuestion проверяет вопрос и возвращает текст ошибки.
func ValidateQuestion(question string) string {
	switch {
	case question == "":
		return i18n.T(i18n.ClarificationRequired)
	case utf8.RuneCountInString(question) > MaxQuestionLength:
		return i18n.T(i18n.ClarificationTooLong, MaxQuestionLength)
	case utils.WordCount(question) > MaxQuestionWords:
		return i18n.T(i18n.ClarificationTooWordy)
	}
	return ""
}

// AskQuestion отправляет вопрос покупателю, записывает аудит и подтверждение поставщику.
func (s *ClarificationService) AskQuestion(ctx context.Context, briefID int, supplier models.Supplier, question string) (*AskOutcome, error) {
	brief, err := s.QuestionForm(ctx, briefID, supplier)
	if err != nil {
		return nil, err
	}

	question = strings.TrimSpace(question)
	outcome := &AskOutcome{Brief: brief, Question: question}
	if outcome.Error = ValidateQuestion(question); outcome.Error != "" {
		return outcome, nil
	}

	briefID = brief.ID
	escaped := html.EscapeString(question)
	questionsURL := fmt.Sprintf("%s/buyers/frameworks/%s/requirements/%s/%d/supplier-questions", s.BaseURL, brief.FrameworkSlug, brief.LotSlug, briefID)

	for _, buyer := range brief.ActiveUserEmails() {
		err := s.Notifier.SendEmail(ctx, notify.Email{
			To:         buyer,
			TemplateID: s.Templates.Question,
			Personalisation: map[string]string{
				"brief_title":     brief.Title,
				"brief_name":      brief.Title,
				"message":         escaped,
				"publish_by_date": utils.DateFormat(brief.ClarificationQuestionsPublishedBy),
				"questions_url":   questionsURL,
			},
			Reference: notify.Reference("clarification-question", buyer, strconv.Itoa(briefID), question),
		})
		if err != nil {
			return nil, models.Unavailable("failed to send clarification question email").Wrap(err)
		}
	}

	err = s.Audit.CreateAuditEvent(ctx, models.AuditEvent{
		Type:       clarificationAuditType,
		User:       supplier.EmailAddress,
		ObjectType: briefsObjectType,
		ObjectID:   briefID,
		Data: map[string]any{
			"briefId":    briefID,
			"question":   question,
			"supplierId": supplier.SupplierID,
		},
	})
	if err != nil {
		return nil, translateAPIError(err, "failed to record clarification question")
	}

	err = s.Notifier.SendEmail(ctx, notify.Email{
		To:         supplier.EmailAddress,
		TemplateID: s.Templates.Confirmation,
		Personalisation: map[string]string{
			"brief_name": brief.Title,
			"message":    escaped,
			"brief_url":  fmt.Sprintf("%s/%s/opportunities/%d", s.BaseURL, brief.FrameworkFramework, briefID),
		},
		Reference: notify.Reference("clarification-question-confirmation", supplier.EmailAddress, strconv.Itoa(briefID), question),
	})
	if err != nil {
		return nil, models.Unavailable("failed to send clarification question confirmation").Wrap(err)
	}

	outcome.Sent = true
	return outcome, nil
}
