package services

import (
	"context"
	"errors"
	"strings"

	"github.com/senyabanana/brief-responses-frontend/internal/content"
	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/repository"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"
)

var (
	// summaryBriefStatuses - статусы брифа, при которых видна страница проверки ответов.
	summaryBriefStatuses = []models.BriefStatus{models.LiveBrief, models.ClosedBrief, models.AwardedBrief, models.CancelledBrief, models.UnsuccessfulBrief}

	// closedBriefStatuses - бриф опубликован, но прием заявок завершен.
	closedBriefStatuses = []models.BriefStatus{models.ClosedBrief, models.AwardedBrief, models.CancelledBrief, models.UnsuccessfulBrief}

	// outcomeBriefStatuses - по брифу уже есть итог.
	outcomeBriefStatuses = []models.BriefStatus{models.AwardedBrief, models.CancelledBrief, models.UnsuccessfulBrief}

	editableResponseStatuses = []models.BriefResponseStatus{models.DraftResponse, models.SubmittedResponse}
)

const defaultEvaluation = "work history"

// ApplicationService показывает ответы поставщика и отправляет заявку.
type ApplicationService struct {
	Briefs      repository.BriefRepository
	Responses   repository.BriefResponseRepository
	Eligibility *EligibilityService
	Content     *content.Registry
}

// NewApplicationService создает новый экземпляр ApplicationService.
func NewApplicationService(briefs repository.BriefRepository, responses repository.BriefResponseRepository, eligibility *EligibilityService, registry *content.Registry) *ApplicationService {
	return &ApplicationService{Briefs: briefs, Responses: responses, Eligibility: eligibility, Content: registry}
}

// SummaryRow - ответ на одну секцию на странице проверки.
type SummaryRow struct {
	Section *content.Section
	Label   string
	Items   []content.SummaryItem
	EditURL string
}

// SummaryGroup - блок страницы проверки ответов.
type SummaryGroup struct {
	Heading string
	Rows    []SummaryRow
}

// ApplicationPage - данные страницы проверки ответов.
type ApplicationPage struct {
	Brief       *models.Brief
	Response    *models.BriefResponse
	Groups      []SummaryGroup
	Legacy      bool
	ShowEdit    bool
	CanSubmit   bool
	ShowOutcome bool
	Alert       string
}

// IsDraft сообщает, что заявка еще не отправлена.
func (p *ApplicationPage) IsDraft() bool {
	return p.Response.Status == models.DraftResponse
}

// Summary собирает страницу проверки ответов.
func (s *ApplicationService) Summary(ctx context.Context, briefID, responseID int, supplier models.Supplier) (*ApplicationPage, error) {
	brief, err := getBrief(ctx, s.Briefs, briefID, summaryBriefStatuses...)
	if err != nil {
		return nil, err
	}
	return s.summaryFor(ctx, brief, responseID, supplier)
}

func (s *ApplicationService) summaryFor(ctx context.Context, brief *models.Brief, responseID int, supplier models.Supplier) (*ApplicationPage, error) {
	response, err := getOwnResponse(ctx, s.Responses, brief.ID, responseID, supplier)
	if err != nil {
		return nil, err
	}
	if err := s.Eligibility.Require(ctx, brief, supplier, ApplyMode); err != nil {
		return nil, err
	}
	manifest, ok := s.Content.Manifest(brief.FrameworkFramework)
	if !ok {
		return nil, models.NotFound()
	}

	legacy := s.Content.IsLegacyResponse(brief.FrameworkSlug, response)
	page := &ApplicationPage{
		Brief:       brief,
		Response:    response,
		Legacy:      legacy,
		ShowEdit:    brief.IsLive() && utils.Contains(editableResponseStatuses, response.Status) && !legacy,
		ShowOutcome: utils.Contains(outcomeBriefStatuses, brief.Status),
	}
	page.CanSubmit = page.IsDraft() && brief.IsLive() && !legacy

	for _, group := range manifest.Resolve(brief).Summary() {
		summary := SummaryGroup{Heading: group.Heading}
		for _, section := range group.Sections {
			answer, _ := response.Answer(section.ID)
			summary.Rows = append(summary.Rows, SummaryRow{
				Section: section,
				Label:   section.LabelFor(brief, legacy),
				Items:   section.Display(answer, brief),
				EditURL: section.ID,
			})
		}
		page.Groups = append(page.Groups, summary)
	}
	return page, nil
}

// SubmitOutcome - результат отправки заявки. Page заполнена, если отправка отклонена.
type SubmitOutcome struct {
	Page *ApplicationPage
}

// Submit отправляет заявку. Для закрытого брифа внешний вызов не выполняется.
func (s *ApplicationService) Submit(ctx context.Context, briefID, responseID int, supplier models.Supplier) (*SubmitOutcome, error) {
	brief, err := getBrief(ctx, s.Briefs, briefID, summaryBriefStatuses...)
	if err != nil {
		return nil, err
	}
	page, err := s.summaryFor(ctx, brief, responseID, supplier)
	if err != nil {
		return nil, err
	}

	if utils.Contains(closedBriefStatuses, brief.Status) {
		page.Alert = i18n.T(i18n.SubmissionClosed)
		return &SubmitOutcome{Page: page}, nil
	}

	submitted, err := s.Responses.SubmitBriefResponse(ctx, responseID, supplier.EmailAddress)
	if err != nil {
		message, err := classifySubmitError(err)
		if err != nil {
			return nil, err
		}
		page.Alert = message
		return &SubmitOutcome{Page: page}, nil
	}
	if submitted.Status != models.SubmittedResponse {
		page.Alert = i18n.T(i18n.SubmissionProblem)
		return &SubmitOutcome{Page: page}, nil
	}
	return &SubmitOutcome{}, nil
}

// classifySubmitError выбирает сообщение для отклоненной отправки или возвращает ошибку сбоя API.
func classifySubmitError(err error) (string, error) {
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		return "", translateAPIError(err, "failed to submit brief response")
	}
	if apiErr.IsServerError() {
		return "", models.Unavailable("failed to submit brief response").Wrap(err)
	}
	if fields, ok := apiErr.Fields(); ok {
		if code, _ := fields["essentialRequirements"].(string); code == "answer_required" {
			return i18n.T(i18n.SubmissionIncomplete), nil
		}
	}
	return i18n.T(i18n.SubmissionProblem), nil
}

// ResultAction - что показать после отправки заявки.
type ResultAction int

const (
	ShowResult             ResultAction = iota // Показать страницу результата
	RedirectToStart                            // Заявки нет
	RedirectToApplication                      // Заявка не отправлена или в старом формате
)

// ResultPage - страница "что дальше" после отправки заявки.
type ResultPage struct {
	Action      ResultAction
	Brief       *models.Brief
	Response    *models.BriefResponse
	Evaluations []string
}

// Result определяет, что показать поставщику после отправки заявки.
func (s *ApplicationService) Result(ctx context.Context, briefID int, supplier models.Supplier) (*ResultPage, error) {
	brief, err := getBrief(ctx, s.Briefs, briefID, models.PublishedBriefStatuses...)
	if err != nil {
		return nil, err
	}
	if err := s.Eligibility.Require(ctx, brief, supplier, ApplyMode); err != nil {
		return nil, err
	}
	responses, err := s.Responses.FindBriefResponses(ctx, repository.BriefResponseFilter{
		BriefID:    brief.ID,
		SupplierID: supplier.SupplierID,
	})
	if err != nil {
		return nil, translateAPIError(err, "failed to find brief responses")
	}

	page := &ResultPage{Brief: brief}
	if len(responses) == 0 {
		page.Action = RedirectToStart
		return page, nil
	}
	page.Response = &responses[0]
	if page.Response.Status == models.DraftResponse || s.Content.IsLegacyResponse(brief.FrameworkSlug, page.Response) {
		page.Action = RedirectToApplication
		return page, nil
	}

	page.Action = ShowResult
	page.Evaluations = EvaluationMethods(brief)
	return page, nil
}

// EvaluationMethods возвращает способы оценки с артиклями; "a work history" всегда первым.
func EvaluationMethods(brief *models.Brief) []string {
	methods := []string{utils.WithArticle(defaultEvaluation)}
	for _, method := range brief.EvaluationType {
		if strings.EqualFold(strings.TrimSpace(method), defaultEvaluation) {
			continue
		}
		methods = append(methods, utils.WithArticle(method))
	}
	return methods
}
