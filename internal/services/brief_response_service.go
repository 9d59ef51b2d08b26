package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/senyabanana/brief-responses-frontend/internal/content"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/repository"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"
)

var (
	openResponseStatuses    = []models.BriefResponseStatus{models.DraftResponse, models.SubmittedResponse}
	wizardFrameworkStatuses = []models.FrameworkStatus{models.LiveFramework, models.ExpiredFramework}
)

// BriefResponseService ведет поставщика по страницам заявки.
type BriefResponseService struct {
	Briefs      repository.BriefRepository
	Frameworks  repository.FrameworkRepository
	Services    repository.ServiceRepository
	Responses   repository.BriefResponseRepository
	Eligibility *EligibilityService
	Content     *content.Registry
}

// NewBriefResponseService создает новый экземпляр BriefResponseService.
func NewBriefResponseService(
	briefs repository.BriefRepository,
	frameworks repository.FrameworkRepository,
	services repository.ServiceRepository,
	responses repository.BriefResponseRepository,
	eligibility *EligibilityService,
	registry *content.Registry,
) *BriefResponseService {
	return &BriefResponseService{
		Briefs:      briefs,
		Frameworks:  frameworks,
		Services:    services,
		Responses:   responses,
		Eligibility: eligibility,
		Content:     registry,
	}
}

// getBrief получает бриф и проверяет, что его статус допустим.
func getBrief(ctx context.Context, briefs repository.BriefRepository, briefID int, allowed ...models.BriefStatus) (*models.Brief, error) {
	brief, err := briefs.GetBrief(ctx, briefID)
	if err != nil {
		return nil, translateAPIError(err, "failed to get brief")
	}
	if len(allowed) > 0 && !utils.Contains(allowed, brief.Status) {
		return nil, models.NotFound()
	}
	return brief, nil
}

// getOwnResponse получает заявку и проверяет, что она принадлежит брифу и поставщику.
func getOwnResponse(ctx context.Context, responses repository.BriefResponseRepository, briefID, responseID int, supplier models.Supplier) (*models.BriefResponse, error) {
	response, err := responses.GetBriefResponse(ctx, responseID)
	if err != nil {
		return nil, translateAPIError(err, "failed to get brief response")
	}
	if !response.BelongsTo(briefID, supplier.SupplierID) {
		return nil, models.NotFound()
	}
	return response, nil
}

// StartState - состояние страницы начала заявки.
type StartState struct {
	Brief     *models.Brief
	Draft     *models.BriefResponse
	Submitted *models.BriefResponse
}

// Start проверяет бриф и право поставщика и находит его существующую заявку.
func (s *BriefResponseService) Start(ctx context.Context, briefID int, supplier models.Supplier) (*StartState, error) {
	brief, err := getBrief(ctx, s.Briefs, briefID, models.LiveBrief)
	if err != nil {
		return nil, err
	}
	if err := s.Eligibility.Require(ctx, brief, supplier, ApplyMode); err != nil {
		return nil, err
	}

	existing, err := s.Responses.FindBriefResponses(ctx, repository.BriefResponseFilter{
		BriefID:    brief.ID,
		SupplierID: supplier.SupplierID,
		Statuses:   openResponseStatuses,
	})
	if err != nil {
		return nil, translateAPIError(err, "failed to find brief responses")
	}

	state := &StartState{Brief: brief}
	for i := range existing {
		response := &existing[i]
		switch response.Status {
		case models.SubmittedResponse:
			if state.Submitted == nil {
				state.Submitted = response
			}
		case models.DraftResponse:
			if state.Draft == nil {
				state.Draft = response
			}
		}
	}
	return state, nil
}

// StartResponse возвращает существующую заявку поставщика или создает пустую.
func (s *BriefResponseService) StartResponse(ctx context.Context, briefID int, supplier models.Supplier) (*StartState, error) {
	state, err := s.Start(ctx, briefID, supplier)
	if err != nil {
		return nil, err
	}
	if state.Submitted != nil || state.Draft != nil {
		return state, nil
	}

	created, err := s.Responses.CreateBriefResponse(ctx, briefID, supplier.SupplierID, map[string]any{}, supplier.EmailAddress)
	if err != nil {
		return nil, translateAPIError(err, "failed to create brief response")
	}
	state.Draft = created
	return state, nil
}

// wizardContext - все, что нужно странице мастера, получено один раз за запрос.
type wizardContext struct {
	brief    *models.Brief
	response *models.BriefResponse
	flow     content.Flow
}

func (s *BriefResponseService) loadWizard(ctx context.Context, briefID, responseID int, supplier models.Supplier) (*wizardContext, error) {
	brief, err := getBrief(ctx, s.Briefs, briefID, models.LiveBrief)
	if err != nil {
		return nil, err
	}
	response, err := getOwnResponse(ctx, s.Responses, briefID, responseID, supplier)
	if err != nil {
		return nil, err
	}
	if err := s.Eligibility.Require(ctx, brief, supplier, ApplyMode); err != nil {
		return nil, err
	}

	framework, err := s.Frameworks.GetFramework(ctx, brief.FrameworkSlug)
	if err != nil {
		return nil, translateAPIError(err, "failed to get framework")
	}
	if !utils.Contains(wizardFrameworkStatuses, framework.Status) {
		return nil, models.NotFound()
	}

	manifest, ok := s.Content.Manifest(brief.FrameworkFramework)
	if !ok {
		return nil, models.NotFound()
	}
	return &wizardContext{brief: brief, response: response, flow: manifest.Resolve(brief)}, nil
}

// FirstIncomplete возвращает первую неотвеченную секцию; пустая строка означает,
// что ответы даны на все секции.
func (s *BriefResponseService) FirstIncomplete(ctx context.Context, briefID, responseID int, supplier models.Supplier) (string, error) {
	wc, err := s.loadWizard(ctx, briefID, responseID, supplier)
	if err != nil {
		return "", err
	}
	section, ok := wc.flow.FirstIncomplete(wc.response.Data)
	if !ok {
		return "", nil
	}
	return section.ID, nil
}

// SectionPage - данные страницы одной секции мастера.
type SectionPage struct {
	Brief      *models.Brief
	Response   *models.BriefResponse
	Section    *content.Section
	Values     map[string]string
	Errors     models.ValidationErrors
	PreviousID string
	IsLast     bool
	MaxDayRate string
	EditFlow   bool
}

func (s *BriefResponseService) sectionFor(wc *wizardContext, sectionID string) (*content.Section, error) {
	section, ok := wc.flow.Section(sectionID)
	if !ok || !section.Editable() || section.Empty(wc.brief) {
		return nil, models.NotFound()
	}
	return section, nil
}

func (s *BriefResponseService) newPage(ctx context.Context, wc *wizardContext, section *content.Section, supplier models.Supplier, editFlow bool) (*SectionPage, error) {
	page := &SectionPage{
		Brief:    wc.brief,
		Response: wc.response,
		Section:  section,
		EditFlow: editFlow,
	}
	if previous, ok := wc.flow.Previous(section.ID); ok {
		page.PreviousID = previous.ID
	}
	if _, ok := wc.flow.Next(section.ID); !ok {
		page.IsLast = true
	}

	if section.RolePriceHint && wc.brief.SpecialistRole != "" {
		services, err := s.Services.FindServices(ctx, repository.ServiceFilter{
			SupplierID: supplier.SupplierID,
			Framework:  wc.brief.FrameworkSlug,
			Lot:        wc.brief.LotSlug,
			Status:     publishedServiceStatus,
		})
		if err != nil {
			return nil, translateAPIError(err, "failed to find services")
		}
		for _, service := range services {
			if rate := service.RolePriceMax(wc.brief.SpecialistRole); rate != "" {
				page.MaxDayRate = rate
				break
			}
		}
	}
	return page, nil
}

// LoadSection готовит секцию к показу с сохраненными ответами.
func (s *BriefResponseService) LoadSection(ctx context.Context, briefID, responseID int, sectionID string, supplier models.Supplier, editFlow bool) (*SectionPage, error) {
	wc, err := s.loadWizard(ctx, briefID, responseID, supplier)
	if err != nil {
		return nil, err
	}
	section, err := s.sectionFor(wc, sectionID)
	if err != nil {
		return nil, err
	}
	page, err := s.newPage(ctx, wc, section, supplier, editFlow)
	if err != nil {
		return nil, err
	}
	answer, _ := wc.response.Answer(section.ID)
	page.Values = section.FormValues(answer, wc.brief)
	return page, nil
}

// SaveOutcome - результат сохранения секции.
type SaveOutcome struct {
	// Page заполнена, если ответ не прошел проверку.
	Page *SectionPage
	// NextSection пуста, если дальше страница проверки ответов.
	NextSection string
	// Updated - ответ сохранен из режима правки.
	Updated bool
}

// SaveSection разбирает форму секции, сохраняет ответ и выбирает следующую страницу.
func (s *BriefResponseService) SaveSection(ctx context.Context, briefID, responseID int, sectionID string, supplier models.Supplier, form url.Values, editFlow bool) (*SaveOutcome, error) {
	wc, err := s.loadWizard(ctx, briefID, responseID, supplier)
	if err != nil {
		return nil, err
	}
	section, err := s.sectionFor(wc, sectionID)
	if err != nil {
		return nil, err
	}

	value, fieldErrors := section.Decode(form, wc.brief)
	if len(fieldErrors) == 0 {
		_, err = s.Responses.UpdateBriefResponse(ctx, wc.response.ID, map[string]any{section.ID: value}, supplier.EmailAddress, []string{section.ID})
		fieldErrors, err = validationErrorsFrom(err, section.ID)
		if err != nil {
			return nil, err
		}
	}

	if len(fieldErrors) > 0 {
		page, err := s.newPage(ctx, wc, section, supplier, editFlow)
		if err != nil {
			return nil, err
		}
		page.Values = submittedValues(form)
		page.Errors = fieldErrors
		return &SaveOutcome{Page: page}, nil
	}

	if editFlow {
		return &SaveOutcome{Updated: true}, nil
	}
	if next, ok := wc.flow.Next(section.ID); ok {
		return &SaveOutcome{NextSection: next.ID}, nil
	}
	return &SaveOutcome{}, nil
}

// validationErrorsFrom отделяет ошибки валидации API от прочих сбоев.
func validationErrorsFrom(err error, questionID string) (models.ValidationErrors, error) {
	if err == nil {
		return nil, nil
	}
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		return nil, translateAPIError(err, "failed to update brief response")
	}
	if fields, ok := apiErr.Fields(); ok {
		return models.ParseValidationErrors(fields), nil
	}
	code, _ := apiErr.Message.(string)
	return models.ValidationErrors{{Question: questionID, Index: -1, Code: code}}, nil
}

// submittedValues повторяет отправленные значения без изменений.
func submittedValues(form url.Values) map[string]string {
	values := make(map[string]string, len(form))
	for key := range form {
		values[key] = form.Get(key)
	}
	return values
}
