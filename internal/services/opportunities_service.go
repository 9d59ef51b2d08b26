package services

import (
	"context"
	"time"

	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/repository"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"
)

const (
	opportunitiesFamily = "digital-outcomes-and-specialists"
	// draftGracePeriod - сколько показывать черновики по закрытым брифам.
	draftGracePeriod = 14 * 24 * time.Hour
)

var dashboardResponseStatuses = []models.BriefResponseStatus{
	models.DraftResponse,
	models.SubmittedResponse,
	models.PendingAwardedResponse,
	models.AwardedResponse,
}

// OpportunitiesService - список заявок поставщика по фреймворку.
type OpportunitiesService struct {
	Briefs     repository.BriefRepository
	Frameworks repository.FrameworkRepository
	Responses  repository.BriefResponseRepository
	Now        func() time.Time
}

// NewOpportunitiesService создает новый экземпляр OpportunitiesService.
func NewOpportunitiesService(briefs repository.BriefRepository, frameworks repository.FrameworkRepository, responses repository.BriefResponseRepository) *OpportunitiesService {
	return &OpportunitiesService{Briefs: briefs, Frameworks: frameworks, Responses: responses, Now: time.Now}
}

// PublishedBrief возвращает опубликованный бриф для перехода на его публичную страницу.
func (s *OpportunitiesService) PublishedBrief(ctx context.Context, briefID int) (*models.Brief, error) {
	return getBrief(ctx, s.Briefs, briefID, models.PublishedBriefStatuses...)
}

// OpportunitiesDashboard - черновики и отправленные заявки поставщика.
type OpportunitiesDashboard struct {
	Framework *models.Framework
	Drafts    []models.BriefResponse
	Completed []models.BriefResponse
}

// Dashboard собирает заявки поставщика по фреймворку.
func (s *OpportunitiesService) Dashboard(ctx context.Context, frameworkSlug string, supplier models.Supplier) (*OpportunitiesDashboard, error) {
	framework, err := s.Frameworks.GetFramework(ctx, frameworkSlug)
	if err != nil {
		return nil, translateAPIError(err, "failed to get framework")
	}
	if framework.Framework != opportunitiesFamily {
		return nil, models.NotFound()
	}

	interest, err := s.Frameworks.GetSupplierFramework(ctx, supplier.SupplierID, frameworkSlug)
	if err != nil {
		return nil, translateAPIError(err, "failed to get supplier framework")
	}
	if !interest.OnFramework {
		return nil, models.NotFound()
	}

	responses, err := s.Responses.FindBriefResponses(ctx, repository.BriefResponseFilter{
		SupplierID: supplier.SupplierID,
		Framework:  frameworkSlug,
		Statuses:   dashboardResponseStatuses,
	})
	if err != nil {
		return nil, translateAPIError(err, "failed to find brief responses")
	}

	dashboard := &OpportunitiesDashboard{Framework: framework}
	now := s.Now()
	for _, response := range responses {
		if response.Status != models.DraftResponse {
			dashboard.Completed = append(dashboard.Completed, response)
			continue
		}
		if s.draftVisible(response, now) {
			dashboard.Drafts = append(dashboard.Drafts, response)
		}
	}
	return dashboard, nil
}

// draftVisible - черновик виден, пока бриф открыт и еще 14 дней после закрытия.
func (s *OpportunitiesService) draftVisible(response models.BriefResponse, now time.Time) bool {
	if response.Brief == nil {
		return false
	}
	if response.Brief.Status == models.LiveBrief {
		return true
	}
	closedAt, ok := utils.ParseTimestamp(response.Brief.ApplicationsClosedAt)
	if !ok {
		return false
	}
	return now.Sub(closedAt) <= draftGracePeriod
}
