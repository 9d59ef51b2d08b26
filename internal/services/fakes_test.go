package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/notify"
	"github.com/senyabanana/brief-responses-frontend/internal/repository"
)

type fakeBriefs struct {
	briefs   map[int]*models.Brief
	eligible bool
	err      error
}

func (f *fakeBriefs) GetBrief(_ context.Context, briefID int) (*models.Brief, error) {
	if f.err != nil {
		return nil, f.err
	}
	brief, ok := f.briefs[briefID]
	if !ok {
		return nil, &models.APIError{StatusCode: http.StatusNotFound, Message: "brief not found"}
	}
	return brief, nil
}

func (f *fakeBriefs) IsSupplierEligibleForBrief(context.Context, int, int) (bool, error) {
	return f.eligible, nil
}

type fakeFrameworks struct {
	frameworks map[string]*models.Framework
	interest   map[string]*models.SupplierFramework
}

func (f *fakeFrameworks) GetFramework(_ context.Context, slug string) (*models.Framework, error) {
	framework, ok := f.frameworks[slug]
	if !ok {
		return nil, &models.APIError{StatusCode: http.StatusNotFound, Message: "framework not found"}
	}
	return framework, nil
}

func (f *fakeFrameworks) GetSupplierFramework(_ context.Context, _ int, slug string) (*models.SupplierFramework, error) {
	interest, ok := f.interest[slug]
	if !ok {
		return nil, &models.APIError{StatusCode: http.StatusNotFound, Message: "supplier framework not found"}
	}
	return interest, nil
}

type fakeServices struct {
	byFramework []models.Service
	byLot       []models.Service
	calls       []repository.ServiceFilter
}

func (f *fakeServices) FindServices(_ context.Context, filter repository.ServiceFilter) ([]models.Service, error) {
	f.calls = append(f.calls, filter)
	if filter.Lot != "" {
		return f.byLot, nil
	}
	return f.byFramework, nil
}

func (f *fakeServices) lotLookups() int {
	n := 0
	for _, call := range f.calls {
		if call.Lot != "" {
			n++
		}
	}
	return n
}

type updateCall struct {
	ResponseID    int
	Data          map[string]any
	PageQuestions []string
}

type fakeResponses struct {
	responses map[int]*models.BriefResponse
	found     []models.BriefResponse
	updateErr error
	submitErr error
	submitted *models.BriefResponse

	created   int
	updates   []updateCall
	submits   int
	lastQuery repository.BriefResponseFilter
}

func (f *fakeResponses) CreateBriefResponse(_ context.Context, briefID, supplierID int, data map[string]any, _ string) (*models.BriefResponse, error) {
	f.created++
	return &models.BriefResponse{ID: 9000 + f.created, BriefID: briefID, SupplierID: supplierID, Status: models.DraftResponse, Data: data}, nil
}

func (f *fakeResponses) GetBriefResponse(_ context.Context, responseID int) (*models.BriefResponse, error) {
	response, ok := f.responses[responseID]
	if !ok {
		return nil, &models.APIError{StatusCode: http.StatusNotFound, Message: "brief response not found"}
	}
	return response, nil
}

func (f *fakeResponses) UpdateBriefResponse(_ context.Context, responseID int, data map[string]any, _ string, pageQuestions []string) (*models.BriefResponse, error) {
	f.updates = append(f.updates, updateCall{ResponseID: responseID, Data: data, PageQuestions: pageQuestions})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	response := f.responses[responseID]
	for key, value := range data {
		response.Data[key] = value
	}
	return response, nil
}

func (f *fakeResponses) FindBriefResponses(_ context.Context, filter repository.BriefResponseFilter) ([]models.BriefResponse, error) {
	f.lastQuery = filter
	return f.found, nil
}

func (f *fakeResponses) SubmitBriefResponse(_ context.Context, responseID int, _ string) (*models.BriefResponse, error) {
	f.submits++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.submitted != nil {
		return f.submitted, nil
	}
	response := *f.responses[responseID]
	response.Status = models.SubmittedResponse
	return &response, nil
}

type fakeAudit struct {
	events []models.AuditEvent
}

func (f *fakeAudit) CreateAuditEvent(_ context.Context, event models.AuditEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []notify.Email
	failTo string
}

func (f *fakeNotifier) SendEmail(_ context.Context, email notify.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if email.To == f.failTo {
		return &notify.EmailError{To: email.To, Err: &models.APIError{StatusCode: http.StatusBadRequest, Message: "bad address"}}
	}
	f.sent = append(f.sent, email)
	return nil
}
