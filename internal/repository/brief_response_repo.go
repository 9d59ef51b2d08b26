package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/senyabanana/brief-responses-frontend/internal/models"
)

// BriefResponseFilter - параметры поиска заявок.
type BriefResponseFilter struct {
	BriefID    int
	SupplierID int
	Framework  string
	Statuses   []models.BriefResponseStatus
}

// BriefResponseRepository - интерфейс для работы с заявками поставщиков.
type BriefResponseRepository interface {
	CreateBriefResponse(ctx context.Context, briefID, supplierID int, data map[string]any, updatedBy string) (*models.BriefResponse, error)
	GetBriefResponse(ctx context.Context, responseID int) (*models.BriefResponse, error)
	UpdateBriefResponse(ctx context.Context, responseID int, data map[string]any, updatedBy string, pageQuestions []string) (*models.BriefResponse, error)
	FindBriefResponses(ctx context.Context, filter BriefResponseFilter) ([]models.BriefResponse, error)
	SubmitBriefResponse(ctx context.Context, responseID int, updatedBy string) (*models.BriefResponse, error)
}

// APIBriefResponseRepository - реализация BriefResponseRepository поверх API данных.
type APIBriefResponseRepository struct {
	Client *Client
}

// NewAPIBriefResponseRepository создает новый экземпляр APIBriefResponseRepository.
func NewAPIBriefResponseRepository(client *Client) *APIBriefResponseRepository {
	return &APIBriefResponseRepository{Client: client}
}

type briefResponseEnvelope struct {
	BriefResponses models.BriefResponse `json:"briefResponses"`
}

// CreateBriefResponse создает новую заявку.
func (r *APIBriefResponseRepository) CreateBriefResponse(ctx context.Context, briefID, supplierID int, data map[string]any, updatedBy string) (*models.BriefResponse, error) {
	payload := map[string]any{}
	for key, value := range data {
		payload[key] = value
	}
	payload["briefId"] = briefID
	payload["supplierId"] = supplierID

	body := map[string]any{"briefResponses": payload, "updated_by": updatedBy}
	var resp briefResponseEnvelope
	if err := r.Client.post(ctx, "/brief-responses", body, &resp); err != nil {
		return nil, err
	}
	return &resp.BriefResponses, nil
}

// GetBriefResponse получает заявку по ID.
func (r *APIBriefResponseRepository) GetBriefResponse(ctx context.Context, responseID int) (*models.BriefResponse, error) {
	var resp briefResponseEnvelope
	if err := r.Client.get(ctx, fmt.Sprintf("/brief-responses/%d", responseID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.BriefResponses, nil
}

// UpdateBriefResponse сохраняет ответы одной страницы мастера.
func (r *APIBriefResponseRepository) UpdateBriefResponse(ctx context.Context, responseID int, data map[string]any, updatedBy string, pageQuestions []string) (*models.BriefResponse, error) {
	body := map[string]any{
		"briefResponses": data,
		"updated_by":     updatedBy,
		"page_questions": pageQuestions,
	}
	var resp briefResponseEnvelope
	if err := r.Client.post(ctx, fmt.Sprintf("/brief-responses/%d", responseID), body, &resp); err != nil {
		return nil, err
	}
	return &resp.BriefResponses, nil
}

// FindBriefResponses ищет заявки по брифу, поставщику, фреймворку и статусам.
func (r *APIBriefResponseRepository) FindBriefResponses(ctx context.Context, filter BriefResponseFilter) ([]models.BriefResponse, error) {
	query := url.Values{}
	if filter.BriefID != 0 {
		query.Set("brief_id", strconv.Itoa(filter.BriefID))
	}
	if filter.SupplierID != 0 {
		query.Set("supplier_id", strconv.Itoa(filter.SupplierID))
	}
	if filter.Framework != "" {
		query.Set("framework", filter.Framework)
	}
	if len(filter.Statuses) > 0 {
		query.Set("status", joinStatuses(filter.Statuses))
	}

	var resp struct {
		BriefResponses []models.BriefResponse `json:"briefResponses"`
	}
	if err := r.Client.get(ctx, "/brief-responses", query, &resp); err != nil {
		return nil, err
	}
	return resp.BriefResponses, nil
}

// SubmitBriefResponse отправляет заявку.
func (r *APIBriefResponseRepository) SubmitBriefResponse(ctx context.Context, responseID int, updatedBy string) (*models.BriefResponse, error) {
	body := map[string]any{"updated_by": updatedBy}
	var resp briefResponseEnvelope
	if err := r.Client.post(ctx, fmt.Sprintf("/brief-responses/%d/submit", responseID), body, &resp); err != nil {
		return nil, err
	}
	return &resp.BriefResponses, nil
}
