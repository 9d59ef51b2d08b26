package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/senyabanana/brief-responses-frontend/internal/models"
)

// BriefRepository - интерфейс для чтения брифов.
type BriefRepository interface {
	GetBrief(ctx context.Context, briefID int) (*models.Brief, error)
	IsSupplierEligibleForBrief(ctx context.Context, supplierID, briefID int) (bool, error)
}

// FrameworkRepository - интерфейс для чтения фреймворков.
type FrameworkRepository interface {
	GetFramework(ctx context.Context, slug string) (*models.Framework, error)
	GetSupplierFramework(ctx context.Context, supplierID int, slug string) (*models.SupplierFramework, error)
}

// ServiceFilter - параметры поиска услуг поставщика.
type ServiceFilter struct {
	SupplierID int
	Framework  string
	Lot        string
	Status     string
}

// ServiceRepository - интерфейс для поиска услуг поставщика.
type ServiceRepository interface {
	FindServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
}

// AuditRepository - интерфейс для записи событий аудита.
type AuditRepository interface {
	CreateAuditEvent(ctx context.Context, event models.AuditEvent) error
}

// APIBriefRepository - реализация BriefRepository поверх API данных.
type APIBriefRepository struct {
	Client *Client
}

// NewAPIBriefRepository создает новый экземпляр APIBriefRepository.
func NewAPIBriefRepository(client *Client) *APIBriefRepository {
	return &APIBriefRepository{Client: client}
}

// GetBrief получает бриф по ID.
func (r *APIBriefRepository) GetBrief(ctx context.Context, briefID int) (*models.Brief, error) {
	var resp struct {
		Briefs models.Brief `json:"briefs"`
	}
	if err := r.Client.get(ctx, fmt.Sprintf("/briefs/%d", briefID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Briefs, nil
}

// IsSupplierEligibleForBrief проверяет, есть ли у поставщика услуги, подходящие брифу.
func (r *APIBriefRepository) IsSupplierEligibleForBrief(ctx context.Context, supplierID, briefID int) (bool, error) {
	var resp struct {
		Services []models.Service `json:"services"`
	}
	query := url.Values{"supplier_id": {strconv.Itoa(supplierID)}}
	if err := r.Client.get(ctx, fmt.Sprintf("/briefs/%d/services", briefID), query, &resp); err != nil {
		return false, err
	}
	return len(resp.Services) > 0, nil
}

// APIFrameworkRepository - реализация FrameworkRepository поверх API данных.
type APIFrameworkRepository struct {
	Client *Client
}

// NewAPIFrameworkRepository создает новый экземпляр APIFrameworkRepository.
func NewAPIFrameworkRepository(client *Client) *APIFrameworkRepository {
	return &APIFrameworkRepository{Client: client}
}

// GetFramework получает фреймворк по slug.
func (r *APIFrameworkRepository) GetFramework(ctx context.Context, slug string) (*models.Framework, error) {
	var resp struct {
		Frameworks models.Framework `json:"frameworks"`
	}
	if err := r.Client.get(ctx, "/frameworks/"+url.PathEscape(slug), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Frameworks, nil
}

// GetSupplierFramework получает участие поставщика во фреймворке.
func (r *APIFrameworkRepository) GetSupplierFramework(ctx context.Context, supplierID int, slug string) (*models.SupplierFramework, error) {
	var resp struct {
		FrameworkInterest models.SupplierFramework `json:"frameworkInterest"`
	}
	path := fmt.Sprintf("/suppliers/%d/frameworks/%s", supplierID, url.PathEscape(slug))
	if err := r.Client.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.FrameworkInterest, nil
}

// APIServiceRepository - реализация ServiceRepository поверх API данных.
type APIServiceRepository struct {
	Client *Client
}

// NewAPIServiceRepository создает новый экземпляр APIServiceRepository.
func NewAPIServiceRepository(client *Client) *APIServiceRepository {
	return &APIServiceRepository{Client: client}
}

// FindServices ищет услуги поставщика по фреймворку, лоту и статусу.
func (r *APIServiceRepository) FindServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	query := url.Values{"supplier_id": {strconv.Itoa(filter.SupplierID)}}
	if filter.Framework != "" {
		query.Set("framework", filter.Framework)
	}
	if filter.Lot != "" {
		query.Set("lot", filter.Lot)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var resp struct {
		Services []models.Service `json:"services"`
	}
	if err := r.Client.get(ctx, "/services", query, &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}

// APIAuditRepository - реализация AuditRepository поверх API данных.
type APIAuditRepository struct {
	Client *Client
}

// NewAPIAuditRepository создает новый экземпляр APIAuditRepository.
func NewAPIAuditRepository(client *Client) *APIAuditRepository {
	return &APIAuditRepository{Client: client}
}

// CreateAuditEvent записывает событие аудита.
func (r *APIAuditRepository) CreateAuditEvent(ctx context.Context, event models.AuditEvent) error {
	body := map[string]any{"auditEvents": event}
	return r.Client.post(ctx, "/audit-events", body, nil)
}

func joinStatuses[T ~string](statuses []T) string {
	parts := make([]string, len(statuses))
	for i, status := range statuses {
		parts[i] = string(status)
	}
	return strings.Join(parts, ",")
}
