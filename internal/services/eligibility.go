package services

import (
	"context"

	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/repository"
)

type (
	EligibilityReason string // Причина, по которой поставщик не может откликнуться
	EligibilityMode   string // Для какого действия проверяется право
)

const (
	NotOnFramework EligibilityReason = "supplier-not-on-framework" // Нет услуг во фреймворке
	NotOnLot       EligibilityReason = "supplier-not-on-lot"       // Нет услуг в лоте брифа
	NotOnRole      EligibilityReason = "supplier-not-on-role"      // Нет нужной роли специалиста

	ApplyMode         EligibilityMode = "apply"         // Подача заявки
	ClarificationMode EligibilityMode = "clarification" // Вопрос покупателю
)

const publishedServiceStatus = "published"

// EligibilitySnapshot - заранее полученные факты об услугах поставщика.
type EligibilitySnapshot struct {
	HasRoleServices      bool
	HasFrameworkServices bool
	HasLotServices       bool
}

// DetermineEligibility определяет причину отказа в порядке: фреймворк, лот, роль.
func DetermineEligibility(snapshot EligibilitySnapshot) (EligibilityReason, bool) {
	switch {
	case snapshot.HasRoleServices:
		return "", true
	case !snapshot.HasFrameworkServices:
		return NotOnFramework, false
	case !snapshot.HasLotServices:
		return NotOnLot, false
	default:
		return NotOnRole, false
	}
}

// EligibilityVerdict - результат проверки с данными для страницы отказа.
type EligibilityVerdict struct {
	Eligible       bool
	Reason         EligibilityReason
	DataReasonSlug string
	FrameworkName  string
	FrameworkSlug  string
	LotSlug        string
	Mode           EligibilityMode
}

// EligibilityService собирает снимок услуг поставщика и выносит вердикт.
type EligibilityService struct {
	Briefs   repository.BriefRepository
	Services repository.ServiceRepository
}

// NewEligibilityService создает новый экземпляр EligibilityService.
func NewEligibilityService(briefs repository.BriefRepository, services repository.ServiceRepository) *EligibilityService {
	return &EligibilityService{Briefs: briefs, Services: services}
}

// Check проверяет право поставщика на бриф. Поиск по лоту выполняется,
// только если у поставщика есть услуги во фреймворке.
func (s *EligibilityService) Check(ctx context.Context, brief *models.Brief, supplier models.Supplier, mode EligibilityMode) (EligibilityVerdict, error) {
	verdict := EligibilityVerdict{
		FrameworkName: brief.FrameworkName,
		FrameworkSlug: brief.FrameworkSlug,
		LotSlug:       brief.LotSlug,
		Mode:          mode,
	}

	var snapshot EligibilitySnapshot
	eligible, err := s.Briefs.IsSupplierEligibleForBrief(ctx, supplier.SupplierID, brief.ID)
	if err != nil {
		return verdict, translateAPIError(err, "failed to check eligibility")
	}
	snapshot.HasRoleServices = eligible

	if !eligible {
		frameworkServices, err := s.Services.FindServices(ctx, repository.ServiceFilter{
			SupplierID: supplier.SupplierID,
			Framework:  brief.FrameworkSlug,
			Status:     publishedServiceStatus,
		})
		if err != nil {
			return verdict, translateAPIError(err, "failed to find services")
		}
		snapshot.HasFrameworkServices = len(frameworkServices) > 0

		if snapshot.HasFrameworkServices {
			lotServices, err := s.Services.FindServices(ctx, repository.ServiceFilter{
				SupplierID: supplier.SupplierID,
				Framework:  brief.FrameworkSlug,
				Lot:        brief.LotSlug,
				Status:     publishedServiceStatus,
			})
			if err != nil {
				return verdict, translateAPIError(err, "failed to find services")
			}
			snapshot.HasLotServices = len(lotServices) > 0
		}
	}

	reason, ok := DetermineEligibility(snapshot)
	verdict.Eligible = ok
	verdict.Reason = reason
	verdict.DataReasonSlug = string(reason)
	if reason == NotOnFramework {
		verdict.DataReasonSlug = "supplier-not-on-" + brief.FrameworkSlug
	}
	return verdict, nil
}

// Require возвращает *IneligibleError, если поставщик не может работать с брифом.
func (s *EligibilityService) Require(ctx context.Context, brief *models.Brief, supplier models.Supplier, mode EligibilityMode) error {
	verdict, err := s.Check(ctx, brief, supplier, mode)
	if err != nil {
		return err
	}
	if !verdict.Eligible {
		return &IneligibleError{Verdict: verdict}
	}
	return nil
}
