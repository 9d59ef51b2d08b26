package models

import "encoding/json"

// BriefResponseStatus - статус заявки поставщика.
type BriefResponseStatus string

const (
	DraftResponse          BriefResponseStatus = "draft"           // Заявка заполняется
	SubmittedResponse      BriefResponseStatus = "submitted"       // Заявка отправлена
	PendingAwardedResponse BriefResponseStatus = "pending-awarded" // Заявка выбрана победителем
	AwardedResponse        BriefResponseStatus = "awarded"         // Контракт заключен
)

// BriefSummary - сокращенные данные брифа в списке заявок.
type BriefSummary struct {
	ID                   int         `json:"id"`
	Title                string      `json:"title"`
	Status               BriefStatus `json:"status"`
	FrameworkSlug        string      `json:"frameworkSlug"`
	FrameworkFramework   string      `json:"frameworkFramework"`
	LotSlug              string      `json:"lotSlug"`
	ApplicationsClosedAt string      `json:"applicationsClosedAt"`
}

// BriefResponse представляет модель заявки поставщика на бриф.
type BriefResponse struct {
	ID          int                 `json:"id"`
	BriefID     int                 `json:"briefId"`
	SupplierID  int                 `json:"supplierId"`
	Status      BriefResponseStatus `json:"status"`
	CreatedAt   string              `json:"createdAt"`
	SubmittedAt string              `json:"submittedAt,omitempty"`
	Brief       *BriefSummary       `json:"brief,omitempty"`
	Data        map[string]any      `json:"-"`
}

var briefResponseMetaKeys = map[string]bool{
	"id": true, "briefId": true, "supplierId": true, "status": true,
	"createdAt": true, "submittedAt": true, "brief": true, "links": true,
	"supplierName": true, "updatedAt": true,
}

// UnmarshalJSON разделяет служебные поля заявки и ответы на вопросы.
func (r *BriefResponse) UnmarshalJSON(data []byte) error {
	type plain BriefResponse
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = BriefResponse(decoded)
	r.Data = map[string]any{}
	for key, value := range fields {
		if !briefResponseMetaKeys[key] {
			r.Data[key] = value
		}
	}
	return nil
}

// Answer возвращает сохраненный ответ на вопрос.
func (r *BriefResponse) Answer(key string) (any, bool) {
	if r.Data == nil {
		return nil, false
	}
	value, ok := r.Data[key]
	return value, ok
}

// BelongsTo проверяет, что заявка относится к брифу и поставщику.
func (r *BriefResponse) BelongsTo(briefID, supplierID int) bool {
	return r.BriefID == briefID && r.SupplierID == supplierID
}

// Supplier - идентичность поставщика из сессии.
type Supplier struct {
	SupplierID   int    `json:"supplierId"`
	EmailAddress string `json:"emailAddress"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// SupplierRole - роль пользователя-поставщика.
const SupplierRole = "supplier"
