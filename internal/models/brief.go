package models

import "encoding/json"

type (
	BriefStatus     string // Статус брифа
	FrameworkStatus string // Статус фреймворка
)

const (
	DraftBrief        BriefStatus = "draft"        // Бриф не опубликован
	LiveBrief         BriefStatus = "live"         // Бриф открыт для заявок
	ClosedBrief       BriefStatus = "closed"       // Прием заявок завершен
	AwardedBrief      BriefStatus = "awarded"      // Контракт присужден
	UnsuccessfulBrief BriefStatus = "unsuccessful" // Закупка не состоялась
	CancelledBrief    BriefStatus = "cancelled"    // Закупка отменена
	WithdrawnBrief    BriefStatus = "withdrawn"    // Бриф отозван покупателем

	ComingFramework     FrameworkStatus = "coming"
	OpenFramework       FrameworkStatus = "open"
	PendingFramework    FrameworkStatus = "pending"
	StandstillFramework FrameworkStatus = "standstill"
	LiveFramework       FrameworkStatus = "live"
	ExpiredFramework    FrameworkStatus = "expired"
)

// PublishedBriefStatuses - статусы опубликованных брифов.
var PublishedBriefStatuses = []BriefStatus{LiveBrief, ClosedBrief, AwardedBrief, CancelledBrief, UnsuccessfulBrief, WithdrawnBrief}

// BriefUser - пользователь покупателя, владеющий брифом.
type BriefUser struct {
	ID           int    `json:"id"`
	EmailAddress string `json:"emailAddress"`
	Name         string `json:"name"`
	Active       bool   `json:"active"`
}

// ClarificationQuestion - опубликованный вопрос и ответ покупателя.
type ClarificationQuestion struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	PublishedAt string `json:"publishedAt"`
}

// Brief представляет модель брифа (возможности) покупателя.
type Brief struct {
	ID                                int                     `json:"id"`
	Title                             string                  `json:"title"`
	Status                            BriefStatus             `json:"status"`
	FrameworkSlug                     string                  `json:"frameworkSlug"`
	FrameworkName                     string                  `json:"frameworkName"`
	FrameworkFramework                string                  `json:"frameworkFramework"`
	LotSlug                           string                  `json:"lotSlug"`
	LotName                           string                  `json:"lotName"`
	SpecialistRole                    string                  `json:"specialistRole,omitempty"`
	Location                          string                  `json:"location"`
	Organisation                      string                  `json:"organisation"`
	StartDate                         string                  `json:"startDate"`
	BudgetRange                       string                  `json:"budgetRange,omitempty"`
	EssentialRequirements             []string                `json:"essentialRequirements"`
	NiceToHaveRequirements            []string                `json:"niceToHaveRequirements,omitempty"`
	EvaluationType                    []string                `json:"evaluationType,omitempty"`
	ClarificationQuestionsAreClosed   bool                    `json:"clarificationQuestionsAreClosed"`
	ClarificationQuestionsClosedAt    string                  `json:"clarificationQuestionsClosedAt"`
	ClarificationQuestionsPublishedBy string                  `json:"clarificationQuestionsPublishedBy"`
	ClarificationQuestions            []ClarificationQuestion `json:"clarificationQuestions,omitempty"`
	QuestionAndAnswerSessionDetails   string                  `json:"questionAndAnswerSessionDetails,omitempty"`
	ApplicationsClosedAt              string                  `json:"applicationsClosedAt"`
	PublishedAt                       string                  `json:"publishedAt"`
	Users                             []BriefUser             `json:"users,omitempty"`

	raw map[string]json.RawMessage
}

// UnmarshalJSON сохраняет исходные поля брифа для правил исключения секций.
func (b *Brief) UnmarshalJSON(data []byte) error {
	type plain Brief
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Brief(decoded)
	b.raw = raw
	return nil
}

// HasKey сообщает, присутствует ли поле в исходных данных брифа.
func (b *Brief) HasKey(key string) bool {
	if b.raw != nil {
		_, ok := b.raw[key]
		return ok
	}
	return len(b.List(key)) > 0
}

// List возвращает список требований брифа по имени поля.
func (b *Brief) List(key string) []string {
	switch key {
	case "essentialRequirements":
		return b.EssentialRequirements
	case "niceToHaveRequirements":
		return b.NiceToHaveRequirements
	case "evaluationType":
		return b.EvaluationType
	}
	return nil
}

// IsLive сообщает, открыт ли бриф для заявок.
func (b *Brief) IsLive() bool {
	return b.Status == LiveBrief
}

// ActiveUserEmails возвращает адреса активных пользователей брифа.
func (b *Brief) ActiveUserEmails() []string {
	var emails []string
	for _, user := range b.Users {
		if user.Active {
			emails = append(emails, user.EmailAddress)
		}
	}
	return emails
}

// Lot представляет модель лота фреймворка.
type Lot struct {
	ID              int    `json:"id"`
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	AllowsBrief     bool   `json:"allowsBrief"`
	OneServiceLimit bool   `json:"oneServiceLimit"`
}

// Framework представляет модель фреймворка.
type Framework struct {
	ID        int             `json:"id"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Framework string          `json:"framework"`
	Status    FrameworkStatus `json:"status"`
	Lots      []Lot           `json:"lots"`
}

// Lot возвращает лот фреймворка по slug.
func (f *Framework) Lot(slug string) (Lot, bool) {
	for _, lot := range f.Lots {
		if lot.Slug == slug {
			return lot, true
		}
	}
	return Lot{}, false
}

// SupplierFramework - участие поставщика во фреймворке.
type SupplierFramework struct {
	SupplierID    int    `json:"supplierId"`
	FrameworkSlug string `json:"frameworkSlug"`
	OnFramework   bool   `json:"onFramework"`
}

// Service - опубликованная услуга поставщика.
type Service struct {
	ID            string         `json:"id"`
	SupplierID    int            `json:"supplierId"`
	FrameworkSlug string         `json:"frameworkSlug"`
	Lot           string         `json:"lot"`
	Status        string         `json:"status"`
	Data          map[string]any `json:"-"`
}

// UnmarshalJSON сохраняет все поля услуги, включая цены по ролям.
func (s *Service) UnmarshalJSON(data []byte) error {
	type plain Service
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = Service(decoded)
	s.Data = fields
	return nil
}

// RolePriceMax возвращает максимальную дневную ставку поставщика для роли.
func (s *Service) RolePriceMax(role string) string {
	if role == "" || s.Data == nil {
		return ""
	}
	value, ok := s.Data[role+"PriceMax"]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	if b, err := json.Marshal(value); err == nil {
		return string(b)
	}
	return ""
}

// AuditEvent - событие аудита, записываемое через API.
type AuditEvent struct {
	Type       string         `json:"type"`
	User       string         `json:"user"`
	Data       map[string]any `json:"data"`
	ObjectType string         `json:"objectType"`
	ObjectID   int            `json:"objectId"`
}
