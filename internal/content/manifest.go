// Package content загружает манифесты вопросов заявки и строит по ним порядок секций.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/senyabanana/brief-responses-frontend/internal/models"
	"github.com/senyabanana/brief-responses-frontend/internal/utils"

	"gopkg.in/yaml.v3"
)

//go:embed manifests/*.yml frameworks.yml
var embedded embed.FS

// SectionType - тип данных, которые собирает секция.
type SectionType string

const (
	TextSection              SectionType = "text"
	BooleanSection           SectionType = "boolean"
	BooleanListSection       SectionType = "boolean_list"
	EvidenceListSection      SectionType = "evidence_list"
	YesNoEvidenceListSection SectionType = "yes_no_evidence_list"
)

var knownTypes = []SectionType{TextSection, BooleanSection, BooleanListSection, EvidenceListSection, YesNoEvidenceListSection}

// Text - текст, который может зависеть от лота брифа.
type Text struct {
	Default string
	ByLot   map[string]string
}

// UnmarshalYAML принимает либо строку, либо словарь lot -> текст.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		t.Default = node.Value
		return nil
	case yaml.MappingNode:
		byLot := map[string]string{}
		if err := node.Decode(&byLot); err != nil {
			return err
		}
		t.Default = byLot["default"]
		delete(byLot, "default")
		t.ByLot = byLot
		return nil
	}
	return fmt.Errorf("line %d: text must be a string or a map of lots", node.Line)
}

// For возвращает текст для лота.
func (t Text) For(lot string) string {
	if text, ok := t.ByLot[lot]; ok {
		return text
	}
	return t.Default
}

// Empty сообщает, что текст не задан ни для одного лота.
func (t Text) Empty() bool {
	return t.Default == "" && len(t.ByLot) == 0
}

// Validation - сообщение для кода ошибки поля.
type Validation struct {
	Field   string `yaml:"field"`
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
}

// Section - страница мастера заявки с одним вопросом.
type Section struct {
	ID                    string       `yaml:"id"`
	Name                  string       `yaml:"name"`
	Type                  SectionType  `yaml:"type"`
	Question              Text         `yaml:"question"`
	Hint                  Text         `yaml:"hint"`
	InputType             string       `yaml:"input_type"`
	Prefix                string       `yaml:"prefix"`
	Lots                  []string     `yaml:"lots"`
	ReadOnly              bool         `yaml:"readonly"`
	ItemsFrom             string       `yaml:"items_from"`
	ExcludeWhenBriefEmpty string       `yaml:"exclude_when_brief_empty"`
	RolePriceHint         bool         `yaml:"role_price_hint"`
	SummaryLabel          Text         `yaml:"summary_label"`
	LegacySummaryLabel    Text         `yaml:"legacy_summary_label"`
	SummaryFormat         string       `yaml:"summary_format"`
	Validations           []Validation `yaml:"validations"`
}

// SummaryGroup - блок страницы проверки ответов.
type SummaryGroup struct {
	Heading  string   `yaml:"heading"`
	Sections []string `yaml:"sections"`
}

// Manifest - упорядоченный набор секций для семейства фреймворков.
type Manifest struct {
	Name     string         `yaml:"name"`
	Sections []*Section     `yaml:"sections"`
	Summary  []SummaryGroup `yaml:"summary"`
}

// FrameworkEntry - настройки конкретного фреймворка.
type FrameworkEntry struct {
	Family             string `yaml:"family"`
	LegacyResponseFlow bool   `yaml:"legacy_response_flow"`
}

// Registry хранит манифесты по семействам и настройки фреймворков.
type Registry struct {
	frameworks map[string]FrameworkEntry
	manifests  map[string]*Manifest
}

// Load загружает встроенные манифесты.
func Load() (*Registry, error) {
	return LoadFS(embedded)
}

// LoadFS загружает манифесты из файловой системы: frameworks.yml и manifests/<family>.yml.
func LoadFS(fsys fs.FS) (*Registry, error) {
	raw, err := fs.ReadFile(fsys, "frameworks.yml")
	if err != nil {
		return nil, fmt.Errorf("read frameworks: %w", err)
	}
	var frameworks struct {
		Frameworks map[string]FrameworkEntry `yaml:"frameworks"`
	}
	if err := yaml.Unmarshal(raw, &frameworks); err != nil {
		return nil, fmt.Errorf("parse frameworks: %w", err)
	}

	registry := &Registry{
		frameworks: frameworks.Frameworks,
		manifests:  map[string]*Manifest{},
	}

	files, err := fs.Glob(fsys, "manifests/*.yml")
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		manifest, err := ParseManifest(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		family := strings.TrimSuffix(path.Base(file), ".yml")
		registry.manifests[family] = manifest
	}
	return registry, nil
}

// ParseManifest разбирает и проверяет манифест.
func ParseManifest(raw []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, err
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// Validate проверяет уникальность секций, их типы и сводку.
func (m *Manifest) Validate() error {
	seen := map[string]bool{}
	for i, section := range m.Sections {
		if section.ID == "" {
			return fmt.Errorf("section %d has no id", i)
		}
		if seen[section.ID] {
			return fmt.Errorf("duplicate section %q", section.ID)
		}
		seen[section.ID] = true
		if !utils.Contains(knownTypes, section.Type) {
			return fmt.Errorf("section %q has unknown type %q", section.ID, section.Type)
		}
		if section.Question.Empty() {
			return fmt.Errorf("section %q has no question", section.ID)
		}
		if section.isList() && section.ItemsFrom == "" {
			return fmt.Errorf("section %q needs items_from", section.ID)
		}
	}
	for _, group := range m.Summary {
		for _, id := range group.Sections {
			if !seen[id] {
				return fmt.Errorf("summary %q references unknown section %q", group.Heading, id)
			}
		}
	}
	return nil
}

// Families возвращает семейства, для которых есть манифест.
func (r *Registry) Families() []string {
	families := make([]string, 0, len(r.manifests))
	for family := range r.manifests {
		families = append(families, family)
	}
	return families
}

// Manifest возвращает манифест семейства фреймворков.
func (r *Registry) Manifest(family string) (*Manifest, bool) {
	manifest, ok := r.manifests[family]
	return manifest, ok
}

// IsLegacy сообщает, использует ли фреймворк устаревший формат заявки.
// Второе значение ложно, если фреймворк не описан в реестре.
func (r *Registry) IsLegacy(frameworkSlug string) (bool, bool) {
	entry, ok := r.frameworks[frameworkSlug]
	if !ok {
		return false, false
	}
	return entry.LegacyResponseFlow, true
}

// IsLegacyResponse определяет формат заявки: по реестру, а для неизвестных
// фреймворков по наличию ответа essentialRequirementsMet.
func (r *Registry) IsLegacyResponse(frameworkSlug string, response *models.BriefResponse) bool {
	if legacy, known := r.IsLegacy(frameworkSlug); known {
		return legacy
	}
	_, current := response.Answer("essentialRequirementsMet")
	return !current
}

// Resolve строит порядок секций для брифа: фильтр по лоту и правила исключения.
func (m *Manifest) Resolve(brief *models.Brief) Flow {
	var sections []*Section
	for _, section := range m.Sections {
		if len(section.Lots) > 0 && !utils.Contains(section.Lots, brief.LotSlug) {
			continue
		}
		if section.ExcludeWhenBriefEmpty != "" && len(brief.List(section.ExcludeWhenBriefEmpty)) == 0 {
			continue
		}
		sections = append(sections, section)
	}
	return Flow{Sections: sections, summary: m.Summary}
}

func (s *Section) isList() bool {
	switch s.Type {
	case BooleanListSection, EvidenceListSection, YesNoEvidenceListSection:
		return true
	}
	return false
}

// Items возвращает элементы брифа, по которым строится список ответов.
func (s *Section) Items(brief *models.Brief) []string {
	if !s.isList() {
		return nil
	}
	return brief.List(s.ItemsFrom)
}

// Empty сообщает, что у секции нет вопросов для этого брифа.
func (s *Section) Empty(brief *models.Brief) bool {
	return s.isList() && len(s.Items(brief)) == 0
}

// Editable сообщает, можно ли открыть секцию в мастере.
func (s *Section) Editable() bool {
	return !s.ReadOnly
}

// QuestionFor возвращает текст вопроса для брифа.
func (s *Section) QuestionFor(brief *models.Brief) string {
	return fill(s.Question.For(brief.LotSlug), brief)
}

// HintFor возвращает подсказку для брифа.
func (s *Section) HintFor(brief *models.Brief) string {
	return fill(s.Hint.For(brief.LotSlug), brief)
}

// LabelFor возвращает подпись секции на странице проверки ответов.
func (s *Section) LabelFor(brief *models.Brief, legacy bool) string {
	if legacy && !s.LegacySummaryLabel.Empty() {
		return s.LegacySummaryLabel.For(brief.LotSlug)
	}
	if !s.SummaryLabel.Empty() {
		return s.SummaryLabel.For(brief.LotSlug)
	}
	return s.QuestionFor(brief)
}

// ErrorMessage подбирает текст ошибки поля; {item} заменяется требованием брифа.
func (s *Section) ErrorMessage(fe models.FieldError, brief *models.Brief, fallback string) string {
	message := ""
	for _, v := range s.Validations {
		if v.Code == fe.Code && v.Field == fe.Field {
			message = v.Message
			break
		}
	}
	if message == "" {
		for _, v := range s.Validations {
			if v.Code == fe.Code && v.Field == "" {
				message = v.Message
				break
			}
		}
	}
	if message == "" {
		return fallback
	}
	if fe.Indexed() {
		items := s.Items(brief)
		if fe.Index < len(items) {
			message = strings.ReplaceAll(message, "{item}", items[fe.Index])
		}
	}
	return message
}

var lotWho = map[string]string{
	"digital-specialists":        "the specialist",
	"digital-outcomes":           "the team",
	"user-research-participants": "you",
}

func fill(text string, brief *models.Brief) string {
	if !strings.Contains(text, "{") {
		return text
	}
	who, ok := lotWho[brief.LotSlug]
	if !ok {
		who = "you"
	}
	return strings.NewReplacer(
		"{startDate}", utils.DateFormat(brief.StartDate),
		"{budgetRange}", brief.BudgetRange,
		"{lotWho}", who,
	).Replace(text)
}
