package content

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/senyabanana/brief-responses-frontend/internal/i18n"
	"github.com/senyabanana/brief-responses-frontend/internal/models"
)

const (
	evidenceField = "evidence"
	yesNoField    = "yesNo"
)

// Decode собирает ответ секции из полей формы по объявленному типу секции.
// Пропущенный индекс списка считается ошибкой answer_required для этого индекса.
func (s *Section) Decode(form url.Values, brief *models.Brief) (any, models.ValidationErrors) {
	switch s.Type {
	case TextSection:
		return form.Get(s.ID), nil
	case BooleanSection:
		return parseBool(form, s.ID), nil
	case BooleanListSection:
		return s.decodeList(form, brief, "", func(i int) (any, bool) {
			key := fmt.Sprintf("%s-%d", s.ID, i)
			if _, ok := form[key]; !ok {
				return nil, false
			}
			return parseBool(form, key), true
		})
	case EvidenceListSection:
		return s.decodeList(form, brief, evidenceField, func(i int) (any, bool) {
			key := fmt.Sprintf("%s-%d", evidenceField, i)
			if _, ok := form[key]; !ok {
				return nil, false
			}
			return map[string]any{evidenceField: form.Get(key)}, true
		})
	case YesNoEvidenceListSection:
		return s.decodeList(form, brief, yesNoField, func(i int) (any, bool) {
			yesNoKey := fmt.Sprintf("%s-%d", yesNoField, i)
			evidenceKey := fmt.Sprintf("%s-%d", evidenceField, i)
			_, hasYesNo := form[yesNoKey]
			_, hasEvidence := form[evidenceKey]
			if !hasYesNo && !hasEvidence {
				return nil, false
			}
			item := map[string]any{}
			if yes, ok := parseBool(form, yesNoKey).(bool); ok {
				item[yesNoField] = yes
				if evidence := form.Get(evidenceKey); yes && evidence != "" {
					item[evidenceField] = evidence
				}
			}
			return item, true
		})
	}
	return nil, models.ValidationErrors{{Question: s.ID, Index: -1, Code: "unknown_section_type"}}
}

func (s *Section) decodeList(form url.Values, brief *models.Brief, field string, item func(int) (any, bool)) (any, models.ValidationErrors) {
	items := s.Items(brief)
	values := make([]any, 0, len(items))
	var errs models.ValidationErrors
	for i := range items {
		value, ok := item(i)
		if !ok {
			errs = append(errs, models.FieldError{Question: s.ID, Field: field, Index: i, Code: "answer_required"})
		}
		values = append(values, value)
	}
	return values, errs
}

func parseBool(form url.Values, key string) any {
	value, err := strconv.ParseBool(form.Get(key))
	if err != nil {
		return nil
	}
	return value
}

// FormValues раскладывает ответ секции обратно в поля формы.
func (s *Section) FormValues(answer any, brief *models.Brief) map[string]string {
	values := map[string]string{}
	if answer == nil {
		return values
	}
	switch s.Type {
	case TextSection:
		values[s.ID] = scalar(answer)
	case BooleanSection:
		values[s.ID] = scalar(answer)
	case BooleanListSection:
		for i, item := range asList(answer) {
			if item != nil {
				values[fmt.Sprintf("%s-%d", s.ID, i)] = scalar(item)
			}
		}
	case EvidenceListSection, YesNoEvidenceListSection:
		for i, item := range asList(answer) {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if yesNo, ok := entry[yesNoField]; ok {
				values[fmt.Sprintf("%s-%d", yesNoField, i)] = scalar(yesNo)
			}
			if evidence, ok := entry[evidenceField]; ok {
				values[fmt.Sprintf("%s-%d", evidenceField, i)] = scalar(evidence)
			}
		}
	}
	return values
}

// SummaryItem - строка ответа на странице проверки.
type SummaryItem struct {
	Label string
	Value string
}

// Display форматирует сохраненный ответ для страницы проверки ответов.
func (s *Section) Display(answer any, brief *models.Brief) []SummaryItem {
	if answer == nil {
		return nil
	}
	switch s.Type {
	case TextSection, BooleanSection:
		return []SummaryItem{{Value: s.format(answer)}}
	}

	requirements := s.Items(brief)
	var rows []SummaryItem
	for i, item := range asList(answer) {
		label := ""
		if i < len(requirements) {
			label = requirements[i]
		}
		rows = append(rows, SummaryItem{Label: label, Value: displayItem(item)})
	}
	return rows
}

func (s *Section) format(answer any) string {
	if b, ok := answer.(bool); ok {
		return yesNo(b)
	}
	value := scalar(answer)
	if s.SummaryFormat == "money" {
		return i18n.Money(value)
	}
	return value
}

func displayItem(item any) string {
	switch v := item.(type) {
	case bool:
		return yesNo(v)
	case map[string]any:
		if evidence, ok := v[evidenceField]; ok {
			return scalar(evidence)
		}
		if yes, ok := v[yesNoField].(bool); ok {
			return yesNo(yes)
		}
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func asList(answer any) []any {
	switch v := answer.(type) {
	case []any:
		return v
	case []bool:
		out := make([]any, len(v))
		for i, b := range v {
			out[i] = b
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	}
	return nil
}

func scalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}
