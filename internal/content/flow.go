package content

// Flow - секции манифеста, отобранные для конкретного брифа, в порядке прохождения.
type Flow struct {
	Sections []*Section
	summary  []SummaryGroup
}

// Section ищет секцию по id.
func (f Flow) Section(id string) (*Section, bool) {
	for _, section := range f.Sections {
		if section.ID == id {
			return section, true
		}
	}
	return nil, false
}

func (f Flow) index(id string) int {
	for i, section := range f.Sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}

// First возвращает первую доступную для редактирования секцию.
func (f Flow) First() (*Section, bool) {
	for _, section := range f.Sections {
		if section.Editable() {
			return section, true
		}
	}
	return nil, false
}

// Next возвращает следующую редактируемую секцию после id.
func (f Flow) Next(id string) (*Section, bool) {
	i := f.index(id)
	if i < 0 {
		return nil, false
	}
	for _, section := range f.Sections[i+1:] {
		if section.Editable() {
			return section, true
		}
	}
	return nil, false
}

// Previous возвращает предыдущую редактируемую секцию перед id.
func (f Flow) Previous(id string) (*Section, bool) {
	i := f.index(id)
	for j := i - 1; j >= 0; j-- {
		if f.Sections[j].Editable() {
			return f.Sections[j], true
		}
	}
	return nil, false
}

// FirstIncomplete возвращает первую редактируемую секцию без сохраненного ответа.
func (f Flow) FirstIncomplete(answers map[string]any) (*Section, bool) {
	for _, section := range f.Sections {
		if !section.Editable() {
			continue
		}
		if value, ok := answers[section.ID]; !ok || value == nil {
			return section, true
		}
	}
	return nil, false
}

// ResolvedGroup - блок сводки с секциями, вошедшими в поток.
type ResolvedGroup struct {
	Heading  string
	Sections []*Section
}

// Summary возвращает блоки страницы проверки ответов без пустых блоков.
func (f Flow) Summary() []ResolvedGroup {
	var groups []ResolvedGroup
	for _, group := range f.summary {
		resolved := ResolvedGroup{Heading: group.Heading}
		for _, id := range group.Sections {
			if section, ok := f.Section(id); ok {
				resolved.Sections = append(resolved.Sections, section)
			}
		}
		if len(resolved.Sections) > 0 {
			groups = append(groups, resolved)
		}
	}
	return groups
}

// IDs возвращает идентификаторы секций по порядку.
func (f Flow) IDs() []string {
	ids := make([]string, 0, len(f.Sections))
	for _, section := range f.Sections {
		ids = append(ids, section.ID)
	}
	return ids
}
