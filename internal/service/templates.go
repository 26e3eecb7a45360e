package service

import (
	"strings"

	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/task"
)

// TemplateService manages saved task templates.
type TemplateService struct {
	store StateStore
	clock Clock
	ids   IDGenerator
}

func newTemplateService(store StateStore, clock Clock, ids IDGenerator) *TemplateService {
	return &TemplateService{store: store, clock: clock, ids: ids}
}

// Create saves a new template. The name and every item are trimmed; items
// without a title are dropped. It reports false when the name is blank.
func (s *TemplateService) Create(name string, items []task.TemplateItem) (task.Template, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return task.Template{}, false
	}
	tmpl := task.Template{
		ID:        s.ids.Generate(),
		Name:      name,
		Items:     cleanItems(items),
		CreatedAt: s.clock.Now(),
	}
	s.store.Dispatch(state.TemplateUpsert{Template: tmpl})
	return tmpl, true
}

// CreateFromCurrentTasks saves the current task list as a template.
func (s *TemplateService) CreateFromCurrentTasks(name string) (task.Template, bool) {
	tasks := s.store.GetState().Tasks
	items := make([]task.TemplateItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, task.ItemFromTask(t))
	}
	return s.Create(name, items)
}

// Update replaces a template with the same id, or adds it.
func (s *TemplateService) Update(tmpl task.Template) {
	s.store.Dispatch(state.TemplateUpsert{Template: tmpl})
}

// Remove deletes a template.
func (s *TemplateService) Remove(id string) {
	s.store.Dispatch(state.TemplateRemove{ID: id})
}

func cleanItems(items []task.TemplateItem) []task.TemplateItem {
	out := make([]task.TemplateItem, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		out = append(out, task.TemplateItem{
			Title:    title,
			Tags:     cleanStrings(item.Tags),
			Subtasks: cleanStrings(item.Subtasks),
		})
	}
	return out
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
