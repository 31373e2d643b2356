package organizer

import (
	"fmt"
	"strings"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"
)

// CreateCategory adds a user category. Names are trimmed and must be unique
// (case-insensitive) among user categories.
func (o *Organizer) CreateCategory(name string) (*model.UserCategory, error) {
	name = strings.TrimSpace(name)
	if err := o.checkName("", name); err != nil {
		o.logger.Warn("create category rejected", "name", name, "err", err)
		return nil, err
	}
	c, err := model.NewUserCategory(name)
	if err != nil {
		return nil, err
	}
	o.applyDefaults(c)
	o.user = append(o.user, c)
	o.logger.Debug("category created", "id", c.ID(), "name", c.Name())
	o.changed(bus.CreateCategoryRequest, c.ID(), "")
	return c, nil
}

// RenameCategory validates and applies a new name, then updates the cached
// category name on the todos the category holds.
func (o *Organizer) RenameCategory(id, newName string) error {
	cat, ok := o.Category(id)
	if !ok {
		return categoryNotFound(id)
	}
	uc, ok := cat.(*model.UserCategory)
	if !ok || !cat.IsEditable() {
		return fmt.Errorf("%w: %s", ErrNotEditable, cat.Name())
	}
	newName = strings.TrimSpace(newName)
	if newName == uc.Name() {
		return nil
	}
	if err := o.checkName(uc.ID(), newName); err != nil {
		o.logger.Warn("rename category rejected", "id", id, "name", newName, "err", err)
		return err
	}
	if err := uc.SetName(newName); err != nil {
		return err
	}
	for _, t := range uc.Todos() {
		t.CategoryName = uc.Name()
	}
	o.logger.Debug("category renamed", "id", id, "name", newName)
	o.changed(bus.RenameCategoryRequest, id, "")
	return nil
}

func (o *Organizer) checkName(selfID, name string) error {
	if name == "" {
		return model.ErrEmptyName
	}
	for _, c := range o.user {
		if c.ID() == selfID {
			continue
		}
		if strings.EqualFold(c.Name(), name) {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	return nil
}

// DeleteCategory removes a user category. With deleteTodos the contained todos
// are deleted everywhere; otherwise they stay in the system categories without
// a user category.
func (o *Organizer) DeleteCategory(id string, deleteTodos bool) error {
	cat, ok := o.Category(id)
	if !ok {
		return categoryNotFound(id)
	}
	uc, ok := cat.(*model.UserCategory)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotEditable, cat.Name())
	}

	for _, t := range append([]*model.Todo(nil), uc.Todos()...) {
		uc.RemoveTodo(t)
		if deleteTodos {
			o.removeTodo(t)
			continue
		}
		t.CategoryID = ""
		t.CategoryName = ""
	}

	kept := o.user[:0]
	for _, c := range o.user {
		if c != uc {
			kept = append(kept, c)
		}
	}
	o.user = kept
	o.refreshSystem()

	o.logger.Debug("category deleted", "id", id, "deleteTodos", deleteTodos)
	o.changed(bus.DeleteCategoryRequest, id, "")
	return nil
}

// SetSort validates the method, stores it on the category and re-sorts.
func (o *Organizer) SetSort(categoryID string, m model.SortMethod) error {
	cat, ok := o.Category(categoryID)
	if !ok {
		return categoryNotFound(categoryID)
	}
	if err := cat.SetSortingMethod(m); err != nil {
		o.logger.Warn("sort method rejected", "category", categoryID, "method", m)
		return err
	}
	cat.Refresh()
	o.changed(bus.SortCategoryRequest, categoryID, "")
	return nil
}

// SetFilter validates the method, stores it on the category, filters and re-sorts.
func (o *Organizer) SetFilter(categoryID string, m model.FilterMethod) error {
	cat, ok := o.Category(categoryID)
	if !ok {
		return categoryNotFound(categoryID)
	}
	if err := cat.SetFilterMethod(m); err != nil {
		o.logger.Warn("filter method rejected", "category", categoryID, "method", m)
		return err
	}
	cat.Refresh()
	o.changed(bus.FilterCategoryRequest, categoryID, "")
	return nil
}

func (o *Organizer) refreshSystem() {
	for _, c := range o.system {
		c.Refresh()
	}
}
