package organizer

import (
	"time"

	"todos-cli/internal/model"
	"todos-cli/internal/store"
)

// Export snapshots categories (system first, then user) and todos for storage.
func (o *Organizer) Export() *store.State {
	st := &store.State{
		Categories: make([]store.CategoryRecord, 0, len(o.system)+len(o.user)),
		Todos:      o.Todos(),
	}
	for i, c := range o.Categories() {
		rec := store.CategoryRecord{
			ID:            c.ID(),
			Name:          c.Name(),
			Editable:      c.IsEditable(),
			Position:      i,
			SortingMethod: string(c.SortingMethod()),
			FilterMethod:  string(c.FilterMethod()),
		}
		if uc, ok := c.(*model.UserCategory); ok {
			rec.CreatedAt = uc.CreationDate()
		}
		st.Categories = append(st.Categories, rec)
	}
	return st
}

// Import replaces the organizer's contents with st. Unknown sort or filter
// keys fall back to the defaults with a warning; todos pointing at a missing
// category are kept without one. Import does not publish changes.
func (o *Organizer) Import(st *store.State) {
	o.system = model.DefaultSystemCategories()
	for _, c := range o.system {
		o.applyDefaults(c)
	}
	o.user = nil
	o.todos = nil
	if st == nil {
		return
	}

	seen := map[string]bool{}
	for _, rec := range st.Categories {
		var cat model.CategoryLike
		if !rec.Editable {
			sc := o.systemCategory(rec.ID)
			if sc == nil {
				o.logger.Warn("unknown system category dropped", "id", rec.ID)
				continue
			}
			cat = sc
		} else {
			if rec.ID == "" || seen[rec.ID] {
				o.logger.Warn("category record skipped", "id", rec.ID, "name", rec.Name)
				continue
			}
			if err := o.checkName("", rec.Name); err != nil {
				o.logger.Warn("category record skipped", "id", rec.ID, "name", rec.Name, "err", err)
				continue
			}
			created := rec.CreatedAt
			if created.IsZero() {
				created = time.Now().UTC()
			}
			uc := model.RestoreUserCategory(rec.ID, rec.Name, created)
			o.applyDefaults(uc)
			o.user = append(o.user, uc)
			cat = uc
		}
		seen[rec.ID] = true

		if rec.SortingMethod != "" {
			if err := cat.SetSortingMethod(model.SortMethod(rec.SortingMethod)); err != nil {
				o.logger.Warn("stored sort method ignored", "category", rec.ID, "err", err)
			}
		}
		if rec.FilterMethod != "" {
			if err := cat.SetFilterMethod(model.FilterMethod(rec.FilterMethod)); err != nil {
				o.logger.Warn("stored filter method ignored", "category", rec.ID, "err", err)
			}
		}
	}

	ids := map[string]bool{}
	for _, t := range st.Todos {
		if t == nil || t.ID() == "" || ids[t.ID()] {
			continue
		}
		ids[t.ID()] = true
		o.AdoptTodo(t)
	}
	for _, c := range o.Categories() {
		c.Refresh()
	}
}
