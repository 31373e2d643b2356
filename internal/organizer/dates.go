package organizer

import (
	"todos-cli/internal/model"
)

// fileByDate updates the date-derived fields of t and its membership in the
// "Today" and "Next 7 days" categories.
func (o *Organizer) fileByDate(t *model.Todo) {
	now := o.now()
	t.MiniDueDate = model.MiniDueDate(t.DueDate, now)
	t.OverdueStatus = t.IsOverdue(now)

	days := -1
	if d, ok := t.Due(); ok {
		days = model.DaysBetween(now, d)
	}
	setMembership(o.systemCategory(model.CategoryTodayID), t, days == 0)
	setMembership(o.systemCategory(model.CategoryNext7DayID), t, days >= 0 && days < 7)
}

func setMembership(c *model.SystemCategory, t *model.Todo, member bool) {
	if c == nil {
		return
	}
	has := c.HasTodo(t)
	switch {
	case member && !has:
		c.AddTodo(t)
	case !member && has:
		c.RemoveTodo(t)
	}
}

// RefreshDates re-files every todo against the current day and re-sorts all
// categories. Call it at startup and whenever the day may have rolled over.
func (o *Organizer) RefreshDates() {
	for _, t := range o.todos {
		o.fileByDate(t)
	}
	for _, c := range o.Categories() {
		c.Refresh()
	}
}
