package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MiniDueDate renders a due date relative to now: "today", "tomorrow", a
// weekday name within the coming week, otherwise "02 jan". Unparseable or
// empty dates render as "".
func MiniDueDate(due string, now time.Time) string {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(due), now.Location())
	if err != nil {
		return ""
	}
	days := DaysBetween(now, d)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days > 1 && days < 7:
		return strings.ToLower(d.Weekday().String())
	}
	return strings.ToLower(d.Format("02 Jan"))
}

// DaysBetween returns the number of calendar days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// IsOverdue reports whether an uncompleted todo's due date is before today.
func (t *Todo) IsOverdue(now time.Time) bool {
	if t.CompletedStatus {
		return false
	}
	d, ok := t.Due()
	if !ok {
		return false
	}
	return DaysBetween(now, d) < 0
}

var (
	reDateOnly  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reRelative  = regexp.MustCompile(`^\+(\d{1,3})([dw])$`)
	weekdayKeys = map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
		"saturday": time.Saturday,
	}
)

// ParseDue parses a user-entered due date relative to now:
// - "" or "none" (no due date)
// - YYYY-MM-DD
// - today | tomorrow
// - a weekday name (next occurrence, today excluded)
// - +Nd / +Nw
func ParseDue(s string, now time.Time) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return "", nil
	case "today":
		return now.Format(DateLayout), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(DateLayout), nil
	}
	if reDateOnly.MatchString(s) {
		if err := ValidateDueDate(s); err != nil {
			return "", err
		}
		return s, nil
	}
	if wd, ok := weekdayKeys[s]; ok {
		days := (int(wd) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return now.AddDate(0, 0, days).Format(DateLayout), nil
	}
	if m := reRelative.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if m[2] == "w" {
			n *= 7
		}
		return now.AddDate(0, 0, n).Format(DateLayout), nil
	}
	return "", fmt.Errorf("%w: %q (expected YYYY-MM-DD, today, tomorrow, a weekday or +Nd/+Nw)", ErrInvalidDueDate, s)
}
