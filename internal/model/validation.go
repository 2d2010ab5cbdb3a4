package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// DateLayout is the calendar date format used by Item.Date.
const DateLayout = "2006-01-02"

// A ValidationError is returned when an item is rejected before reaching the store.
type ValidationError struct {
	Fields map[string]string
}

// Add records a problem on the given field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
}

// Error implements error interface.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fmt.Sprintf("%s %s", field, e.Fields[field]))
	}
	return strings.Join(messages, ", ")
}

// ErrNotCalendarDate is returned when a date lacks its year, month or day.
var ErrNotCalendarDate = errors.New("not a calendar date")

// Layout elements that are not part of the calendar date.
var clock = strings.NewReplacer(
	"Monday", "", "Mon", "",
	"Z07:00", "", "Z0700", "", "-07:00", "", "-0700", "", "-07", "", "MST", "",
	".000000000", "", ".000000", "", ".000", "",
	"15", "", "03", "", "04", "", "05", "", "PM", "", "pm", "",
)

// NormalizeDate parses the given calendar date and formats it with DateLayout.
// The input must carry a year, a month and a day, timestamps are rejected.
func NormalizeDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if strings.Trim(date, "0123456789") == "" {
		return "", ErrNotCalendarDate
	}

	layout, err := dateparse.ParseFormat(date)
	if err != nil {
		return "", err
	}
	if !calendar(layout) {
		return "", ErrNotCalendarDate
	}

	t, err := dateparse.ParseStrict(date)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// calendar reports whether layout has a year, a month and a day element.
func calendar(layout string) bool {
	l := clock.Replace(layout)

	found := false
	for _, year := range []string{"2006", "06"} {
		if strings.Contains(l, year) {
			l = strings.Replace(l, year, "", 1)
			found = true
			break
		}
	}
	if !found {
		return false
	}

	found = false
	for _, month := range []string{"January", "Jan", "01", "1"} {
		if strings.Contains(l, month) {
			l = strings.Replace(l, month, "", 1)
			found = true
			break
		}
	}
	if !found {
		return false
	}

	return strings.Contains(l, "2")
}

// Validate checks the required fields, trims them and normalizes the date.
// It returns a *ValidationError listing every rejected field.
func (m *Item) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Category = strings.TrimSpace(m.Category)
	m.Location = strings.TrimSpace(m.Location)

	verr := new(ValidationError)
	if m.Name == "" {
		verr.Add("name", "is required")
	}
	if m.Category == "" {
		verr.Add("category", "is required")
	}
	if m.Location == "" {
		verr.Add("location", "is required")
	}

	if strings.TrimSpace(m.Date) == "" {
		verr.Add("date", "is required")
	} else if date, err := NormalizeDate(m.Date); err != nil {
		verr.Add("date", "is not a calendar date")
	} else {
		m.Date = date
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
