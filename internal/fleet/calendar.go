package fleet

import (
	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// CalendarCategories are the allowed school-calendar categories.
var CalendarCategories = []string{"school day", "holiday", "half day", "teacher work day", "break", "event"}

// CalendarEvent is an entry on the school calendar that affects routing.
type CalendarEvent struct {
	ID          string `json:"id" yaml:"id"`
	Date        string `json:"date" yaml:"date"`
	EndDate     string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	RouteNeeded bool   `json:"route_needed" yaml:"route_needed"`
}

var calendarFields = []Field[CalendarEvent]{
	dateField("date", "Date", true, func(c *CalendarEvent) *string { return &c.Date }),
	dateField("end_date", "End Date", false, func(c *CalendarEvent) *string { return &c.EndDate }),
	textField("category", "Category", true, func(c *CalendarEvent) *string { return &c.Category }),
	textField("description", "Description", false, func(c *CalendarEvent) *string { return &c.Description }),
	boolField("route_needed", "Routes Run", func(c *CalendarEvent) *bool { return &c.RouteNeeded }),
}

// Validate checks a calendar event before it is committed.
func (c CalendarEvent) Validate() error {
	if err := Check(c, calendarFields, nil); err != nil {
		return err
	}
	if err := oneOf("Category", c.Category, CalendarCategories); err != nil {
		return err
	}
	return notBefore("Date", c.Date, "End Date", c.EndDate, DateLayout)
}

// Calendar is the management wiring for the school calendar.
func Calendar() Kind[CalendarEvent] {
	return Kind[CalendarEvent]{
		Name:   "calendar",
		Fields: calendarFields,
		Identity: store.Identity[CalendarEvent]{
			ID:     func(c CalendarEvent) string { return c.ID },
			WithID: func(c CalendarEvent, id string) CalendarEvent { c.ID = id; return c },
		},
		Validate: CalendarEvent.Validate,
		Hooks: manage.Hooks[CalendarEvent, string]{
			Title: "Calendar",
			Noun:  "calendar entry",
			Columns: []manage.Column{
				{Field: "date", Header: "Date", Width: 10},
				{Field: "end", Header: "Through", Width: 10},
				{Field: "category", Header: "Category", Width: 16},
				{Field: "description", Header: "Description", Width: 20},
				{Field: "routes", Header: "Routes", Width: 6},
			},
			Key: func(c CalendarEvent) string { return c.ID },
			Project: func(c CalendarEvent) map[string]string {
				routes := "no"
				if c.RouteNeeded {
					routes = "yes"
				}
				return map[string]string{
					"date":        c.Date,
					"end":         c.EndDate,
					"category":    c.Category,
					"description": c.Description,
					"routes":      routes,
				}
			},
			SearchFields: func(c CalendarEvent) []string {
				return []string{c.Category, c.Description, c.Date}
			},
			Details: func(c CalendarEvent) []manage.DetailField {
				return details(c, calendarFields)
			},
			Describe: func(c CalendarEvent) string {
				return joinNonEmpty(" ", c.Date, c.Category)
			},
		},
	}
}
