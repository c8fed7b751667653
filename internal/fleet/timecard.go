package fleet

import (
	"fmt"
	"time"

	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// TimeCard is one driver's clocked shift on a day.
type TimeCard struct {
	ID       string `json:"id" yaml:"id"`
	Driver   string `json:"driver" yaml:"driver"`
	Date     string `json:"date" yaml:"date"`
	ClockIn  string `json:"clock_in,omitempty" yaml:"clock_in,omitempty"`
	ClockOut string `json:"clock_out,omitempty" yaml:"clock_out,omitempty"`
	Route    string `json:"route,omitempty" yaml:"route,omitempty"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Hours returns the shift length, or 0 until both clock times are set.
func (c TimeCard) Hours() float64 {
	in, errIn := time.Parse(TimeLayout, c.ClockIn)
	out, errOut := time.Parse(TimeLayout, c.ClockOut)
	if errIn != nil || errOut != nil || out.Before(in) {
		return 0
	}
	return out.Sub(in).Hours()
}

func (c TimeCard) hoursText() string {
	h := c.Hours()
	if h == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", h)
}

var timeCardFields = []Field[TimeCard]{
	textField("driver", "Driver", true, func(c *TimeCard) *string { return &c.Driver }),
	dateField("date", "Date", true, func(c *TimeCard) *string { return &c.Date }),
	clockField("clock_in", "Clock In", func(c *TimeCard) *string { return &c.ClockIn }),
	clockField("clock_out", "Clock Out", func(c *TimeCard) *string { return &c.ClockOut }),
	textField("route", "Route", false, func(c *TimeCard) *string { return &c.Route }),
	textField("notes", "Notes", false, func(c *TimeCard) *string { return &c.Notes }),
}

// Validate checks a time card before it is committed.
func (c TimeCard) Validate() error {
	if err := Check(c, timeCardFields, nil); err != nil {
		return err
	}
	if c.ClockOut != "" && c.ClockIn == "" {
		return manage.Validationf("Clock In is required when Clock Out is set")
	}
	return notBefore("Clock In", c.ClockIn, "Clock Out", c.ClockOut, TimeLayout)
}

// TimeCards is the management wiring for driver time cards.
func TimeCards() Kind[TimeCard] {
	return Kind[TimeCard]{
		Name:   "timecards",
		Fields: timeCardFields,
		Identity: store.Identity[TimeCard]{
			ID:     func(c TimeCard) string { return c.ID },
			WithID: func(c TimeCard, id string) TimeCard { c.ID = id; return c },
		},
		Validate: TimeCard.Validate,
		Hooks: manage.Hooks[TimeCard, string]{
			Title: "Time Cards",
			Noun:  "time card",
			Columns: []manage.Column{
				{Field: "date", Header: "Date", Width: 10},
				{Field: "driver", Header: "Driver", Width: 18},
				{Field: "in", Header: "In", Width: 5},
				{Field: "out", Header: "Out", Width: 5},
				{Field: "hours", Header: "Hours", Width: 5, Numeric: true},
				{Field: "route", Header: "Route", Width: 10},
			},
			Key: func(c TimeCard) string { return c.ID },
			Project: func(c TimeCard) map[string]string {
				return map[string]string{
					"date":   c.Date,
					"driver": c.Driver,
					"in":     c.ClockIn,
					"out":    c.ClockOut,
					"hours":  c.hoursText(),
					"route":  c.Route,
				}
			},
			SearchFields: func(c TimeCard) []string {
				return []string{c.Driver, c.Date, c.Route, c.Notes}
			},
			Details: func(c TimeCard) []manage.DetailField {
				fields := details(c, timeCardFields)
				return append(fields, manage.DetailField{Label: "Hours", Value: c.hoursText()})
			},
			Describe: func(c TimeCard) string {
				return joinNonEmpty(" ", c.Driver, c.Date)
			},
		},
	}
}
