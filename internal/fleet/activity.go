package fleet

import (
	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// Activity is a scheduled non-route trip such as a field trip or game.
type Activity struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Destination string `json:"destination" yaml:"destination"`
	Date        string `json:"date" yaml:"date"`
	LeaveTime   string `json:"leave_time,omitempty" yaml:"leave_time,omitempty"`
	ReturnTime  string `json:"return_time,omitempty" yaml:"return_time,omitempty"`
	Driver      string `json:"driver,omitempty" yaml:"driver,omitempty"`
	Vehicle     string `json:"vehicle,omitempty" yaml:"vehicle,omitempty"`
	RequestedBy string `json:"requested_by,omitempty" yaml:"requested_by,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

var activityFields = []Field[Activity]{
	textField("type", "Type", true, func(a *Activity) *string { return &a.Type }),
	textField("destination", "Destination", true, func(a *Activity) *string { return &a.Destination }),
	dateField("date", "Date", true, func(a *Activity) *string { return &a.Date }),
	clockField("leave_time", "Leave", func(a *Activity) *string { return &a.LeaveTime }),
	clockField("return_time", "Return", func(a *Activity) *string { return &a.ReturnTime }),
	textField("driver", "Driver", false, func(a *Activity) *string { return &a.Driver }),
	textField("vehicle", "Vehicle", false, func(a *Activity) *string { return &a.Vehicle }),
	textField("requested_by", "Requested By", false, func(a *Activity) *string { return &a.RequestedBy }),
	textField("notes", "Notes", false, func(a *Activity) *string { return &a.Notes }),
}

// Validate checks an activity before it is committed.
func (a Activity) Validate() error {
	if err := Check(a, activityFields, nil); err != nil {
		return err
	}
	return notBefore("Leave", a.LeaveTime, "Return", a.ReturnTime, TimeLayout)
}

// Activities is the management wiring for the activity schedule.
func Activities() Kind[Activity] {
	return Kind[Activity]{
		Name:   "activities",
		Fields: activityFields,
		Identity: store.Identity[Activity]{
			ID:     func(a Activity) string { return a.ID },
			WithID: func(a Activity, id string) Activity { a.ID = id; return a },
		},
		Validate: Activity.Validate,
		Hooks: manage.Hooks[Activity, string]{
			Title: "Activities",
			Noun:  "activity",
			Columns: []manage.Column{
				{Field: "date", Header: "Date", Width: 10},
				{Field: "type", Header: "Type", Width: 12},
				{Field: "destination", Header: "Destination", Width: 18},
				{Field: "leave", Header: "Leave", Width: 5},
				{Field: "driver", Header: "Driver", Width: 14},
				{Field: "vehicle", Header: "Vehicle", Width: 8},
			},
			Key: func(a Activity) string { return a.ID },
			Project: func(a Activity) map[string]string {
				return map[string]string{
					"date":        a.Date,
					"type":        a.Type,
					"destination": a.Destination,
					"leave":       a.LeaveTime,
					"driver":      a.Driver,
					"vehicle":     a.Vehicle,
				}
			},
			SearchFields: func(a Activity) []string {
				return []string{a.Type, a.Destination, a.Date}
			},
			Details: func(a Activity) []manage.DetailField {
				return details(a, activityFields)
			},
			Describe: func(a Activity) string {
				return joinNonEmpty(" · ", a.Type, a.Destination, a.Date)
			},
		},
	}
}
