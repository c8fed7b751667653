package fleet

import (
	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// Route is one day's run of a named route, with morning and afternoon
// assignments and odometer readings.
type Route struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Date       string `json:"date" yaml:"date"`
	AMVehicle  string `json:"am_vehicle,omitempty" yaml:"am_vehicle,omitempty"`
	AMDriver   string `json:"am_driver,omitempty" yaml:"am_driver,omitempty"`
	PMVehicle  string `json:"pm_vehicle,omitempty" yaml:"pm_vehicle,omitempty"`
	PMDriver   string `json:"pm_driver,omitempty" yaml:"pm_driver,omitempty"`
	BeginMiles int    `json:"begin_miles,omitempty" yaml:"begin_miles,omitempty"`
	EndMiles   int    `json:"end_miles,omitempty" yaml:"end_miles,omitempty"`
}

// Miles returns the distance driven, or 0 when readings are incomplete.
func (r Route) Miles() int {
	if r.BeginMiles == 0 || r.EndMiles < r.BeginMiles {
		return 0
	}
	return r.EndMiles - r.BeginMiles
}

var routeFields = []Field[Route]{
	textField("name", "Route", true, func(r *Route) *string { return &r.Name }),
	dateField("date", "Date", true, func(r *Route) *string { return &r.Date }),
	textField("am_vehicle", "AM Vehicle", false, func(r *Route) *string { return &r.AMVehicle }),
	textField("am_driver", "AM Driver", false, func(r *Route) *string { return &r.AMDriver }),
	textField("pm_vehicle", "PM Vehicle", false, func(r *Route) *string { return &r.PMVehicle }),
	textField("pm_driver", "PM Driver", false, func(r *Route) *string { return &r.PMDriver }),
	intField("begin_miles", "Begin Miles", func(r *Route) *int { return &r.BeginMiles }),
	intField("end_miles", "End Miles", func(r *Route) *int { return &r.EndMiles }),
}

// Validate checks a route before it is committed.
func (r Route) Validate() error {
	if err := Check(r, routeFields, nil); err != nil {
		return err
	}
	if r.BeginMiles < 0 || r.EndMiles < 0 {
		return manage.Validationf("Mileage cannot be negative")
	}
	if r.BeginMiles > 0 && r.EndMiles > 0 && r.EndMiles < r.BeginMiles {
		return manage.Validationf("End Miles cannot be less than Begin Miles")
	}
	return nil
}

// Routes is the management wiring for daily route runs.
func Routes() Kind[Route] {
	return Kind[Route]{
		Name:   "routes",
		Fields: routeFields,
		Identity: store.Identity[Route]{
			ID:     func(r Route) string { return r.ID },
			WithID: func(r Route, id string) Route { r.ID = id; return r },
		},
		Validate: Route.Validate,
		Hooks: manage.Hooks[Route, string]{
			Title: "Routes",
			Noun:  "route",
			Columns: []manage.Column{
				{Field: "date", Header: "Date", Width: 10},
				{Field: "name", Header: "Route", Width: 12},
				{Field: "am", Header: "AM", Width: 16},
				{Field: "pm", Header: "PM", Width: 16},
				{Field: "miles", Header: "Miles", Width: 5, Numeric: true},
			},
			Key: func(r Route) string { return r.ID },
			Project: func(r Route) map[string]string {
				return map[string]string{
					"date":  r.Date,
					"name":  r.Name,
					"am":    joinNonEmpty(" / ", r.AMVehicle, r.AMDriver),
					"pm":    joinNonEmpty(" / ", r.PMVehicle, r.PMDriver),
					"miles": itoa(r.Miles()),
				}
			},
			SearchFields: func(r Route) []string {
				return []string{r.Name, r.Date, r.AMVehicle, r.AMDriver, r.PMVehicle, r.PMDriver}
			},
			Details: func(r Route) []manage.DetailField {
				fields := details(r, routeFields)
				return append(fields, manage.DetailField{Label: "Miles", Value: itoa(r.Miles())})
			},
			Describe: func(r Route) string {
				return joinNonEmpty(" ", r.Name, r.Date)
			},
		},
	}
}
