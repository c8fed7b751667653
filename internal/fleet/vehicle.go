package fleet

import (
	"strings"

	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// VehicleStatuses are the allowed vehicle status values.
var VehicleStatuses = []string{"active", "spare", "maintenance", "retired"}

// Vehicle is one bus or service vehicle in the fleet.
type Vehicle struct {
	ID             string `json:"id" yaml:"id"`
	Number         string `json:"number" yaml:"number"`
	Make           string `json:"make,omitempty" yaml:"make,omitempty"`
	Model          string `json:"model,omitempty" yaml:"model,omitempty"`
	Year           int    `json:"year,omitempty" yaml:"year,omitempty"`
	VIN            string `json:"vin,omitempty" yaml:"vin,omitempty"`
	Capacity       int    `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Status         string `json:"status,omitempty" yaml:"status,omitempty"`
	LastInspection string `json:"last_inspection,omitempty" yaml:"last_inspection,omitempty"`
}

var vehicleFields = []Field[Vehicle]{
	textField("number", "Number", true, func(v *Vehicle) *string { return &v.Number }),
	textField("make", "Make", false, func(v *Vehicle) *string { return &v.Make }),
	textField("model", "Model", false, func(v *Vehicle) *string { return &v.Model }),
	intField("year", "Year", func(v *Vehicle) *int { return &v.Year }),
	textField("vin", "VIN", false, func(v *Vehicle) *string { return &v.VIN }),
	intField("capacity", "Capacity", func(v *Vehicle) *int { return &v.Capacity }),
	textField("status", "Status", false, func(v *Vehicle) *string { return &v.Status }),
	dateField("last_inspection", "Last Inspection", false, func(v *Vehicle) *string { return &v.LastInspection }),
}

// Validate checks a vehicle before it is committed.
func (v Vehicle) Validate() error {
	if err := Check(v, vehicleFields, nil); err != nil {
		return err
	}
	if v.Year != 0 && (v.Year < 1950 || v.Year > 2100) {
		return manage.Validationf("Year must be between 1950 and 2100")
	}
	if v.Capacity < 0 {
		return manage.Validationf("Capacity cannot be negative")
	}
	if vin := strings.TrimSpace(v.VIN); vin != "" && len(vin) != 17 {
		return manage.Validationf("VIN must be 17 characters")
	}
	return oneOf("Status", v.Status, VehicleStatuses)
}

// Vehicles is the management wiring for the vehicle roster.
func Vehicles() Kind[Vehicle] {
	return Kind[Vehicle]{
		Name:   "vehicles",
		Fields: vehicleFields,
		Identity: store.Identity[Vehicle]{
			ID:     func(v Vehicle) string { return v.ID },
			WithID: func(v Vehicle, id string) Vehicle { v.ID = id; return v },
		},
		Validate: Vehicle.Validate,
		Hooks: manage.Hooks[Vehicle, string]{
			Title: "Vehicles",
			Noun:  "vehicle",
			Columns: []manage.Column{
				{Field: "number", Header: "Bus #", Width: 6},
				{Field: "make", Header: "Make", Width: 12},
				{Field: "model", Header: "Model", Width: 12},
				{Field: "year", Header: "Year", Width: 4, Numeric: true},
				{Field: "capacity", Header: "Seats", Width: 5, Numeric: true},
				{Field: "status", Header: "Status", Width: 11},
			},
			Key: func(v Vehicle) string { return v.ID },
			Project: func(v Vehicle) map[string]string {
				return map[string]string{
					"number":   v.Number,
					"make":     v.Make,
					"model":    v.Model,
					"year":     itoa(v.Year),
					"capacity": itoa(v.Capacity),
					"status":   v.Status,
				}
			},
			SearchFields: func(v Vehicle) []string {
				return []string{v.Number, v.Make, v.Model, v.VIN, v.Status}
			},
			Details: func(v Vehicle) []manage.DetailField {
				return details(v, vehicleFields)
			},
			Describe: func(v Vehicle) string {
				return joinNonEmpty(" ", "Bus "+v.Number, v.Make, v.Model)
			},
		},
	}
}
