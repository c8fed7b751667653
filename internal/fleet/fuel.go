package fleet

import (
	"fmt"

	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// FuelEntry is one fill-up of a vehicle.
type FuelEntry struct {
	ID       string  `json:"id" yaml:"id"`
	Date     string  `json:"date" yaml:"date"`
	Vehicle  string  `json:"vehicle" yaml:"vehicle"`
	Driver   string  `json:"driver,omitempty" yaml:"driver,omitempty"`
	Gallons  float64 `json:"gallons" yaml:"gallons"`
	Cost     float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
	Odometer int     `json:"odometer,omitempty" yaml:"odometer,omitempty"`
	Location string  `json:"location,omitempty" yaml:"location,omitempty"`
}

// PricePerGallon returns cost divided by gallons, or 0 when either is missing.
func (f FuelEntry) PricePerGallon() float64 {
	if f.Gallons <= 0 || f.Cost <= 0 {
		return 0
	}
	return f.Cost / f.Gallons
}

var fuelFields = []Field[FuelEntry]{
	dateField("date", "Date", true, func(f *FuelEntry) *string { return &f.Date }),
	textField("vehicle", "Vehicle", true, func(f *FuelEntry) *string { return &f.Vehicle }),
	textField("driver", "Driver", false, func(f *FuelEntry) *string { return &f.Driver }),
	decimalField("gallons", "Gallons", func(f *FuelEntry) *float64 { return &f.Gallons }),
	decimalField("cost", "Cost", func(f *FuelEntry) *float64 { return &f.Cost }),
	intField("odometer", "Odometer", func(f *FuelEntry) *int { return &f.Odometer }),
	textField("location", "Location", false, func(f *FuelEntry) *string { return &f.Location }),
}

// Validate checks a fuel entry before it is committed.
func (f FuelEntry) Validate() error {
	if err := Check(f, fuelFields, nil); err != nil {
		return err
	}
	if f.Gallons <= 0 {
		return manage.Validationf("Gallons must be greater than zero")
	}
	if f.Cost < 0 {
		return manage.Validationf("Cost cannot be negative")
	}
	if f.Odometer < 0 {
		return manage.Validationf("Odometer cannot be negative")
	}
	return nil
}

// Fuel is the management wiring for the fuel log.
func Fuel() Kind[FuelEntry] {
	return Kind[FuelEntry]{
		Name:   "fuel",
		Fields: fuelFields,
		Identity: store.Identity[FuelEntry]{
			ID:     func(f FuelEntry) string { return f.ID },
			WithID: func(f FuelEntry, id string) FuelEntry { f.ID = id; return f },
		},
		Validate: FuelEntry.Validate,
		Hooks: manage.Hooks[FuelEntry, string]{
			Title: "Fuel",
			Noun:  "fuel entry",
			Columns: []manage.Column{
				{Field: "date", Header: "Date", Width: 10},
				{Field: "vehicle", Header: "Bus #", Width: 6},
				{Field: "driver", Header: "Driver", Width: 16},
				{Field: "gallons", Header: "Gallons", Width: 7, Numeric: true},
				{Field: "cost", Header: "Cost", Width: 8, Numeric: true},
				{Field: "odometer", Header: "Odometer", Width: 8, Numeric: true},
			},
			Key: func(f FuelEntry) string { return f.ID },
			Project: func(f FuelEntry) map[string]string {
				return map[string]string{
					"date":     f.Date,
					"vehicle":  f.Vehicle,
					"driver":   f.Driver,
					"gallons":  fmt.Sprintf("%.1f", f.Gallons),
					"cost":     money(f.Cost),
					"odometer": itoa(f.Odometer),
				}
			},
			SearchFields: func(f FuelEntry) []string {
				return []string{f.Date, f.Vehicle, f.Driver, f.Location}
			},
			Details: func(f FuelEntry) []manage.DetailField {
				fields := details(f, fuelFields)
				return append(fields, manage.DetailField{Label: "Per Gallon", Value: money(f.PricePerGallon())})
			},
			Describe: func(f FuelEntry) string {
				return joinNonEmpty(" ", "Bus "+f.Vehicle, f.Date)
			},
		},
	}
}
