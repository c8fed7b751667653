package fleet

import (
	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// MaintenanceTypes are the allowed kinds of service work.
var MaintenanceTypes = []string{"inspection", "oil change", "tires", "brakes", "repair", "other"}

// MaintenanceRecord is one service visit for a vehicle.
type MaintenanceRecord struct {
	ID          string  `json:"id" yaml:"id"`
	Date        string  `json:"date" yaml:"date"`
	Vehicle     string  `json:"vehicle" yaml:"vehicle"`
	Type        string  `json:"type" yaml:"type"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Mileage     int     `json:"mileage,omitempty" yaml:"mileage,omitempty"`
	Cost        float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
	Vendor      string  `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	NextDue     string  `json:"next_due,omitempty" yaml:"next_due,omitempty"`
}

var maintenanceFields = []Field[MaintenanceRecord]{
	dateField("date", "Date", true, func(m *MaintenanceRecord) *string { return &m.Date }),
	textField("vehicle", "Vehicle", true, func(m *MaintenanceRecord) *string { return &m.Vehicle }),
	textField("type", "Type", true, func(m *MaintenanceRecord) *string { return &m.Type }),
	textField("description", "Description", false, func(m *MaintenanceRecord) *string { return &m.Description }),
	intField("mileage", "Mileage", func(m *MaintenanceRecord) *int { return &m.Mileage }),
	decimalField("cost", "Cost", func(m *MaintenanceRecord) *float64 { return &m.Cost }),
	textField("vendor", "Vendor", false, func(m *MaintenanceRecord) *string { return &m.Vendor }),
	dateField("next_due", "Next Due", false, func(m *MaintenanceRecord) *string { return &m.NextDue }),
}

// Validate checks a maintenance record before it is committed.
func (m MaintenanceRecord) Validate() error {
	if err := Check(m, maintenanceFields, nil); err != nil {
		return err
	}
	if m.Mileage < 0 || m.Cost < 0 {
		return manage.Validationf("Mileage and Cost cannot be negative")
	}
	if err := notBefore("Date", m.Date, "Next Due", m.NextDue, DateLayout); err != nil {
		return err
	}
	return oneOf("Type", m.Type, MaintenanceTypes)
}

// Maintenance is the management wiring for the vehicle service log.
func Maintenance() Kind[MaintenanceRecord] {
	return Kind[MaintenanceRecord]{
		Name:   "maintenance",
		Fields: maintenanceFields,
		Identity: store.Identity[MaintenanceRecord]{
			ID:     func(m MaintenanceRecord) string { return m.ID },
			WithID: func(m MaintenanceRecord, id string) MaintenanceRecord { m.ID = id; return m },
		},
		Validate: MaintenanceRecord.Validate,
		Hooks: manage.Hooks[MaintenanceRecord, string]{
			Title: "Maintenance",
			Noun:  "maintenance record",
			Columns: []manage.Column{
				{Field: "date", Header: "Date", Width: 10},
				{Field: "vehicle", Header: "Bus #", Width: 6},
				{Field: "type", Header: "Type", Width: 11},
				{Field: "vendor", Header: "Vendor", Width: 16},
				{Field: "cost", Header: "Cost", Width: 9, Numeric: true},
				{Field: "next_due", Header: "Next Due", Width: 10},
			},
			Key: func(m MaintenanceRecord) string { return m.ID },
			Project: func(m MaintenanceRecord) map[string]string {
				return map[string]string{
					"date":     m.Date,
					"vehicle":  m.Vehicle,
					"type":     m.Type,
					"vendor":   m.Vendor,
					"cost":     money(m.Cost),
					"next_due": m.NextDue,
				}
			},
			SearchFields: func(m MaintenanceRecord) []string {
				return []string{m.Date, m.Vehicle, m.Type, m.Description, m.Vendor}
			},
			Details: func(m MaintenanceRecord) []manage.DetailField {
				return details(m, maintenanceFields)
			},
			Describe: func(m MaintenanceRecord) string {
				return joinNonEmpty(" ", "Bus "+m.Vehicle, m.Type, m.Date)
			},
		},
	}
}
