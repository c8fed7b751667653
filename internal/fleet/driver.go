package fleet

import (
	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// DriverStatuses are the allowed driver status values.
var DriverStatuses = []string{"active", "substitute", "leave", "inactive"}

// Driver is a licensed driver on the roster.
type Driver struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	LicenseNumber string `json:"license_number,omitempty" yaml:"license_number,omitempty"`
	LicenseClass  string `json:"license_class,omitempty" yaml:"license_class,omitempty"`
	Phone         string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Status        string `json:"status,omitempty" yaml:"status,omitempty"`
	HireDate      string `json:"hire_date,omitempty" yaml:"hire_date,omitempty"`
}

var driverFields = []Field[Driver]{
	textField("name", "Name", true, func(d *Driver) *string { return &d.Name }),
	textField("license_number", "License #", false, func(d *Driver) *string { return &d.LicenseNumber }),
	textField("license_class", "Class", false, func(d *Driver) *string { return &d.LicenseClass }),
	textField("phone", "Phone", false, func(d *Driver) *string { return &d.Phone }),
	textField("status", "Status", false, func(d *Driver) *string { return &d.Status }),
	dateField("hire_date", "Hire Date", false, func(d *Driver) *string { return &d.HireDate }),
}

// Validate checks a driver before it is committed.
func (d Driver) Validate() error {
	if err := Check(d, driverFields, nil); err != nil {
		return err
	}
	if err := oneOf("Class", d.LicenseClass, []string{"A", "B", "C"}); err != nil {
		return err
	}
	return oneOf("Status", d.Status, DriverStatuses)
}

// Drivers is the management wiring for the driver roster.
func Drivers() Kind[Driver] {
	return Kind[Driver]{
		Name:   "drivers",
		Fields: driverFields,
		Identity: store.Identity[Driver]{
			ID:     func(d Driver) string { return d.ID },
			WithID: func(d Driver, id string) Driver { d.ID = id; return d },
		},
		Validate: Driver.Validate,
		Hooks: manage.Hooks[Driver, string]{
			Title: "Drivers",
			Noun:  "driver",
			Columns: []manage.Column{
				{Field: "name", Header: "Name", Width: 20},
				{Field: "license", Header: "License #", Width: 12},
				{Field: "class", Header: "Class", Width: 5},
				{Field: "phone", Header: "Phone", Width: 14},
				{Field: "status", Header: "Status", Width: 10},
			},
			Key: func(d Driver) string { return d.ID },
			Project: func(d Driver) map[string]string {
				return map[string]string{
					"name":    d.Name,
					"license": d.LicenseNumber,
					"class":   d.LicenseClass,
					"phone":   d.Phone,
					"status":  d.Status,
				}
			},
			SearchFields: func(d Driver) []string {
				return []string{d.Name, d.LicenseNumber, d.Phone, d.Status}
			},
			Details: func(d Driver) []manage.DetailField {
				return details(d, driverFields)
			},
			Describe: func(d Driver) string { return d.Name },
		},
	}
}
