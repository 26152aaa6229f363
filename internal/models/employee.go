package models

import "time"

// TimeLayout is how EnrolledAt is written to the workbook.
const TimeLayout = "2006-01-02 15:04:05"

// Header is the fixed first row of the enrollment sheet.
var Header = []string{
	"Name",
	"Role",
	"Date and Time of Employment",
	"Category",
	"Salary",
	"Account Number",
	"Account Name",
	"Bank Name",
}

// EmployeeRecord is one enrollment row. (Name, Role) identifies an enrollment.
type EmployeeRecord struct {
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EnrolledAt    time.Time `json:"enrolled_at"`
	Category      string    `json:"category"`
	Salary        string    `json:"salary"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	BankName      string    `json:"bank_name"`
}

// Row returns the record's cells in Header order.
func (r EmployeeRecord) Row() []string {
	return []string{
		r.Name,
		r.Role,
		r.EnrolledAt.Format(TimeLayout),
		r.Category,
		r.Salary,
		r.AccountNumber,
		r.AccountName,
		r.BankName,
	}
}
