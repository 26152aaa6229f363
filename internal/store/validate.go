package store

import (
	"employee-enrollment/internal/models"
	"employee-enrollment/internal/util"
)

// Validate checks that every user-supplied field of rec is present.
// EnrolledAt is assigned by the server and is not checked.
func Validate(rec models.EmployeeRecord) error {
	missing := util.MissingFields(
		util.Field{Name: "name", Value: rec.Name},
		util.Field{Name: "role", Value: rec.Role},
		util.Field{Name: "category", Value: rec.Category},
		util.Field{Name: "salary", Value: rec.Salary},
		util.Field{Name: "account_number", Value: rec.AccountNumber},
		util.Field{Name: "account_name", Value: rec.AccountName},
		util.Field{Name: "bank_name", Value: rec.BankName},
	)
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
