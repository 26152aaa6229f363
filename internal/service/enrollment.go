package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"employee-enrollment/internal/models"
	"employee-enrollment/internal/salary"
	"employee-enrollment/internal/store"
)

// User-facing messages shown by the form and the dashboard.
const (
	MsgRequired   = "All fields are required"
	MsgDuplicate  = "This employee is already enrolled"
	MsgNoDatabase = "No database file found. Please create some entries first!"
	MsgSaved      = "Employee data saved successfully!"
)

// RecordStore is the persistence used by the façade.
type RecordStore interface {
	Append(rec models.EmployeeRecord) error
	ReadAll() (store.Table, error)
	ExportRaw() (store.Export, error)
}

// EnrollmentInput is what the enrollment form collects.
type EnrollmentInput struct {
	Name          string `json:"name"`
	Role          string `json:"role"`
	Category      string `json:"category"`
	Salary        string `json:"salary"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankName      string `json:"bank_name"`
}

// DashboardView is everything the dashboard page needs. When Message is
// set there are no rows to show.
type DashboardView struct {
	Header  []string
	Rows    [][]string
	Message string
	Failed  bool
}

// Service bridges the record store to the form and the dashboard.
type Service struct {
	store    RecordStore
	salaries *salary.Resolver
	now      func() time.Time
}

func New(rs RecordStore, salaries *salary.Resolver) *Service {
	return &Service{
		store:    rs,
		salaries: salaries,
		now:      time.Now,
	}
}

// SetClock replaces the clock used to stamp new enrollments.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) Salaries() *salary.Resolver { return s.salaries }

// ResolveSalary returns the salary text the form shows for category, and
// whether it is fixed by the category table.
func (s *Service) ResolveSalary(category string) (string, bool) {
	amount, ok := s.salaries.Resolve(category)
	if !ok {
		return "", false
	}
	return strconv.FormatInt(amount, 10), true
}

// Submit builds a record from in and appends it. A predefined category
// overrides any submitted salary.
func (s *Service) Submit(in EnrollmentInput) (models.EmployeeRecord, error) {
	rec := models.EmployeeRecord{
		Name:          strings.TrimSpace(in.Name),
		Role:          strings.TrimSpace(in.Role),
		EnrolledAt:    s.now().Truncate(time.Second),
		Category:      strings.TrimSpace(in.Category),
		Salary:        strings.TrimSpace(in.Salary),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		AccountName:   strings.TrimSpace(in.AccountName),
		BankName:      strings.TrimSpace(in.BankName),
	}
	if fixed, ok := s.ResolveSalary(rec.Category); ok {
		rec.Salary = fixed
	}

	if err := s.store.Append(rec); err != nil {
		return models.EmployeeRecord{}, err
	}
	return rec, nil
}

// Records returns every enrollment in file order.
func (s *Service) Records() ([]models.EmployeeRecord, error) {
	t, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	return t.Records, nil
}

// RenderDashboard never fails: a missing workbook or a read error become
// the view's message.
func (s *Service) RenderDashboard() DashboardView {
	t, err := s.store.ReadAll()
	if errors.Is(err, store.ErrNotFound) {
		return DashboardView{Message: MsgNoDatabase}
	}
	if err != nil {
		return DashboardView{
			Message: fmt.Sprintf("Error reading database: %v", err),
			Failed:  true,
		}
	}

	// rows are rebuilt from records, so the header must be the record layout
	view := DashboardView{
		Header: append([]string(nil), models.Header...),
		Rows:   make([][]string, 0, len(t.Records)),
	}
	for _, rec := range t.Records {
		view.Rows = append(view.Rows, rec.Row())
	}
	return view
}

// Download returns the raw workbook.
func (s *Service) Download() (store.Export, error) {
	return s.store.ExportRaw()
}

// Message converts a store error into the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return MsgSaved
	case errors.Is(err, store.ErrValidation):
		return MsgRequired
	case errors.Is(err, store.ErrDuplicate):
		return MsgDuplicate
	case errors.Is(err, store.ErrNotFound):
		return MsgNoDatabase
	default:
		return fmt.Sprintf("Failed to save data: %v", err)
	}
}
