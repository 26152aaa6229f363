package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"employee-enrollment/internal/models"

	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 3, 5, 9, 30, 15, 0, time.Local)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employees.xlsx")
	return New(path, WithClock(func() time.Time { return fixedNow }))
}

func sampleRecord(name, role string) models.EmployeeRecord {
	return models.EmployeeRecord{
		Name:          name,
		Role:          role,
		Category:      "Janitor",
		Salary:        "50000",
		AccountNumber: "0123456789",
		AccountName:   name,
		BankName:      "First Bank",
	}
}

func rowCount(t *testing.T, s *Store) int {
	t.Helper()
	table, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return len(table.Records)
}

func TestEnsureInitialized_CreatesHeader(t *testing.T) {
	s := newTestStore(t)

	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("EnsureInitialized() error = %v", err)
	}

	f, err := excelize.OpenFile(s.Path())
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(DefaultSheet)
	if err != nil {
		t.Fatalf("GetRows(%q) error = %v", DefaultSheet, err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1 (header only)", len(rows))
	}
	if !reflect.DeepEqual(rows[0], models.Header) {
		t.Errorf("header = %v, want %v", rows[0], models.Header)
	}
}

func TestEnsureInitialized_Idempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(sampleRecord("Ada", "Cleaner")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.EnsureInitialized(); err != nil {
			t.Fatalf("EnsureInitialized() error = %v", err)
		}
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("EnsureInitialized() rewrote an existing workbook")
	}
	if got := rowCount(t, s); got != 1 {
		t.Errorf("row count = %d, want 1", got)
	}
}

func TestEnsureInitialized_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "employees.xlsx")
	s := New(path)

	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("EnsureInitialized() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("workbook not created: %v", err)
	}
}

func TestExists(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.Exists("Ada", "Cleaner")
	if err != nil || ok {
		t.Fatalf("Exists() on missing workbook = (%v, %v), want (false, nil)", ok, err)
	}

	if err := s.Append(sampleRecord("Ada", "Cleaner")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	testCases := []struct {
		name, role string
		want       bool
	}{
		{"Ada", "Cleaner", true},
		{"Ada", "Security", false},
		{"Grace", "Cleaner", false},
		{"ada", "Cleaner", false},
		{"Name", "Role", false}, // header row is not data
	}
	for _, tc := range testCases {
		got, err := s.Exists(tc.name, tc.role)
		if err != nil {
			t.Fatalf("Exists(%q, %q) error = %v", tc.name, tc.role, err)
		}
		if got != tc.want {
			t.Errorf("Exists(%q, %q) = %v, want %v", tc.name, tc.role, got, tc.want)
		}
	}
}

func TestAppend_Duplicate(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(sampleRecord("Ada", "Cleaner")); err != nil {
		t.Fatalf("first Append() error = %v", err)
	}

	dup := sampleRecord("Ada", "Cleaner")
	dup.BankName = "Other Bank"
	err := s.Append(dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second Append() error = %v, want ErrDuplicate", err)
	}
	if got := rowCount(t, s); got != 1 {
		t.Errorf("row count = %d, want 1", got)
	}

	// same person, different role is a separate enrollment
	if err := s.Append(sampleRecord("Ada", "Security")); err != nil {
		t.Fatalf("Append() other role error = %v", err)
	}
	if got := rowCount(t, s); got != 2 {
		t.Errorf("row count = %d, want 2", got)
	}
}

func TestAppend_Validation(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(sampleRecord("Ada", "Cleaner")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	blank := map[string]func(*models.EmployeeRecord){
		"name":           func(r *models.EmployeeRecord) { r.Name = "" },
		"role":           func(r *models.EmployeeRecord) { r.Role = " " },
		"category":       func(r *models.EmployeeRecord) { r.Category = "" },
		"salary":         func(r *models.EmployeeRecord) { r.Salary = "" },
		"account_number": func(r *models.EmployeeRecord) { r.AccountNumber = "" },
		"account_name":   func(r *models.EmployeeRecord) { r.AccountName = "" },
		"bank_name":      func(r *models.EmployeeRecord) { r.BankName = "\t" },
	}
	for field, blankOut := range blank {
		rec := sampleRecord("Grace", "Security")
		blankOut(&rec)

		err := s.Append(rec)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Append() with empty %s error = %v, want ErrValidation", field, err)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || !reflect.DeepEqual(verr.Missing, []string{field}) {
			t.Errorf("Append() with empty %s missing = %+v, want [%s]", field, verr, field)
		}
	}

	if got := rowCount(t, s); got != 1 {
		t.Errorf("row count = %d, want 1", got)
	}
}

func TestAppend_ValidationDoesNotCreateWorkbook(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(models.EmployeeRecord{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Append() error = %v, want ErrValidation", err)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("workbook exists after rejected append: %v", err)
	}
}

func TestAppend_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	first := sampleRecord("Ada", "Cleaner")
	second := sampleRecord("Grace", "Receptionist")
	second.Category = "Receptionist"
	second.Salary = "70000"
	second.EnrolledAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

	for _, rec := range []models.EmployeeRecord{first, second} {
		if err := s.Append(rec); err != nil {
			t.Fatalf("Append(%s) error = %v", rec.Name, err)
		}
	}

	table, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !reflect.DeepEqual(table.Header, models.Header) {
		t.Errorf("Header = %v, want %v", table.Header, models.Header)
	}
	if len(table.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(table.Records))
	}

	first.EnrolledAt = fixedNow
	for i, want := range []models.EmployeeRecord{first, second} {
		got := table.Records[i]
		if !got.EnrolledAt.Equal(want.EnrolledAt) {
			t.Errorf("Records[%d].EnrolledAt = %v, want %v", i, got.EnrolledAt, want.EnrolledAt)
		}
		got.EnrolledAt, want.EnrolledAt = time.Time{}, time.Time{}
		if got != want {
			t.Errorf("Records[%d] = %+v, want %+v", i, got, want)
		}
	}
}

func TestAppend_KeepsExistingOnUnwritableDir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	s := newTestStore(t)
	if err := s.Append(sampleRecord("Ada", "Cleaner")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	before, _ := os.ReadFile(s.Path())

	dir := filepath.Dir(s.Path())
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(dir, 0o755)

	err := s.Append(sampleRecord("Grace", "Security"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Append() error = %v, want *IOError", err)
	}

	after, _ := os.ReadFile(s.Path())
	if !bytes.Equal(before, after) {
		t.Error("failed Append() modified the workbook")
	}
}

func TestReadAll_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.ReadAll(); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadAll() error = %v, want ErrNotFound", err)
	}
}

func TestReadAll_Corrupt(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := s.ReadAll()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("ReadAll() error = %v, want *IOError", err)
	}
}

func TestReadAll_BadTimestamp(t *testing.T) {
	s := newTestStore(t)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("EnsureInitialized() error = %v", err)
	}

	f, err := excelize.OpenFile(s.Path())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	row := []string{"Ada", "Cleaner", "yesterday", "Janitor", "50000", "1", "Ada", "Bank"}
	if err := f.SetSheetRow(DefaultSheet, "A2", &row); err != nil {
		t.Fatalf("SetSheetRow() error = %v", err)
	}
	if err := f.SaveAs(s.Path()); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	f.Close()

	_, err = s.ReadAll()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("ReadAll() error = %v, want *IOError", err)
	}
}

func TestReadAll_DateSerialTimestamp(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(sampleRecord("Ada", "Cleaner")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// the timestamp cell retyped as a date: 2024-06-01 12:00:00
	f, err := excelize.OpenFile(s.Path())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.SetCellValue(DefaultSheet, "C2", 45444.5); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: 22})
	if err != nil {
		t.Fatalf("NewStyle() error = %v", err)
	}
	if err := f.SetCellStyle(DefaultSheet, "C2", "C2", style); err != nil {
		t.Fatalf("SetCellStyle() error = %v", err)
	}
	if err := f.SaveAs(s.Path()); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	f.Close()

	table, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	if got := table.Records[0].EnrolledAt; !got.Equal(want) {
		t.Errorf("EnrolledAt = %v, want %v", got, want)
	}
}

func TestExportRaw(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.ExportRaw(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ExportRaw() error = %v, want ErrNotFound", err)
	}

	if err := s.Append(sampleRecord("Ada", "Cleaner")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	exp, err := s.ExportRaw()
	if err != nil {
		t.Fatalf("ExportRaw() error = %v", err)
	}
	if exp.FileName != "employees.xlsx" {
		t.Errorf("FileName = %q, want employees.xlsx", exp.FileName)
	}
	if exp.ContentType != ContentType {
		t.Errorf("ContentType = %q, want %q", exp.ContentType, ContentType)
	}
	onDisk, _ := os.ReadFile(s.Path())
	if !bytes.Equal(exp.Data, onDisk) {
		t.Error("ExportRaw() data differs from the file on disk")
	}

	f, err := excelize.OpenReader(bytes.NewReader(exp.Data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(DefaultSheet)
	if len(rows) != 2 {
		t.Errorf("exported rows = %d, want 2", len(rows))
	}
}

func TestWithSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.xlsx")
	s := New(path, WithSheet("Staff"))

	if err := s.Append(sampleRecord("Ada", "Cleaner")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetName(0); got != "Staff" {
		t.Errorf("sheet name = %q, want Staff", got)
	}
}
