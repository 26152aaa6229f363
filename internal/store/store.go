// Package store keeps employee enrollments in a single XLSX workbook.
//
// The workbook is append-only: rows are never updated or deleted, so file
// order is enrollment order. Every write rewrites the whole file through a
// temp file and a rename, which leaves the previous workbook intact when a
// save fails.
//
// Operations are serialised inside one process only. Two processes writing
// the same workbook (for example the CLI and the web server) may lose an
// append; the deployment assumes a single writer.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"employee-enrollment/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	DefaultSheet = "Employee Data"
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Table is the content of the workbook: the header row and the data rows.
type Table struct {
	Header  []string
	Records []models.EmployeeRecord
}

// Export is the workbook as stored on disk.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Store is the enrollment workbook at a fixed path.
type Store struct {
	path  string
	sheet string
	now   func() time.Time

	mu sync.Mutex
}

type Option func(*Store)

// WithSheet sets the sheet name used when creating the workbook.
func WithSheet(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.sheet = name
		}
	}
}

// WithClock sets the clock used to stamp records without EnrolledAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(path string, opts ...Option) *Store {
	s := &Store{
		path:  path,
		sheet: DefaultSheet,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

// EnsureInitialized creates the workbook with only the header row. An
// existing workbook is left untouched.
func (s *Store) EnsureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureInitialized()
}

// Exists reports whether a data row has exactly this name and role.
// A missing workbook has no rows.
func (s *Store) Exists(name, role string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows()
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return containsKey(rows, name, role), nil
}

// Append validates rec, rejects a duplicate (name, role) and writes rec as
// the last row. A zero EnrolledAt is set from the store clock.
func (s *Store) Append(rec models.EmployeeRecord) error {
	if err := Validate(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureInitialized(); err != nil {
		return err
	}

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := s.sheetName(f)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return &IOError{Op: "read", Path: s.path, Err: err}
	}
	if containsKey(rows, rec.Name, rec.Role) {
		return fmt.Errorf("%w: %s (%s)", ErrDuplicate, rec.Name, rec.Role)
	}

	if len(rows) == 0 {
		if err := writeHeader(f, sheet); err != nil {
			return &IOError{Op: "write", Path: s.path, Err: err}
		}
		rows = [][]string{models.Header}
	}

	if rec.EnrolledAt.IsZero() {
		rec.EnrolledAt = s.now()
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	row := rec.Row()
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	return s.save(f)
}

// ReadAll returns the header and every data row in file order.
func (s *Store) ReadAll() (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows()
	if err != nil {
		return Table{}, err
	}

	t := Table{Header: append([]string(nil), models.Header...)}
	if len(rows) == 0 {
		return t, nil
	}
	t.Header = rows[0]
	for i, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		rec, err := parseRow(cells)
		if err != nil {
			return Table{}, &IOError{Op: fmt.Sprintf("parse row %d", i+2), Path: s.path, Err: err}
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// ExportRaw returns the workbook bytes unchanged.
func (s *Store) ExportRaw() (Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Export{}, ErrNotFound
	}
	if err != nil {
		return Export{}, &IOError{Op: "read", Path: s.path, Err: err}
	}
	return Export{
		FileName:    filepath.Base(s.path),
		ContentType: ContentType,
		Data:        data,
	}, nil
}

func (s *Store) ensureInitialized() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "stat", Path: s.path, Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "create dir", Path: dir, Err: err}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return &IOError{Op: "create", Path: s.path, Err: err}
	}
	if err := writeHeader(f, s.sheet); err != nil {
		return &IOError{Op: "create", Path: s.path, Err: err}
	}

	// 设置列宽
	f.SetColWidth(s.sheet, "A", "B", 20)
	f.SetColWidth(s.sheet, "C", "C", 28)
	f.SetColWidth(s.sheet, "D", "E", 14)
	f.SetColWidth(s.sheet, "F", "H", 20)

	return s.save(f)
}

func (s *Store) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &IOError{Op: "open", Path: s.path, Err: err}
	}
	return f, nil
}

func (s *Store) readRows() ([][]string, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// raw values: a timestamp retyped as a date in a spreadsheet app
	// comes back as a serial number instead of a locale-formatted string
	rows, err := f.GetRows(s.sheetName(f), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	return rows, nil
}

// sheetName prefers the configured sheet and falls back to the active one.
func (s *Store) sheetName(f *excelize.File) string {
	if idx, err := f.GetSheetIndex(s.sheet); err == nil && idx >= 0 {
		return s.sheet
	}
	return f.GetSheetName(f.GetActiveSheetIndex())
}

// save writes f next to the workbook and renames it into place.
func (s *Store) save(f *excelize.File) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return &IOError{Op: "save", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "save", Path: s.path, Err: err}
	}
	if _, err := f.WriteTo(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string) error {
	header := append([]string(nil), models.Header...)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// containsKey scans the data rows (everything after the header).
func containsKey(rows [][]string, name, role string) bool {
	if len(rows) < 2 {
		return false
	}
	for _, cells := range rows[1:] {
		if cell(cells, 0) == name && cell(cells, 1) == role {
			return true
		}
	}
	return false
}

func parseRow(cells []string) (models.EmployeeRecord, error) {
	rec := models.EmployeeRecord{
		Name:          cell(cells, 0),
		Role:          cell(cells, 1),
		Category:      cell(cells, 3),
		Salary:        cell(cells, 4),
		AccountNumber: cell(cells, 5),
		AccountName:   cell(cells, 6),
		BankName:      cell(cells, 7),
	}
	if ts := cell(cells, 2); ts != "" {
		t, err := parseEnrolledAt(ts)
		if err != nil {
			return models.EmployeeRecord{}, fmt.Errorf("invalid employment time %q: %w", ts, err)
		}
		rec.EnrolledAt = t
	}
	return rec, nil
}

// parseEnrolledAt accepts the stored text layout or an Excel date serial.
func parseEnrolledAt(s string) (time.Time, error) {
	t, err := time.ParseInLocation(models.TimeLayout, s, time.Local)
	if err == nil {
		return t, nil
	}
	serial, perr := strconv.ParseFloat(s, 64)
	if perr != nil || serial <= 0 {
		return time.Time{}, err
	}
	d, derr := excelize.ExcelDateToTime(serial, false)
	if derr != nil {
		return time.Time{}, derr
	}
	d = d.Round(time.Second)
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), 0, time.Local), nil
}

// cell returns cells[i], or "" where GetRows trimmed trailing empty cells.
func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
