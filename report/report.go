// Package report filters, paginates and projects joined attendance
// rows for tables and CSV export. It is pure in-memory: callers hand
// it a record set already joined with employee details and it never
// touches storage.
package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"strings"
	"time"

	"Employee-Attendance-Management/models"
)

const RecordsPerPage = 10

// FilterAll disables a filter dimension.
const FilterAll = "all"

// Derived per-record status, computed from the timestamps rather than
// the stored tag: a record with a check-out is Completed, one with
// only a check-in is Working, anything else is Absent.
const (
	StatusCompleted = "Completed"
	StatusWorking   = "Working"
	StatusAbsent    = "Absent"
)

// Filter is a selection of equality dimensions. Empty or "all" values
// disable a dimension; active dimensions compose with logical AND.
type Filter struct {
	EmployeeID string
	Department string
	Status     string
}

type Result struct {
	Rows       []models.AttendanceWithUser `json:"rows"`
	Page       int                         `json:"page"`
	TotalPages int                         `json:"total_pages"`
	Total      int                         `json:"total"`
}

// Status derives the display status of a row.
func Status(row models.AttendanceWithUser) string {
	if row.CheckOut != nil {
		return StatusCompleted
	}
	if row.CheckIn != nil {
		return StatusWorking
	}
	return StatusAbsent
}

func (f Filter) active(value string) bool {
	return value != "" && value != FilterAll
}

// matches reports whether the row passes every active dimension. The
// employee and department dimensions only apply for admins; a
// non-admin caller's record set is already scoped to one employee.
func (f Filter) matches(row models.AttendanceWithUser, isAdmin bool) bool {
	if isAdmin && f.active(f.EmployeeID) && row.EmployeeID.Hex() != f.EmployeeID {
		return false
	}
	if isAdmin && f.active(f.Department) && row.UserDepartment != f.Department {
		return false
	}
	if f.active(f.Status) && Status(row) != f.Status {
		return false
	}
	return true
}

// ApplyFilter returns the rows passing the filter, preserving order.
// The input set is never mutated.
func ApplyFilter(rows []models.AttendanceWithUser, filter Filter, isAdmin bool) []models.AttendanceWithUser {
	filtered := make([]models.AttendanceWithUser, 0, len(rows))
	for _, row := range rows {
		if filter.matches(row, isAdmin) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// TotalPages is never zero: an empty set is one page of zero rows.
func TotalPages(count int) int {
	pages := (count + RecordsPerPage - 1) / RecordsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Apply filters the record set and returns the requested page. The
// page index is 1-based and clamped into [1, totalPages].
func Apply(rows []models.AttendanceWithUser, filter Filter, isAdmin bool, page int) Result {
	filtered := ApplyFilter(rows, filter, isAdmin)
	totalPages := TotalPages(len(filtered))

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * RecordsPerPage
	end := start + RecordsPerPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Rows:       filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
	}
}

// FormatTime renders a timestamp as localized short time, or N/A when
// the field is unset.
func FormatTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("3:04 PM")
}

// FormatDuration renders fractional hours as "Hh Mm". Zero hours means
// no recorded duration and renders as N/A.
func FormatDuration(hours float64) string {
	if hours == 0 {
		return "N/A"
	}
	h := int(math.Floor(hours))
	m := int(math.Round(math.Mod(hours*60, 60)))
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatDate renders a YYYY-MM-DD day key as a long human date. An
// unparseable key is passed through untouched.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// Export projects the full filtered set (not just one page) into CSV
// text with a header row. Employee and Department columns are included
// only for admin exports; field quoting follows standard CSV rules.
func Export(rows []models.AttendanceWithUser, filter Filter, isAdmin bool) (string, error) {
	filtered := ApplyFilter(rows, filter, isAdmin)

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"Date", "Check In", "Check Out", "Total Hours", "Status"}
	if isAdmin {
		header = append([]string{"Employee", "Department"}, header...)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, row := range filtered {
		record := []string{
			FormatDate(row.Date),
			FormatTime(row.CheckIn),
			FormatTime(row.CheckOut),
			FormatDuration(row.TotalHours),
			Status(row),
		}
		if isAdmin {
			department := row.UserDepartment
			if department == "" {
				department = "N/A"
			}
			record = append([]string{row.UserName, department}, record...)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
