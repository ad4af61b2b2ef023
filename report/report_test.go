package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Employee-Attendance-Management/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func clock(hour, minute int) time.Time {
	return time.Date(2024, time.March, 11, hour, minute, 0, 0, time.UTC)
}

func completedRow(name, department string, hours float64) models.AttendanceWithUser {
	return models.AttendanceWithUser{
		ID:             primitive.NewObjectID(),
		EmployeeID:     primitive.NewObjectID(),
		Date:           "2024-03-11",
		CheckIn:        timePtr(clock(9, 0)),
		CheckOut:       timePtr(clock(17, 30)),
		TotalHours:     hours,
		UserName:       name,
		UserDepartment: department,
	}
}

func workingRow(name, department string) models.AttendanceWithUser {
	row := completedRow(name, department, 0)
	row.CheckOut = nil
	return row
}

func absentRow(name, department string) models.AttendanceWithUser {
	row := completedRow(name, department, 0)
	row.CheckIn = nil
	row.CheckOut = nil
	return row
}

func TestStatusDerivation(t *testing.T) {
	if got := Status(completedRow("Alice", "Sales", 8.5)); got != StatusCompleted {
		t.Errorf("completed row status = %q, want %q", got, StatusCompleted)
	}
	if got := Status(workingRow("Alice", "Sales")); got != StatusWorking {
		t.Errorf("working row status = %q, want %q", got, StatusWorking)
	}
	if got := Status(absentRow("Alice", "Sales")); got != StatusAbsent {
		t.Errorf("absent row status = %q, want %q", got, StatusAbsent)
	}
}

func TestFilterByStatus(t *testing.T) {
	rows := []models.AttendanceWithUser{
		completedRow("Alice", "Sales", 8.5),
		workingRow("Bob", "Marketing"),
		absentRow("Carol", "Sales"),
	}

	filtered := ApplyFilter(rows, Filter{Status: StatusWorking}, true)
	if len(filtered) != 1 {
		t.Fatalf("filtered = %d rows, want 1", len(filtered))
	}
	if filtered[0].UserName != "Bob" {
		t.Errorf("filtered row = %q, want Bob", filtered[0].UserName)
	}
}

func TestFilterDimensionsComposeWithAnd(t *testing.T) {
	target := completedRow("Alice", "Sales", 8.0)
	rows := []models.AttendanceWithUser{
		target,
		workingRow("Alice", "Sales"),        // wrong status
		completedRow("Bob", "Sales", 7.0),   // wrong employee
		completedRow("Alice", "Sales", 6.0), // wrong employee id (new per row)
	}
	// Set Alice's second record to the same employee id so only status
	// separates them.
	rows[1].EmployeeID = target.EmployeeID

	filter := Filter{
		EmployeeID: target.EmployeeID.Hex(),
		Department: "Sales",
		Status:     StatusCompleted,
	}
	filtered := ApplyFilter(rows, filter, true)
	if len(filtered) != 1 {
		t.Fatalf("filtered = %d rows, want 1", len(filtered))
	}
	if filtered[0].ID != target.ID {
		t.Error("AND composition selected the wrong row")
	}
}

func TestFilterAllDisablesDimension(t *testing.T) {
	rows := []models.AttendanceWithUser{
		completedRow("Alice", "Sales", 8.0),
		workingRow("Bob", "Marketing"),
	}
	filtered := ApplyFilter(rows, Filter{EmployeeID: FilterAll, Department: FilterAll, Status: FilterAll}, true)
	if len(filtered) != len(rows) {
		t.Errorf("filtered = %d rows, want %d (all dimensions disabled)", len(filtered), len(rows))
	}
}

func TestEmployeeScopedFiltersIgnoreAdminDimensions(t *testing.T) {
	rows := []models.AttendanceWithUser{
		completedRow("Alice", "Sales", 8.0),
	}
	filter := Filter{EmployeeID: primitive.NewObjectID().Hex(), Department: "Marketing"}

	filtered := ApplyFilter(rows, filter, false)
	if len(filtered) != 1 {
		t.Errorf("non-admin filtered = %d rows, want 1 (employee/department dimensions admin-only)", len(filtered))
	}
}

func TestApplyPagination(t *testing.T) {
	rows := make([]models.AttendanceWithUser, 25)
	for i := range rows {
		rows[i] = completedRow(fmt.Sprintf("Employee %02d", i), "Sales", 8)
	}

	result := Apply(rows, Filter{}, true, 3)
	if result.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", result.TotalPages)
	}
	if result.Total != 25 {
		t.Errorf("total = %d, want 25", result.Total)
	}
	if len(result.Rows) != 5 {
		t.Errorf("page 3 = %d rows, want 5", len(result.Rows))
	}
	if result.Rows[0].UserName != "Employee 20" {
		t.Errorf("page 3 first row = %q, want Employee 20", result.Rows[0].UserName)
	}
}

func TestApplyClampsPage(t *testing.T) {
	rows := []models.AttendanceWithUser{completedRow("Alice", "Sales", 8)}

	if result := Apply(rows, Filter{}, true, 0); result.Page != 1 {
		t.Errorf("page 0 clamped to %d, want 1", result.Page)
	}
	if result := Apply(rows, Filter{}, true, -2); result.Page != 1 {
		t.Errorf("page -2 clamped to %d, want 1", result.Page)
	}
	result := Apply(rows, Filter{}, true, 99)
	if result.Page != 1 {
		t.Errorf("page 99 clamped to %d, want 1", result.Page)
	}
	if len(result.Rows) != 1 {
		t.Errorf("clamped page = %d rows, want 1", len(result.Rows))
	}
}

func TestApplyEmptySetIsOnePage(t *testing.T) {
	result := Apply(nil, Filter{}, true, 1)
	if result.TotalPages != 1 {
		t.Errorf("total pages = %d, want 1", result.TotalPages)
	}
	if result.Total != 0 || len(result.Rows) != 0 {
		t.Errorf("empty set result = %+v, want zero rows", result)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{8.5, "8h 30m"},
		{0.25, "0h 15m"},
		{7.0, "7h 0m"},
		{0, "N/A"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.hours); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(nil); got != "N/A" {
		t.Errorf("FormatTime(nil) = %q, want N/A", got)
	}
	morning := clock(9, 5)
	if got := FormatTime(&morning); got != "9:05 AM" {
		t.Errorf("FormatTime = %q, want 9:05 AM", got)
	}
	evening := clock(17, 30)
	if got := FormatTime(&evening); got != "5:30 PM" {
		t.Errorf("FormatTime = %q, want 5:30 PM", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-03-11"); got != "March 11, 2024" {
		t.Errorf("FormatDate = %q, want March 11, 2024", got)
	}
	if got := FormatDate("not-a-date"); got != "not-a-date" {
		t.Errorf("FormatDate passthrough = %q, want input unchanged", got)
	}
}

func TestExportAdminColumns(t *testing.T) {
	rows := []models.AttendanceWithUser{completedRow("Alice", "Sales", 8.5)}

	out, err := Export(rows, Filter{}, true)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("export = %d lines, want 2", len(lines))
	}
	if lines[0] != "Employee,Department,Date,Check In,Check Out,Total Hours,Status" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Alice,Sales,\"March 11, 2024\",9:00 AM,5:30 PM,8h 30m,Completed" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestExportEmployeeColumns(t *testing.T) {
	rows := []models.AttendanceWithUser{workingRow("Alice", "Sales")}

	out, err := Export(rows, Filter{}, false)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Date,Check In,Check Out,Total Hours,Status" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "\"March 11, 2024\",9:00 AM,N/A,N/A,Working" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestExportMissingDepartment(t *testing.T) {
	rows := []models.AttendanceWithUser{completedRow("Alice", "", 8)}

	out, err := Export(rows, Filter{}, true)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, "Alice,N/A,") {
		t.Errorf("empty department not rendered as N/A:\n%s", out)
	}
}

func TestExportAppliesFilter(t *testing.T) {
	rows := []models.AttendanceWithUser{
		completedRow("Alice", "Sales", 8),
		workingRow("Bob", "Marketing"),
	}

	out, err := Export(rows, Filter{Status: StatusCompleted}, true)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.Contains(out, "Bob") {
		t.Errorf("filtered-out row leaked into export:\n%s", out)
	}
	if !strings.Contains(out, "Alice") {
		t.Errorf("matching row missing from export:\n%s", out)
	}
}
