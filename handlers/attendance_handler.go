package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Employee-Attendance-Management/models"
	"Employee-Attendance-Management/report"
	"Employee-Attendance-Management/repository"
	"Employee-Attendance-Management/services"
)

type AttendanceHandler struct {
	service        *services.AttendanceService
	attendanceRepo repository.AttendanceRepository
}

func NewAttendanceHandler(service *services.AttendanceService, attendanceRepo repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{
		service:        service,
		attendanceRepo: attendanceRepo,
	}
}

func sessionClaims(c *fiber.Ctx) (*models.Claims, bool) {
	claims, ok := c.Locals("user").(*models.Claims)
	return claims, ok
}

// CheckIn godoc
// @Summary Check In
// @Description Creates today's attendance record for the authenticated employee
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.CheckInSuccessResponse "Checked in successfully"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 409 {object} models.ErrorResponse "Already checked in today"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	claims, ok := sessionClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	attendance, err := h.service.CheckIn(ctx, claims.UserID, services.Today(now), now)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already checked in today."})
		}
		log.Printf("Check-in error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "An unexpected error occurred during check-in."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Checked in successfully",
		"attendance": attendance,
	})
}

// CheckOut godoc
// @Summary Check Out
// @Description Closes today's attendance record and fixes the total hours
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CheckInSuccessResponse "Checked out successfully"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 409 {object} models.ErrorResponse "Not checked in or already checked out"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	claims, ok := sessionClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	attendance, err := h.service.CheckOut(ctx, claims.UserID, services.Today(now), now)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotCheckedIn):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have not checked in today."})
		case errors.Is(err, services.ErrAlreadyCheckedOut):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already checked out today."})
		}
		log.Printf("Check-out error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "An unexpected error occurred during check-out."})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Checked out successfully",
		"attendance": attendance,
	})
}

// GetDashboard godoc
// @Summary Employee Dashboard Data
// @Description Today's record plus weekly totals for the authenticated employee
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardData "Dashboard data"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /attendance/dashboard [get]
func (h *AttendanceHandler) GetDashboard(c *fiber.Ctx) error {
	claims, ok := sessionClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	data, err := h.service.DashboardData(ctx, claims.UserID, services.Today(now), now)
	if err != nil {
		log.Printf("Dashboard data error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard data."})
	}

	return c.Status(fiber.StatusOK).JSON(data)
}

// GetMyAttendanceHistory godoc
// @Summary My Attendance History
// @Description All attendance records of the authenticated employee, newest first
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Attendance "Attendance history"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /attendance/my-history [get]
func (h *AttendanceHandler) GetMyAttendanceHistory(c *fiber.Ctx) error {
	claims, ok := sessionClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	history, err := h.attendanceRepo.FindAttendanceByEmployeeID(ctx, claims.UserID)
	if err != nil {
		log.Printf("Attendance history error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance history."})
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

func filterFromQuery(c *fiber.Ctx) report.Filter {
	return report.Filter{
		EmployeeID: c.Query("employee_id", report.FilterAll),
		Department: c.Query("department", report.FilterAll),
		Status:     c.Query("status", report.FilterAll),
	}
}

// rowSet fetches the record set the caller is allowed to see: admins
// get every record joined with employee details, everyone else gets
// their own records only.
func (h *AttendanceHandler) rowSet(ctx context.Context, claims *models.Claims) ([]models.AttendanceWithUser, error) {
	if claims.IsAdmin() {
		return h.attendanceRepo.GetAllAttendancesWithUserDetails(ctx)
	}

	records, err := h.attendanceRepo.FindAttendanceByEmployeeID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.AttendanceWithUser, 0, len(records))
	for _, record := range records {
		rows = append(rows, models.AttendanceWithUser{
			ID:         record.ID,
			EmployeeID: record.EmployeeID,
			Date:       record.Date,
			CheckIn:    record.CheckIn,
			CheckOut:   record.CheckOut,
			TotalHours: record.TotalHours,
			Status:     record.Status,
			CreatedAt:  record.CreatedAt,
		})
	}
	return rows, nil
}

// GetAttendanceTable godoc
// @Summary Attendance Table
// @Description Filtered, paginated attendance rows (admins see everyone, employees see themselves)
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param employee_id query string false "Filter by employee ID or 'all'"
// @Param department query string false "Filter by department or 'all'"
// @Param status query string false "Filter by derived status (Working/Completed/Absent) or 'all'"
// @Param page query int false "Page number (1-based, default 1)"
// @Success 200 {object} report.Result "Attendance rows"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /attendance [get]
func (h *AttendanceHandler) GetAttendanceTable(c *fiber.Ctx) error {
	claims, ok := sessionClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	rows, err := h.rowSet(ctx, claims)
	if err != nil {
		log.Printf("Attendance table error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance records."})
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		page = 1
	}

	result := report.Apply(rows, filterFromQuery(c), claims.IsAdmin(), page)
	return c.Status(fiber.StatusOK).JSON(result)
}

// ExportAttendance godoc
// @Summary Export Attendance CSV
// @Description CSV export of the full filtered record set (admin exports include employee columns)
// @Tags Attendance
// @Produce text/csv
// @Security BearerAuth
// @Param employee_id query string false "Filter by employee ID or 'all'"
// @Param department query string false "Filter by department or 'all'"
// @Param status query string false "Filter by derived status or 'all'"
// @Success 200 {string} string "CSV text"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /attendance/export [get]
func (h *AttendanceHandler) ExportAttendance(c *fiber.Ctx) error {
	claims, ok := sessionClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	rows, err := h.rowSet(ctx, claims)
	if err != nil {
		log.Printf("Attendance export error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance records."})
	}

	csvText, err := report.Export(rows, filterFromQuery(c), claims.IsAdmin())
	if err != nil {
		log.Printf("Attendance export error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build CSV export."})
	}

	filename := fmt.Sprintf("attendance_export_%s.csv", services.Today(time.Now()))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.SendString(csvText)
}
