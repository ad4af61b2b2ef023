package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Employee-Attendance-Management/models"
	"Employee-Attendance-Management/repository"
)

// Business-rule violations of the check-in/check-out lifecycle. They
// are surfaced to the caller as user-facing messages, never retried.
var (
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
)

const DateLayout = "2006-01-02"

// RecentActivityLimit caps the fleet dashboard's activity feed.
const RecentActivityLimit = 5

// AttendanceService owns the attendance record lifecycle (the write
// path) and the daily/weekly/fleet aggregations (the read path). The
// day key and clock are passed in by the handler boundary so the
// transition rules are a pure function of (employeeID, today, now).
type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, userRepo repository.UserRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

// Today formats now as the server-local day key.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// WeekWindow returns the Monday and Sunday day keys of the ISO week
// containing now (week starts Monday, both ends inclusive).
func WeekWindow(now time.Time) (string, string) {
	offset := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateLayout), sunday.Format(DateLayout)
}

// CheckIn creates the day's record for the employee. A day can only be
// started once: an existing record fails the call regardless of its
// check-out state. The point lookup is the cheap path; the unique
// (employee_id, date) index settles races between concurrent calls, so
// a duplicate insert maps to the same ErrAlreadyCheckedIn.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID primitive.ObjectID, today string, now time.Time) (*models.Attendance, error) {
	existing, err := s.attendanceRepo.FindAttendanceByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, fmt.Errorf("check-in lookup: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	attendance := &models.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		TotalHours: 0,
		Status:     models.AttendanceStatusPresent,
	}
	if err := s.attendanceRepo.CreateAttendance(ctx, attendance); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("check-in insert: %w", err)
	}

	return attendance, nil
}

// CheckOut closes the day's record and fixes the derived duration.
// TotalHours keeps its fractional part and never changes again.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID primitive.ObjectID, today string, now time.Time) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.FindAttendanceByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, fmt.Errorf("check-out lookup: %w", err)
	}
	if attendance == nil {
		return nil, ErrNotCheckedIn
	}
	if attendance.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	totalHours := now.Sub(*attendance.CheckIn).Hours()
	if err := s.attendanceRepo.UpdateAttendanceCheckout(ctx, attendance.ID, now, totalHours); err != nil {
		return nil, fmt.Errorf("check-out update: %w", err)
	}

	attendance.CheckOut = &now
	attendance.TotalHours = totalHours
	return attendance, nil
}

// DashboardData bundles the employee dashboard reads: today's record
// (nil means absent) and the running week's totals. A day with a
// check-in but no check-out counts toward DaysPresent yet contributes
// zero hours; presence and recorded hours are tracked independently.
func (s *AttendanceService) DashboardData(ctx context.Context, employeeID primitive.ObjectID, today string, now time.Time) (*models.DashboardData, error) {
	todayAttendance, err := s.attendanceRepo.FindAttendanceByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard today lookup: %w", err)
	}

	weekStart, weekEnd := WeekWindow(now)
	weekRecords, err := s.attendanceRepo.FindAttendanceByEmployeeInRange(ctx, employeeID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("dashboard week lookup: %w", err)
	}

	var stats models.WeekStats
	for _, record := range weekRecords {
		stats.TotalHours += record.TotalHours
		if record.CheckIn != nil {
			stats.DaysPresent++
		}
	}

	return &models.DashboardData{
		Today:     todayAttendance,
		WeekStats: stats,
	}, nil
}

// AdminDashboardData computes the fleet snapshot. AvgWorkHours is the
// mean over this week's records with recorded hours — over records,
// not employees, so an employee with several completed days weighs
// more. That matches the observed behaviour of the dashboards this
// feeds and is kept as-is.
func (s *AttendanceService) AdminDashboardData(ctx context.Context, today string, now time.Time) (*models.AdminDashboardStats, error) {
	totalEmployees, err := s.userRepo.CountUsersByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("fleet snapshot employee count: %w", err)
	}

	presentToday, err := s.attendanceRepo.CountPresentByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("fleet snapshot present count: %w", err)
	}

	weekStart, weekEnd := WeekWindow(now)
	weekRecords, err := s.attendanceRepo.FindAttendanceWithHoursInRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("fleet snapshot week lookup: %w", err)
	}

	avgWorkHours := 0.0
	if len(weekRecords) > 0 {
		var totalWeekHours float64
		for _, record := range weekRecords {
			totalWeekHours += record.TotalHours
		}
		avgWorkHours = totalWeekHours / float64(len(weekRecords))
	}

	recentActivity, err := s.attendanceRepo.FindRecentWithUserDetails(ctx, RecentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("fleet snapshot recent activity: %w", err)
	}

	return &models.AdminDashboardStats{
		TotalEmployees: totalEmployees,
		PresentToday:   presentToday,
		AvgWorkHours:   avgWorkHours,
		RecentActivity: recentActivity,
	}, nil
}
