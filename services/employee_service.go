package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Employee-Attendance-Management/models"
	"Employee-Attendance-Management/repository"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrLastAdmin        = errors.New("cannot delete the last admin user")
)

// EmployeeService covers the employee-side mutations that touch
// attendance state, chiefly deletion with its record cascade.
type EmployeeService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
}

func NewEmployeeService(userRepo repository.UserRepository, attendanceRepo repository.AttendanceRepository) *EmployeeService {
	return &EmployeeService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
	}
}

// DeleteEmployee removes a user and cascades to every attendance
// record they own. Deleting the last remaining admin is refused.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete employee lookup: %w", err)
	}
	if user == nil {
		return ErrEmployeeNotFound
	}

	if user.Role == models.RoleAdmin {
		adminCount, err := s.userRepo.CountUsersByRole(ctx, models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("delete employee admin count: %w", err)
		}
		if adminCount <= 1 {
			return ErrLastAdmin
		}
	}

	if _, err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	if _, err := s.attendanceRepo.DeleteAttendanceByEmployeeID(ctx, id); err != nil {
		return fmt.Errorf("delete employee attendance cascade: %w", err)
	}

	return nil
}
