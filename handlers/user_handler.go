package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Employee-Attendance-Management/models"
	"Employee-Attendance-Management/pkg/password"
	util "Employee-Attendance-Management/pkg/utils"
	"Employee-Attendance-Management/repository"
	"Employee-Attendance-Management/services"
)

type UserHandler struct {
	userRepo          repository.UserRepository
	employeeService   *services.EmployeeService
	attendanceService *services.AttendanceService
}

func NewUserHandler(userRepo repository.UserRepository, employeeService *services.EmployeeService, attendanceService *services.AttendanceService) *UserHandler {
	return &UserHandler{
		userRepo:          userRepo,
		employeeService:   employeeService,
		attendanceService: attendanceService,
	}
}

// GetUserByID godoc
// @Summary Get User by ID
// @Description Returns one user; employees may only see themselves, admins see anyone
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User "User found"
// @Failure 400 {object} models.ErrorResponse "Invalid user ID format"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Access denied"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /users/{id} [get]
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID format"})
	}

	claims, ok := sessionClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated."})
	}

	if !claims.IsAdmin() && claims.UserID.Hex() != idParam {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied. You can only view your own profile."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, objID)
	if err != nil {
		log.Printf("Get user by ID error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user."})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.Password = ""
	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateUser godoc
// @Summary Update User
// @Description Updates a user; employees may only update themselves, admins anyone. Password is only changed when provided.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body models.UserUpdatePayload true "Fields to update"
// @Success 200 {object} object{message=string} "User updated"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Access denied"
// @Failure 409 {object} models.ErrorResponse "Email already in use"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID format"})
	}

	claims, ok := sessionClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated."})
	}

	if !claims.IsAdmin() && claims.UserID.Hex() != idParam {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied. You can only update your own profile."})
	}

	var payload models.UserUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	// Role changes stay admin-only even on self-updates.
	if !claims.IsAdmin() && payload.Role != "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied. Only admins can change roles."})
	}

	updateData := bson.M{}
	if payload.Name != "" {
		updateData["name"] = payload.Name
	}
	if payload.Email != "" {
		updateData["email"] = payload.Email
	}
	if payload.Role != "" {
		updateData["role"] = payload.Role
	}
	if payload.Department != "" {
		updateData["department"] = payload.Department
	}
	if payload.Password != "" {
		hashedPassword, err := password.HashPassword(payload.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
		}
		updateData["password"] = hashedPassword
	}

	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.userRepo.UpdateUser(ctx, objID, updateData); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An employee with this email already exists."})
		}
		log.Printf("Update user error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "An unexpected error occurred."})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
		"user_id": idParam,
	})
}

// GetAllUsers godoc
// @Summary Get All Users
// @Description Lists users with pagination and optional role filter (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10, max: 100)"
// @Param role query string false "Filter by role"
// @Success 200 {object} models.GetAllUsersSuccessResponse "Users retrieved"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Admin only"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /admin/users [get]
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}
	if role := c.Query("role"); role != "" {
		filter["role"] = role
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.userRepo.GetAllUsers(ctx, filter, page, limit)
	if err != nil {
		log.Printf("Get all users error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users."})
	}

	for i := range users {
		users[i].Password = ""
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Users retrieved successfully",
		"users":   users,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// DeleteUser godoc
// @Summary Delete Employee
// @Description Deletes a user and cascades to their attendance records (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.DeleteUserSuccessResponse "Employee deleted"
// @Failure 400 {object} models.ErrorResponse "Invalid user ID or last admin"
// @Failure 404 {object} models.ErrorResponse "Employee not found"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	idParam := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID format"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.employeeService.DeleteEmployee(ctx, objID); err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found."})
		case errors.Is(err, services.ErrLastAdmin):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot delete the last admin user."})
		}
		log.Printf("Delete user error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "An unexpected error occurred."})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Employee deleted successfully",
		"user_id": idParam,
	})
}

// GetDashboardStats godoc
// @Summary Admin Dashboard Stats
// @Description Fleet-wide snapshot: headcount, present today, average hours this week, recent activity (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminDashboardStats "Dashboard stats"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Admin only"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /admin/dashboard-stats [get]
func (h *UserHandler) GetDashboardStats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	stats, err := h.attendanceService.AdminDashboardData(ctx, services.Today(now), now)
	if err != nil {
		log.Printf("Admin dashboard stats error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard stats."})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

// GetDepartments godoc
// @Summary List Departments
// @Description Distinct department names across all users, for filter dropdowns
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string "Department names"
// @Failure 500 {object} models.ErrorResponse "Unexpected error"
// @Router /departments [get]
func (h *UserHandler) GetDepartments(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	departments, err := h.userRepo.GetDistinctDepartments(ctx)
	if err != nil {
		log.Printf("Get departments error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch departments."})
	}

	return c.Status(fiber.StatusOK).JSON(departments)
}
