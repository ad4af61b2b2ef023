package router

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"Employee-Attendance-Management/config/middleware"
	"Employee-Attendance-Management/handlers"
	"Employee-Attendance-Management/repository"
	"Employee-Attendance-Management/services"
)

func SetupRoutes(app *fiber.App) {
	userRepo := repository.NewUserRepository()
	attendanceRepo := repository.NewAttendanceRepository()

	attendanceService := services.NewAttendanceService(attendanceRepo, userRepo)
	employeeService := services.NewEmployeeService(userRepo, attendanceRepo)

	authHandler := handlers.NewAuthHandler(userRepo)
	userHandler := handlers.NewUserHandler(userRepo, employeeService, attendanceService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, attendanceRepo)

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Employee Attendance Management API",
			"status":  "running",
		})
	})

	api := app.Group("/api/v1")

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", middleware.AuthMiddleware(), authHandler.Logout)
	authGroup.Post("/register", middleware.AuthMiddleware(), middleware.AdminMiddleware(), authHandler.Register)

	// User routes
	protectedUserGroup := api.Group("/users", middleware.AuthMiddleware())
	protectedUserGroup.Post("/change-password", authHandler.ChangePassword)
	protectedUserGroup.Get("/:id", userHandler.GetUserByID)
	protectedUserGroup.Put("/:id", userHandler.UpdateUser)

	api.Get("/departments", middleware.AuthMiddleware(), userHandler.GetDepartments)

	// Attendance routes
	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware())
	attendanceGroup.Post("/check-in", attendanceHandler.CheckIn)
	attendanceGroup.Post("/check-out", attendanceHandler.CheckOut)
	attendanceGroup.Get("/dashboard", attendanceHandler.GetDashboard)
	attendanceGroup.Get("/my-history", attendanceHandler.GetMyAttendanceHistory)
	attendanceGroup.Get("/export", attendanceHandler.ExportAttendance)
	attendanceGroup.Get("/", middleware.AdminMiddleware(), attendanceHandler.GetAttendanceTable)

	// Admin routes
	adminGroup := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	adminGroup.Get("/users", userHandler.GetAllUsers)
	adminGroup.Delete("/users/:id", userHandler.DeleteUser)
	adminGroup.Get("/dashboard-stats", userHandler.GetDashboardStats)

	log.Println("All application routes registered")
}
