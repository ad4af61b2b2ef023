package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stored status tag. Only "present" is ever written by the check-in
// transition; the other two values are reserved.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusOnLeave = "on_leave"
)

// Attendance is one employee/day record. At most one exists per
// (employee_id, date) pair; the unique index on the collection enforces it.
type Attendance struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	Date       string             `json:"date" bson:"date"` // YYYY-MM-DD, server-local
	CheckIn    *time.Time         `json:"check_in" bson:"check_in,omitempty"`
	CheckOut   *time.Time         `json:"check_out" bson:"check_out,omitempty"`
	TotalHours float64            `json:"total_hours" bson:"total_hours"`
	Status     string             `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// AttendanceWithUser is an attendance record joined with the owning
// employee's display fields, as produced by the $lookup pipelines.
type AttendanceWithUser struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	EmployeeID     primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	Date           string             `json:"date" bson:"date"`
	CheckIn        *time.Time         `json:"check_in" bson:"check_in,omitempty"`
	CheckOut       *time.Time         `json:"check_out" bson:"check_out,omitempty"`
	TotalHours     float64            `json:"total_hours" bson:"total_hours"`
	Status         string             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UserName       string             `json:"user_name" bson:"user_name"`
	UserDepartment string             `json:"user_department,omitempty" bson:"user_department,omitempty"`
}

type WeekStats struct {
	TotalHours  float64 `json:"total_hours"`
	DaysPresent int     `json:"days_present"`
}

// DashboardData is the employee dashboard payload: today's record (nil
// means absent) plus the running week's totals.
type DashboardData struct {
	Today     *Attendance `json:"today"`
	WeekStats WeekStats   `json:"week_stats"`
}

type AdminDashboardStats struct {
	TotalEmployees int64                `json:"total_employees"`
	PresentToday   int64                `json:"present_today"`
	AvgWorkHours   float64              `json:"avg_work_hours"`
	RecentActivity []AttendanceWithUser `json:"recent_activity"`
}
