package models

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type LoginSuccessResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	User    User   `json:"user"`
}

type RegisterSuccessResponse struct {
	Message string `json:"message" example:"Employee registered successfully"`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
}

type CheckInSuccessResponse struct {
	Message    string     `json:"message" example:"Checked in successfully"`
	Attendance Attendance `json:"attendance"`
}

type GetAllUsersSuccessResponse struct {
	Message string `json:"message" example:"Users retrieved successfully"`
	Users   []User `json:"users"`
	Total   int64  `json:"total" example:"10"`
}

type DeleteUserSuccessResponse struct {
	Message string `json:"message" example:"Employee deleted successfully"`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
}
