package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name,omitempty"`
	Email      string             `json:"email" bson:"email,omitempty"`
	Password   string             `json:"password,omitempty" bson:"password,omitempty"`
	Role       string             `json:"role" bson:"role,omitempty"`
	Department string             `json:"department" bson:"department,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type UserRegisterPayload struct {
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=50"`
	Role       string `json:"role" validate:"required,oneof=admin employee"`
	Department string `json:"department" validate:"required"`
}

type UserLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdatePayload leaves Password empty to keep the current one.
type UserUpdatePayload struct {
	Name       string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=6,max=50"`
	Role       string `json:"role,omitempty" validate:"omitempty,oneof=admin employee"`
	Department string `json:"department,omitempty"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=50,hasuppercase"`
}

// Claims is the authenticated principal carried by the session token.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Role   string             `json:"role"`
}

func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
