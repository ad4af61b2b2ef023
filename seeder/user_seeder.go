package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"Employee-Attendance-Management/models"
	"Employee-Attendance-Management/repository"
)

var departments = []string{"Engineering", "Marketing", "Sales", "Human Resources", "Finance", "Operations"}

// SeedUsers inserts an initial admin and a handful of sample employees.
// Existing accounts are left untouched, so running it repeatedly is safe.
func SeedUsers(userRepo repository.UserRepository) {
	log.Println("Seeding users...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminEmail := "admin@socialwalk.com"
	adminUser, err := userRepo.FindUserByEmail(ctx, adminEmail)
	if err == nil && adminUser != nil {
		log.Println("Admin user already exists, skipping admin seed.")
	} else {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}

		newAdmin := &models.User{
			Name:       "Primary Admin",
			Email:      adminEmail,
			Password:   string(hashedPassword),
			Role:       models.RoleAdmin,
			Department: "Management",
		}
		if err := userRepo.CreateUser(ctx, newAdmin); err != nil {
			log.Printf("Failed to seed admin user: %v", err)
		} else {
			log.Printf("Admin user (%s) seeded.", newAdmin.Email)
		}
	}

	names := []string{"Alice Johnson", "Bob Smith", "Carol Davis", "David Lee", "Emma Wilson", "Frank Miller"}

	for i, name := range names {
		email := fmt.Sprintf("employee%02d@socialwalk.com", i+1)
		existingUser, err := userRepo.FindUserByEmail(ctx, email)
		if err == nil && existingUser != nil {
			continue
		}

		// One-off password per seeded account; surfaced in the log so
		// it can be handed to the employee and changed on first login.
		plainPassword := uuid.New().String()[:12]
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash password for %s: %v", email, err)
			continue
		}

		newEmployee := &models.User{
			Name:       name,
			Email:      email,
			Password:   string(hashedPassword),
			Role:       models.RoleEmployee,
			Department: departments[i%len(departments)],
		}
		if err := userRepo.CreateUser(ctx, newEmployee); err != nil {
			log.Printf("Failed to seed employee %s: %v", email, err)
			continue
		}
		log.Printf("Employee %s seeded (password: %s)", email, plainPassword)
	}

	log.Println("User seeding complete.")
}
