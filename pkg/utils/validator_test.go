package util

import (
	"testing"

	"Employee-Attendance-Management/models"
)

func TestValidateStructRegisterPayload(t *testing.T) {
	payload := models.UserRegisterPayload{
		Name:       "Alice Johnson",
		Email:      "alice@example.com",
		Password:   "Secret123",
		Role:       models.RoleEmployee,
		Department: "Sales",
	}
	if errs := ValidateStruct(payload); errs != nil {
		t.Fatalf("valid payload rejected: %+v", errs[0])
	}
}

func TestValidateStructReportsMissingFields(t *testing.T) {
	errs := ValidateStruct(models.UserLoginPayload{})
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2 (email, password)", len(errs))
	}
}

func TestHasUppercaseRule(t *testing.T) {
	payload := models.ChangePasswordPayload{
		OldPassword: "Secret123",
		NewPassword: "lowercase1",
	}
	errs := ValidateStruct(payload)
	if len(errs) == 0 {
		t.Fatal("password without an uppercase letter accepted")
	}
	if errs[0].Tag != "hasuppercase" {
		t.Errorf("tag = %q, want hasuppercase", errs[0].Tag)
	}
}
