package password

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Admin123" {
		t.Fatal("hash equals the plaintext")
	}
	if !CheckPasswordHash("Admin123", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("admin123", hash) {
		t.Error("wrong password accepted")
	}
}
