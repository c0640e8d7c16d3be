package auth

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/models"
)

func TestTokenRoundTrip(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	token, err := GenerateToken(id, models.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != id {
		t.Errorf("UserID = %q, want %q", claims.UserID, id)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleAdmin)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ValidateToken(tok); err == nil {
			t.Errorf("ValidateToken(%q) accepted an invalid token", tok)
		}
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID().Hex(), models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("ValidateToken accepted a tampered signature")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Sup3r$ecret" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "Sup3r$ecret") {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "Sup3r$ecret2") {
		t.Error("CheckPassword accepted the wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"longEnough8$", true},
		{"Ab1!", false},            // too short
		{"abcdefg1!", false},       // no upper
		{"ABCDEFG1!", false},       // no lower
		{"Abcdefgh!", false},       // no digit
		{"Abcdefgh1", false},       // no symbol
		{"", false},
		{"        ", false},
	}

	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
