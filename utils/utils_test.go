package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateJWT(t *testing.T) {
	secret := []byte("test-secret")
	tokenString, err := GenerateJWT(secret, 42, "lifter@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parsing token: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["email"] != "lifter@example.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
	if claims["userId"].(float64) != 42 {
		t.Errorf("userId claim = %v", claims["userId"])
	}
}

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(180, 75)
	if err != nil {
		t.Fatalf("CalculateBMI: %v", err)
	}
	if bmi < 23.1 || bmi > 23.2 {
		t.Errorf("bmi = %.2f, want ~23.15", bmi)
	}

	if _, err := CalculateBMI(0, 75); err == nil {
		t.Error("zero height accepted")
	}
	if _, err := CalculateBMI(180, 999); err == nil {
		t.Error("implausible weight accepted")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	token := GenerateRandomToken(6)
	if len(token) != 6 {
		t.Errorf("len = %d, want 6", len(token))
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenCharset, r) {
			t.Errorf("token %q contains %q outside the charset", token, r)
		}
	}
	if GenerateRandomToken(6) == token && GenerateRandomToken(6) == token {
		t.Errorf("three identical tokens in a row: %q", token)
	}
}
