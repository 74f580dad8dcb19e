package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword and CheckPassword back the user credential surface that sits
// in front of this service. Device tokens are never hashed with bcrypt; they
// are opaque identifiers resolved through the registry.

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
