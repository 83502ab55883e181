// Package auth holds the seeded admin credentials and the signed session
// cookie scheme. Passwords live only in this package and are compared in
// memory; they are never written to the user store.
package auth

import "golang.org/x/crypto/bcrypt"

// Fixed identities for the seeded accounts. Only the main admin's password is
// ever checked; see the login rules in internal/state.
const (
	MainAdminUsername = "MAGCP"
	MainAdminEmail    = "manoalii847@gmail.com"

	SecondAdminUsername = "ADMIN2"
	SecondAdminEmail    = "admin2@cpm.local"

	ThirdAdminUsername = "ADMIN3"
	ThirdAdminEmail    = "admin3@cpm.local"
)

// mainAdminPassword is the mock credential from the original deployment.
const mainAdminPassword = "magcp10611061"

// Hashed once at startup so login compares against a bcrypt hash rather than
// the raw constant.
var mainAdminHash = mustHash(mainAdminPassword)

func mustHash(password string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}

// VerifyMainAdminPassword reports whether the given password is the main
// admin's.
func VerifyMainAdminPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(mainAdminHash, []byte(password)) == nil
}

// IsMainAdminIdentifier reports whether the login identifier names the main
// admin account (exact match, as typed on the admin login card).
func IsMainAdminIdentifier(identifier string) bool {
	return identifier == MainAdminUsername || identifier == MainAdminEmail
}
