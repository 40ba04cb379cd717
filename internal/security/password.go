package security

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the work factor used by HashPassword. Tests lower it to
// bcrypt.MinCost.
var BcryptCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
