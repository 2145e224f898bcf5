package handlers

import "golang.org/x/crypto/bcrypt"

// bcrypt.DefaultCost is 10, the minimum acceptable work factor here.
const bcryptCost = bcrypt.DefaultCost

// hashPassword returns the one-way hash stored for a user secret. On error
// the caller must leave the stored credential untouched.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword reports whether candidate matches the stored hash. A
// mismatch is not an error.
func checkPassword(candidate, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
