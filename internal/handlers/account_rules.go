package handlers

import (
	"strings"

	"storefront/internal/models"
)

const minPasswordLength = 6

// RegisterInput carries the raw registration fields before validation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

// validateRegistration checks fields in a fixed order (name, email,
// password, phone, address, answer) and returns the first failing field's
// message, or "" when everything passes.
func validateRegistration(in RegisterInput) string {
	if strings.TrimSpace(in.Name) == "" {
		return "Name is Required"
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		return "Email is Required"
	}
	if !looseEmailOK(email) {
		return "A valid Email is Required"
	}

	if strings.TrimSpace(in.Password) == "" {
		return "Password is Required"
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return "Phone no is Required"
	}
	if !phoneOK(phone) {
		return "A valid Phone no is Required"
	}

	if strings.TrimSpace(in.Address) == "" {
		return "Address is Required"
	}
	if strings.TrimSpace(in.Answer) == "" {
		return "Answer is Required"
	}
	return ""
}

// looseEmailOK applies the deliberately loose format check: an "@" with a
// dotted domain after it. No RFC validation.
func looseEmailOK(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// phoneOK requires at least seven digits, allowing common separators.
func phoneOK(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '+' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 7
}

// ProfilePatch is a sparse profile update. Empty fields mean "keep the
// stored value". HashedPassword, when set, has already been hashed and
// length-checked by the caller.
type ProfilePatch struct {
	Name           string
	Phone          string
	Address        string
	HashedPassword string
}

// mergeProfile applies a sparse patch over the stored user: every non-empty
// patch field overrides, every empty one retains the previous value. Email
// is not part of the editable set.
func mergeProfile(current models.User, patch ProfilePatch) models.User {
	merged := current
	if v := strings.TrimSpace(patch.Name); v != "" {
		merged.Name = v
	}
	if patch.HashedPassword != "" {
		merged.Password = patch.HashedPassword
	}
	if v := strings.TrimSpace(patch.Phone); v != "" {
		merged.Phone = v
	}
	if v := strings.TrimSpace(patch.Address); v != "" {
		merged.Address = v
	}
	return merged
}
