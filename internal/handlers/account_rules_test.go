package handlers

import (
	"testing"

	"storefront/internal/models"
)

func validInput() RegisterInput {
	return RegisterInput{
		Name:     "James",
		Email:    "james@gmail.com",
		Password: "pw123456",
		Phone:    "91234567",
		Address:  "Sentosa",
		Answer:   "Badminton",
	}
}

func TestValidateRegistrationAccepts(t *testing.T) {
	if msg := validateRegistration(validInput()); msg != "" {
		t.Fatalf("expected valid input to pass, got %q", msg)
	}
}

func TestValidateRegistrationReportsFirstFailureInFixedOrder(t *testing.T) {
	tests := []struct {
		mutate func(*RegisterInput)
		want   string
	}{
		{func(in *RegisterInput) { in.Name = "  " }, "Name is Required"},
		{func(in *RegisterInput) { in.Email = "" }, "Email is Required"},
		{func(in *RegisterInput) { in.Email = "not-an-email" }, "A valid Email is Required"},
		{func(in *RegisterInput) { in.Password = "" }, "Password is Required"},
		{func(in *RegisterInput) { in.Phone = "" }, "Phone no is Required"},
		{func(in *RegisterInput) { in.Phone = "12" }, "A valid Phone no is Required"},
		{func(in *RegisterInput) { in.Address = "" }, "Address is Required"},
		{func(in *RegisterInput) { in.Answer = "" }, "Answer is Required"},
	}

	for _, tt := range tests {
		in := validInput()
		tt.mutate(&in)
		if got := validateRegistration(in); got != tt.want {
			t.Errorf("validateRegistration = %q, want %q", got, tt.want)
		}
	}
}

func TestValidateRegistrationReportsOnlyFirstFailure(t *testing.T) {
	in := validInput()
	in.Name = ""
	in.Email = ""
	in.Answer = ""
	if got := validateRegistration(in); got != "Name is Required" {
		t.Fatalf("expected first failing field only, got %q", got)
	}
}

func TestLooseEmailCheck(t *testing.T) {
	valid := []string{"james@gmail.com", "a@b.co", "first.last@sub.domain.org"}
	for _, email := range valid {
		if !looseEmailOK(email) {
			t.Errorf("expected %q to pass the loose check", email)
		}
	}

	invalid := []string{"", "plain", "@nodomain.com", "user@", "user@nodot", "user@dot."}
	for _, email := range invalid {
		if looseEmailOK(email) {
			t.Errorf("expected %q to fail the loose check", email)
		}
	}
}

func TestPhoneCheck(t *testing.T) {
	if !phoneOK("91234567") {
		t.Error("expected plain digits to pass")
	}
	if !phoneOK("+65 9123-4567") {
		t.Error("expected separators to be allowed")
	}
	if phoneOK("12345") {
		t.Error("expected too-short number to fail")
	}
	if phoneOK("9123456x") {
		t.Error("expected letters to fail")
	}
}

func storedUser() models.User {
	return models.User{
		Name:     "James",
		Email:    "james@gmail.com",
		Password: "$2a$10$storedhash",
		Phone:    "91234567",
		Address:  "Sentosa",
	}
}

func TestMergeProfileRetainsOmittedFields(t *testing.T) {
	current := storedUser()
	merged := mergeProfile(current, ProfilePatch{})

	if merged != current {
		t.Fatalf("empty patch must keep the stored record, got %+v", merged)
	}
}

func TestMergeProfileOverridesPresentFields(t *testing.T) {
	current := storedUser()
	merged := mergeProfile(current, ProfilePatch{
		Name:    "James Tan",
		Address: "Changi",
	})

	if merged.Name != "James Tan" {
		t.Errorf("name not overridden: %q", merged.Name)
	}
	if merged.Address != "Changi" {
		t.Errorf("address not overridden: %q", merged.Address)
	}
	if merged.Phone != current.Phone {
		t.Errorf("omitted phone must be retained, got %q", merged.Phone)
	}
	if merged.Password != current.Password {
		t.Errorf("omitted password must be retained, got %q", merged.Password)
	}
	if merged.Email != current.Email {
		t.Errorf("email must be immutable here, got %q", merged.Email)
	}
}

func TestMergeProfileWhitespaceMeansAbsent(t *testing.T) {
	current := storedUser()
	merged := mergeProfile(current, ProfilePatch{Name: "   ", Phone: ""})

	if merged.Name != current.Name || merged.Phone != current.Phone {
		t.Fatalf("blank fields must keep stored values, got name=%q phone=%q", merged.Name, merged.Phone)
	}
}

func TestMergeProfileUsesPreHashedPassword(t *testing.T) {
	current := storedUser()
	merged := mergeProfile(current, ProfilePatch{HashedPassword: "$2a$10$newhash"})

	if merged.Password != "$2a$10$newhash" {
		t.Fatalf("expected hashed password to be applied, got %q", merged.Password)
	}
}
