package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.org", "user+tag@sub.domain.in"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("rejected valid email %q", e)
		}
	}

	invalid := []string{"", "plain", "@example.org", "a@b", "a b@example.org"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("accepted invalid email %q", e)
		}
	}
}

func TestValidateMobile(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", " 9876543210 "}
	for _, m := range valid {
		if !ValidateMobile(m) {
			t.Errorf("rejected valid mobile %q", m)
		}
	}

	invalid := []string{"", "12345", "98765abc10", "++919876543210", "1234567890123456"}
	for _, m := range invalid {
		if ValidateMobile(m) {
			t.Errorf("accepted invalid mobile %q", m)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("secret1"); !ok {
		t.Error("rejected acceptable password")
	}
	if ok, msg := ValidatePassword("short"); ok || msg == "" {
		t.Error("accepted too-short password")
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Errorf("unexpected sanitized value %q", got)
	}
}
