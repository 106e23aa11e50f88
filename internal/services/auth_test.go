package services

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		pw      string
		wantErr bool
	}{
		{"valid", "Sensible42", false},
		{"too short", "Ab1", true},
		{"no digit", "passwordonly", true},
		{"exactly eight with digit", "abcdefg1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.pw)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for %q", tc.pw)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %v", tc.pw, err)
			}
		})
	}
}

func TestEmailRegex(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.io"}
	invalid := []string{"", "plain", "missing@tld", "@example.com", "user@.com"}

	for _, e := range valid {
		if !emailRegex.MatchString(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if emailRegex.MatchString(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}
