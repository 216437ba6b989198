package util

import "testing"

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "SuperSecret123!", false},
		{"too short", "Sh0rt!", true},
		{"missing upper", "lowercase1234!", true},
		{"missing digit", "NoDigitsHere!!!", true},
		{"missing special", "NoSpecials12345", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %q", tc.password)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.password, err)
			}
		})
	}
}

func TestDeriveAndVerifyPassword(t *testing.T) {
	hash, salt, err := DerivePassword("SuperSecret123!")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if !VerifyPassword("SuperSecret123!", salt, hash) {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword("WrongSecret123!", salt, hash) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestVerifyPasswordRejectsEmptyInputs(t *testing.T) {
	if VerifyPassword("", []byte("salt"), []byte("hash")) {
		t.Fatal("expected empty password to fail")
	}
	if VerifyPassword("password", nil, []byte("hash")) {
		t.Fatal("expected empty salt to fail")
	}
}
