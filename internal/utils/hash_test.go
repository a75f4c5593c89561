package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password1")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "password1" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "password1") {
		t.Error("correct password must verify")
	}
	if CheckPassword(hash, "password2") {
		t.Error("wrong password must not verify")
	}
}

func TestValidatePasswordLength(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"short", false},
		{"12345678", true},
		{"1234567890123456", true},
		{"12345678901234567", false},
	}

	for _, tc := range cases {
		err := ValidatePasswordLength(tc.password)
		if tc.ok && err != nil {
			t.Errorf("%q: unexpected error %v", tc.password, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%q: expected an error", tc.password)
		}
	}

	if err := ValidatePasswordLength("goodpass1", "bad"); err == nil {
		t.Error("any out-of-range password in the list must fail")
	}
}
