package utils

import "testing"

func TestGenerateVerificationCodeWidth(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateVerificationCode()
		if err != nil {
			t.Fatal(err)
		}
		if code < 100000 || code > 999999 {
			t.Fatalf("expected a 6-digit code, got %d", code)
		}
	}
}

func TestGenerateResetTokenHashRoundTrip(t *testing.T) {
	token, hash, err := GenerateResetToken()
	if err != nil {
		t.Fatal(err)
	}
	if token == "" || hash == "" {
		t.Fatal("token and hash must both be non-empty")
	}
	if token == hash {
		t.Error("stored hash must differ from the plaintext token")
	}
	if HashResetToken(token) != hash {
		t.Error("hashing the plaintext must reproduce the stored hash")
	}

	other, _, err := GenerateResetToken()
	if err != nil {
		t.Fatal(err)
	}
	if other == token {
		t.Error("tokens must be random")
	}
}

func TestHashResetTokenIsDeterministic(t *testing.T) {
	if HashResetToken("abc") != HashResetToken("abc") {
		t.Error("same input must hash identically")
	}
	if HashResetToken("abc") == HashResetToken("abd") {
		t.Error("different inputs must hash differently")
	}
}
