package utils

import "testing"

func TestHashPassword_VerifyAndSalting(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ")
	}
	if !CheckPassword(h1, "secret1") || !CheckPassword(h2, "secret1") {
		t.Fatal("both hashes should verify against the original password")
	}
	if CheckPassword(h1, "wrong-password") {
		t.Fatal("wrong password should not verify")
	}
}
