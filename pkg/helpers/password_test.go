package helpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, err := ComparePassword(hash, "secret")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = ComparePassword(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, got ok=%v err=%v", ok, err)
	}
}

func TestComparePasswordMalformedHash(t *testing.T) {
	ok, err := ComparePassword("not-a-bcrypt-hash", "secret")
	if ok {
		t.Fatal("malformed hash must not match")
	}
	if err == nil {
		t.Fatal("expected an error for a malformed hash")
	}
}
