package security

import (
	"strings"
	"testing"
)

func testParams() Argon2Params {
	// Small parameters keep the test fast; production values come from config.
	return Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerify(t *testing.T) {
	h := NewArgon2Hasher(testParams())

	encoded, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Errorf("unexpected hash format: %q", encoded)
	}
	if !h.Verify("s3cret", encoded) {
		t.Error("correct password rejected")
	}
	if h.Verify("wrong", encoded) {
		t.Error("wrong password accepted")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewArgon2Hasher(testParams())
	a, err := h.Hash("same")
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Hash("same")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	h := NewArgon2Hasher(testParams())
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$%%%$aGFzaA",
	} {
		if h.Verify("anything", encoded) {
			t.Errorf("malformed hash %q accepted", encoded)
		}
	}
}

func TestVerifyUsesEncodedParams(t *testing.T) {
	// A hash produced with one parameter set verifies under a hasher
	// configured differently: parameters travel inside the encoding.
	strict := NewArgon2Hasher(testParams())
	encoded, err := strict.Hash("portable")
	if err != nil {
		t.Fatal(err)
	}
	other := NewArgon2Hasher(Argon2Params{Memory: 16 * 1024, Iterations: 2, Parallelism: 2, SaltLength: 16, KeyLength: 32})
	if !other.Verify("portable", encoded) {
		t.Error("hash not portable across hasher configurations")
	}
}
