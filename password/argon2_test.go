package password

import (
	"strings"
	"testing"
)

func testConfig() Config {
	return Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func newTestHasher(t *testing.T) *Argon2 {
	t.Helper()

	hasher, err := NewArgon2(testConfig())
	if err != nil {
		t.Fatalf("NewArgon2: %v", err)
	}

	return hasher
}

func TestHashAndVerify(t *testing.T) {
	hasher := newTestHasher(t)

	encoded, err := hasher.Hash("Correct-Horse1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected PHC prefix: %q", encoded)
	}

	ok, err := hasher.Verify("Correct-Horse1", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	hasher := newTestHasher(t)

	encoded, err := hasher.Hash("Correct-Horse1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := hasher.Verify("Wrong-Horse1", encoded)
	if err != nil {
		t.Fatalf("Verify returned error for wrong password: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashProducesDistinctSalts(t *testing.T) {
	hasher := newTestHasher(t)

	first, err := hasher.Hash("Correct-Horse1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := hasher.Hash("Correct-Horse1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := newTestHasher(t)

	cases := []string{
		"",
		"not-a-phc-string",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA==$aGFzaA==",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA==$aGFzaA==",
		"$argon2id$v=19$m=8192,t=1$c2FsdHNhbHRzYWx0c2FsdA==$aGFzaA==",
		"$argon2id$v=19$m=8192,t=1,p=1$!!$aGFzaA==",
	}

	for _, encoded := range cases {
		if _, err := hasher.Verify("whatever", encoded); err == nil {
			t.Fatalf("expected error for malformed hash %q", encoded)
		}
	}
}

func TestVerifyUsesEmbeddedParameters(t *testing.T) {
	weak, err := NewArgon2(Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		t.Fatalf("NewArgon2: %v", err)
	}

	encoded, err := weak.Hash("Correct-Horse1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	strong, err := NewArgon2(Config{
		Memory:      16 * 1024,
		Time:        2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		t.Fatalf("NewArgon2: %v", err)
	}

	ok, err := strong.Verify("Correct-Horse1", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected hash made with older parameters to still verify")
	}
}

func TestNeedsUpgrade(t *testing.T) {
	weak := newTestHasher(t)

	encoded, err := weak.Hash("Correct-Horse1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	upgrade, err := weak.NeedsUpgrade(encoded)
	if err != nil {
		t.Fatalf("NeedsUpgrade: %v", err)
	}
	if upgrade {
		t.Fatal("hash produced with active parameters should not need upgrade")
	}

	strong, err := NewArgon2(Config{
		Memory:      16 * 1024,
		Time:        2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		t.Fatalf("NewArgon2: %v", err)
	}

	upgrade, err = strong.NeedsUpgrade(encoded)
	if err != nil {
		t.Fatalf("NeedsUpgrade: %v", err)
	}
	if !upgrade {
		t.Fatal("hash weaker than active parameters should need upgrade")
	}
}

func TestHashRejectsOversizedPassword(t *testing.T) {
	hasher := newTestHasher(t)

	long := strings.Repeat("a", DefaultMaxPasswordBytes+1)
	if _, err := hasher.Hash(long); err == nil {
		t.Fatal("expected oversized password to be rejected")
	}
	if _, err := hasher.Verify(long, DummyHash); err == nil {
		t.Fatal("expected oversized password to be rejected by Verify")
	}
}

func TestNewArgon2RejectsWeakConfig(t *testing.T) {
	cases := []Config{
		{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 8 * 1024, Time: 0, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 8 * 1024, Time: 1, Parallelism: 0, SaltLength: 16, KeyLength: 32},
		{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 8, KeyLength: 32},
		{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 8},
	}

	for i, cfg := range cases {
		if _, err := NewArgon2(cfg); err == nil {
			t.Fatalf("case %d: expected config to be rejected", i)
		}
	}
}

func TestDummyHashParses(t *testing.T) {
	hasher := newTestHasher(t)

	ok, err := hasher.Verify("any-candidate", DummyHash)
	if err != nil {
		t.Fatalf("DummyHash must stay parseable: %v", err)
	}
	if ok {
		t.Fatal("DummyHash must never verify a password")
	}
}
