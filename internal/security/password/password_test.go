package password

import "testing"

func TestHashVerify(t *testing.T) {
	h := Hasher{Cost: 4} // min cost, tests only
	digest, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "s3cret" || digest == "" {
		t.Fatal("digest must not echo the password")
	}
	if !h.Verify("s3cret", digest) {
		t.Fatal("expected verify to succeed")
	}
	if h.Verify("wrong", digest) {
		t.Fatal("expected verify to fail for wrong password")
	}
}

func TestHashEmpty(t *testing.T) {
	if _, err := Default().Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestHashSaltsDiffer(t *testing.T) {
	h := Hasher{Cost: 4}
	a, _ := h.Hash("pw")
	b, _ := h.Hash("pw")
	if a == b {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}
