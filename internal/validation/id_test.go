package validation

import "testing"

func TestValidRealmID_Valid(t *testing.T) {
	valids := []string{
		"a",
		"r1",
		"acme",
		"acme-corp",
		"a-b-c-1",
		mkLen("a", 64),
	}
	for _, v := range valids {
		if !ValidRealmID(v) {
			t.Fatalf("expected valid: %q", v)
		}
	}
}

func TestValidRealmID_Invalid(t *testing.T) {
	invalids := []string{
		"",            // empty
		"-lead",       // starts with dash
		"trail-",      // ends with dash
		"Acme",        // uppercase
		"has space",   // space
		"under_score", // underscore
		mkLen("a", 65),
	}
	for _, v := range invalids {
		if ValidRealmID(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}

func TestValidObjectID(t *testing.T) {
	if !ValidObjectID("65f2a1b3c4d5e6f7a8b9c0d1") {
		t.Fatal("expected valid 24-hex id")
	}
	for _, v := range []string{"", "xyz", "65f2a1b3c4d5e6f7a8b9c0d", "65f2a1b3c4d5e6f7a8b9c0d1f", "zzf2a1b3c4d5e6f7a8b9c0d1"} {
		if ValidObjectID(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail("a@x.com") {
		t.Fatal("expected valid email")
	}
	for _, v := range []string{"", "a", "a@", "@x.com", "a b@x.com", "a@x"} {
		if ValidEmail(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}

// mkLen builds a string of exactly n 'a' characters.
func mkLen(prefix string, total int) string {
	if total <= len(prefix) {
		return prefix[:total]
	}
	out := make([]byte, total)
	copy(out, prefix)
	for i := len(prefix); i < total; i++ {
		out[i] = 'a'
	}
	return string(out)
}
