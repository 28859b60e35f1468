package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash equals plaintext")
	}

	if !Compare(hash, "s3cret-pass") {
		t.Fatalf("Compare() rejected the correct password")
	}
	if Compare(hash, "wrong-pass") {
		t.Fatalf("Compare() accepted a wrong password")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := Hash("same")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	b, err := Hash("same")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical")
	}
}
