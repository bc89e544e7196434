package roomid

import (
	"math/rand"
	"testing"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		code := Generate()
		if err := Validate(code); err != nil {
			t.Fatalf("generated code %q failed validation: %v", code, err)
		}
	}
}

func TestGenerateDeterministicWithRandSource(t *testing.T) {
	t.Parallel()

	a := NewGenerator(rand.New(rand.NewSource(7))).Generate()
	b := NewGenerator(rand.New(rand.NewSource(7))).Generate()
	if a != b {
		t.Errorf("same seed should produce same code: %q vs %q", a, b)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	if err := Validate("ABC"); err == nil {
		t.Error("short code should fail validation")
	}
	if err := Validate("ABCDEI"); err == nil {
		t.Error("ambiguous character should fail validation")
	}
	if err := Validate("abcdef"); err == nil {
		t.Error("lowercase should fail validation")
	}
}
