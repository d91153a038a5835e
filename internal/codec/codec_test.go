package codec

import (
	"math"
	"testing"
)

func TestFloat64(t *testing.T) {
	for _, v := range []float64{0, -0.5, 100, -100, math.SmallestNonzeroFloat64, math.MaxFloat64} {
		got, err := DecodeFloat64(EncodeFloat64(v))
		if err != nil {
			t.Fatal(err)
		}

		if got != v {
			t.Errorf("expected %v, got %v", v, got)
		}
	}
}

func TestDecodeFloat64_BadLength(t *testing.T) {
	if _, err := DecodeFloat64([]byte{1, 2, 3}); err == nil {
		t.Error("expected error decoding short buffer")
	}
}
