package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want uint32
	}{
		{"zero", 0, 0},
		{"small", 7, 7},
		{"repeat limit", 1000, 1000},
		{"large", math.MaxInt32, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntToUint32(tt.in); got != tt.want {
				t.Errorf("IntToUint32(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntToUint32_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IntToUint32(-1) should panic")
		}
	}()
	IntToUint32(-1)
}
