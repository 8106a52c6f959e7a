// Copyright Slam Academy, 2026. All rights reserved.

package pptx

import (
	"math"
	"testing"
)

func TestInchConversion(t *testing.T) {
	tests := []struct {
		name   string
		inches float64
		want   int64
	}{
		{"one inch", 1.0, 914400},
		{"slide width", 10.0, 9144000},
		{"slide height", 5.625, 5143500},
		{"quarter inch", 0.25, 228600},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inch(tt.inches); got != tt.want {
				t.Errorf("Inch(%v) = %d, want %d", tt.inches, got, tt.want)
			}
		})
	}
}

func TestEMUToInchRoundTrip(t *testing.T) {
	for _, in := range []float64{0.15, 1.1, 4.6, 5.2, 9.6} {
		got := EMUToInch(Inch(in))
		if math.Abs(got-in) > 1e-6 {
			t.Errorf("round trip %v -> %v", in, got)
		}
	}
}

func TestPointConversion(t *testing.T) {
	if got := Point(1); got != 12700 {
		t.Errorf("Point(1) = %d, want 12700", got)
	}
	if got := EMUToPoint(12700); got != 1 {
		t.Errorf("EMUToPoint(12700) = %v, want 1", got)
	}
}

func TestClampEMU(t *testing.T) {
	if got := clampEMU(math.MaxFloat64); got != maxEMU {
		t.Errorf("positive overflow not clamped: %d", got)
	}
	if got := clampEMU(-math.MaxFloat64); got != -maxEMU {
		t.Errorf("negative overflow not clamped: %d", got)
	}
}
