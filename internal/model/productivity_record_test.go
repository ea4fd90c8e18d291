package model

import (
	"math"
	"testing"
)

func TestProductivityPercentage(t *testing.T) {
	tests := []struct {
		recipes, errors int
		want            float64
	}{
		{0, 0, 0},
		{18, 2, 90},
		{1, 0, 100},
		{0, 5, 0},
		{1, 2, 100.0 / 3},
		{7, 13, 35},
	}
	for _, tt := range tests {
		got := ProductivityPercentage(tt.recipes, tt.errors)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ProductivityPercentage(%d, %d) = %v, 期望 %v", tt.recipes, tt.errors, got, tt.want)
		}
	}
}

func TestProductivityPercentage_Bounds(t *testing.T) {
	for r := 0; r <= 50; r++ {
		for e := 0; e <= 50; e++ {
			got := ProductivityPercentage(r, e)
			if got < 0 || got > 100 {
				t.Fatalf("ProductivityPercentage(%d, %d) = %v 超出 [0,100]", r, e, got)
			}
			if r+e > 0 {
				want := float64(r) / float64(r+e) * 100
				if math.Abs(got-want) > 1e-9 {
					t.Fatalf("ProductivityPercentage(%d, %d) = %v, 期望 %v", r, e, got, want)
				}
			}
		}
	}
}
