//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"math"
	"testing"
	"time"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.Int(10, 20)
		if v < 10 || v > 20 {
			t.Errorf("Int(10, 20) returned %d, out of range", v)
		}
	}
}

func TestFakerFloat64(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.Float64(4, 45)
		if v < 4 || v > 45 {
			t.Errorf("Float64(4, 45) returned %f, out of range", v)
		}
	}
}

func TestFakerChance(t *testing.T) {
	f := NewFakerWithSeed(1)
	if f.Chance(0) {
		t.Error("Chance(0) should never be true")
	}
	if !f.Chance(1.01) {
		t.Error("Chance above 1 should always be true")
	}
}

func TestFakerNormal(t *testing.T) {
	f := NewFakerWithSeed(7)
	const n = 5000
	var sum float64
	for i := 0; i < n; i++ {
		v := f.Normal(4.3, 0.4)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Normal returned %f", v)
		}
		sum += v
	}
	if mean := sum / n; math.Abs(mean-4.3) > 0.05 {
		t.Errorf("Expected mean near 4.3, got %f", mean)
	}
}

func TestFakerPoisson(t *testing.T) {
	f := NewFakerWithSeed(7)
	const n = 2000
	total := 0
	for i := 0; i < n; i++ {
		v := f.Poisson(80)
		if v < 0 {
			t.Fatalf("Poisson returned negative %d", v)
		}
		total += v
	}
	if mean := float64(total) / n; math.Abs(mean-80) > 2 {
		t.Errorf("Expected mean near 80, got %f", mean)
	}
}

func TestFakerDateRange(t *testing.T) {
	f := NewFakerWithSeed(1)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		d := f.DateRange(start, end)
		if d.Before(start) || d.After(end) {
			t.Errorf("DateRange returned %v outside range", d)
		}
	}
}

func TestFakerDigits(t *testing.T) {
	f := NewFakerWithSeed(1)
	d := f.Digits(12)
	if len(d) != 12 {
		t.Errorf("Expected 12 digits, got %d", len(d))
	}
	for _, c := range d {
		if c < '0' || c > '9' {
			t.Errorf("Digits returned non-digit: %c", c)
		}
	}
}

func TestFakerRandomString(t *testing.T) {
	f := NewFakerWithSeed(1)
	charset := "AB"
	s := f.RandomString(20, charset)
	if len(s) != 20 {
		t.Errorf("Expected length 20, got %d", len(s))
	}
	for _, c := range s {
		if c != 'A' && c != 'B' {
			t.Errorf("RandomString returned char %c outside charset", c)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(1)
	items := []string{"DPD", "Royal Mail", "Evri"}
	for i := 0; i < 20; i++ {
		v := Choose(f, items)
		found := false
		for _, it := range items {
			if v == it {
				found = true
			}
		}
		if !found {
			t.Errorf("Choose returned %q not in items", v)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFakerWithSeed(1)
	if v := Choose(f, []int{}); v != 0 {
		t.Errorf("Expected zero value, got %d", v)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(1)
	items := []string{"never", "always"}
	weights := []int{0, 100}
	for i := 0; i < 50; i++ {
		if v := ChooseWeighted(f, items, weights); v != "always" {
			t.Errorf("Expected 'always', got %q", v)
		}
	}
}

func TestChooseWeightedEmpty(t *testing.T) {
	f := NewFakerWithSeed(1)
	if v := ChooseWeighted(f, []string{}, []int{}); v != "" {
		t.Errorf("Expected empty string, got %q", v)
	}
}

func TestSample(t *testing.T) {
	f := NewFakerWithSeed(3)
	items := []string{"A1", "A2", "A3", "A4", "5x7"}
	got := Sample(f, items, 3)
	if len(got) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, v := range got {
		if seen[v] {
			t.Errorf("Sample returned duplicate %q", v)
		}
		seen[v] = true
	}
	if items[0] != "A1" {
		t.Error("Sample should not modify its input")
	}
	if len(Sample(f, items, 10)) != len(items) {
		t.Error("Sample should cap k at len(items)")
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{10, 10},
		{0.004, 0},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestClipAndRound(t *testing.T) {
	if Clip(-1, 0, 0.4) != 0 || Clip(0.5, 0, 0.4) != 0.4 || Clip(0.2, 0, 0.4) != 0.2 {
		t.Error("Clip out of bounds")
	}
	if Round(0.123456, 4) != 0.1235 {
		t.Errorf("Expected 0.1235, got %v", Round(0.123456, 4))
	}
}
