package domain

import (
	"math"
	"testing"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{0, "₹0"},
		{79900, "₹799"},
		{249900, "₹2,499"},
		{12345650, "₹1,23,456.50"},
		{1234567801, "₹1,23,45,678.01"},
		{5, "₹0.05"},
		{-150000, "-₹1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Fatalf("Money(%d).String() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestThumb(t *testing.T) {
	if got := (Product{Name: "Silk Blend Saree"}).Thumb(); got != "Silk" {
		t.Fatalf("got %q", got)
	}
	if got := (Product{Name: "Dupatta"}).Thumb(); got != "Dupatta" {
		t.Fatalf("got %q", got)
	}
}

func TestMoneyCheckedTimes(t *testing.T) {
	tests := []struct {
		name   string
		m      Money
		qty    int
		want   Money
		wantOK bool
	}{
		{"simple", 79900, 3, 239700, true},
		{"zero qty", 79900, 0, 0, true},
		{"zero price", 0, math.MaxInt, 0, true},
		{"exact max", 1, math.MaxInt64, math.MaxInt64, true},
		{"overflow", 249900, math.MaxInt, 0, false},
		{"just over", 2, math.MaxInt64/2 + 1, 0, false},
		{"negative qty", 100, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.m.CheckedTimes(tt.qty)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("CheckedTimes(%d) = %d, %v; want %d, %v", tt.qty, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
