package rounding

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestUnitRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.4", "2"},
		{"2.5", "3"},
		{"3.5", "4"},
		{"-2.5", "-3"},
		{"-2.4", "-2"},
		{"1000000.49", "1000000"},
	}
	for _, c := range cases {
		got := Unit(stddec.RequireFromString(c.in)).String()
		if got != c.out {
			t.Fatalf("Unit(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestFloorAndCeil(t *testing.T) {
	v := stddec.RequireFromString("15400.9")
	if got := Floor(v).String(); got != "15400" {
		t.Fatalf("Floor got %s", got)
	}
	if got := Ceil(v).String(); got != "15401" {
		t.Fatalf("Ceil got %s", got)
	}
	whole := stddec.NewFromInt(7)
	if !Floor(whole).Equal(Ceil(whole)) {
		t.Fatalf("whole numbers must be unchanged by Floor/Ceil")
	}
}

func TestPercentHelpers(t *testing.T) {
	if got := Percent(stddec.RequireFromString("15.4")).String(); got != "0.154" {
		t.Fatalf("Percent got %s", got)
	}
	if got := OfPercent(stddec.NewFromInt(100000), stddec.RequireFromString("15.4")).String(); got != "15400" {
		t.Fatalf("OfPercent got %s", got)
	}
	if got := GrowthFactor(stddec.NewFromInt(5)).String(); got != "1.05" {
		t.Fatalf("GrowthFactor got %s", got)
	}
}

func TestMax(t *testing.T) {
	a := stddec.NewFromInt(10)
	b := stddec.NewFromInt(20)
	if !Max(a, b).Equal(b) {
		t.Fatalf("Max failed")
	}
}
