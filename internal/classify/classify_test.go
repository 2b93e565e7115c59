package classify

import "testing"

func TestBiasTierBands(t *testing.T) {
	tests := []struct {
		name  string
		score int
		label string
	}{
		{"zero", 0, "Minimal Bias"},
		{"lower boundary inclusive", 20, "Minimal Bias"},
		{"just above first band", 21, "Low Bias"},
		{"mid band", 35, "Low Bias"},
		{"second boundary", 40, "Low Bias"},
		{"moderate", 55, "Moderate Bias"},
		{"moderate boundary", 60, "Moderate Bias"},
		{"high", 73, "High Bias"},
		{"high boundary", 80, "High Bias"},
		{"extreme", 81, "Extreme Bias"},
		{"max", 100, "Extreme Bias"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BiasTier(tt.score)
			if got.Label != tt.label {
				t.Errorf("BiasTier(%d).Label = %q, want %q", tt.score, got.Label, tt.label)
			}
			if got.Color == "" {
				t.Errorf("BiasTier(%d) has empty color", tt.score)
			}
		})
	}
}

func TestDramaTierBands(t *testing.T) {
	tests := []struct {
		score int
		label string
	}{
		{0, "Calm"},
		{20, "Calm"},
		{21, "Mildly Dramatic"},
		{40, "Mildly Dramatic"},
		{41, "Emotionally Charged"},
		{60, "Emotionally Charged"},
		{61, "Highly Dramatic"},
		{80, "Highly Dramatic"},
		{81, "Sensationalist"},
		{100, "Sensationalist"},
	}

	for _, tt := range tests {
		got := DramaTier(tt.score)
		if got.Label != tt.label {
			t.Errorf("DramaTier(%d).Label = %q, want %q", tt.score, got.Label, tt.label)
		}
	}
}

// Tier severity must never decrease as the score increases.
func TestTiersMonotonic(t *testing.T) {
	rank := func(bands []band, tier Tier) int {
		for i, b := range bands {
			if b.tier.Label == tier.Label {
				return i
			}
		}
		t.Fatalf("unknown tier %q", tier.Label)
		return -1
	}

	prevBias, prevDrama := -1, -1
	for s := 0; s <= 100; s++ {
		if r := rank(biasBands, BiasTier(s)); r < prevBias {
			t.Fatalf("bias tier rank decreased at score %d", s)
		} else {
			prevBias = r
		}
		if r := rank(dramaBands, DramaTier(s)); r < prevDrama {
			t.Fatalf("drama tier rank decreased at score %d", s)
		} else {
			prevDrama = r
		}
	}
}

func TestTierDeterministic(t *testing.T) {
	for s := 0; s <= 100; s++ {
		a, b := BiasTier(s), BiasTier(s)
		if a != b {
			t.Fatalf("BiasTier(%d) not deterministic: %+v vs %+v", s, a, b)
		}
	}
}

func TestTierTotalOutsideDomain(t *testing.T) {
	if got := BiasTier(-5); got.Label != "Minimal Bias" {
		t.Errorf("BiasTier(-5) = %q, want Minimal Bias", got.Label)
	}
	if got := BiasTier(250); got.Label != "Extreme Bias" {
		t.Errorf("BiasTier(250) = %q, want Extreme Bias", got.Label)
	}
	if got := DramaTier(-1); got.Label != "Calm" {
		t.Errorf("DramaTier(-1) = %q, want Calm", got.Label)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ in, want int }{
		{-10, 0}, {0, 0}, {50, 50}, {100, 100}, {140, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
