package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/awardpilot/awardpilot/internal/value"
)

func TestCentsPerMile(t *testing.T) {
	tests := []struct {
		name      string
		cashPrice float64
		miles     int
		expected  float64
	}{
		{"typical transatlantic", 612, 22500, 2.72},
		{"round number", 450, 30000, 1.5},
		{"rounds to two decimals", 333, 27000, 1.23},
		{"zero price", 0, 22500, 0},
		{"zero miles", 612, 0, 0},
		{"negative price", -50, 22500, 0},
		{"negative miles", 612, -1, 0},
		{"high value redemption", 1800, 35000, 5.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, value.CentsPerMile(tt.cashPrice, tt.miles), 0.0001)
		})
	}
}

func TestNetCentsPerMile(t *testing.T) {
	tests := []struct {
		name      string
		cashPrice float64
		fees      float64
		miles     int
		expected  float64
	}{
		{"no fees matches gross", 612, 0, 22500, 2.72},
		{"fees reduce value", 612, 112, 22500, 2.22},
		{"fees equal price floors at zero", 300, 300, 22500, 0},
		{"fees exceed price floors at zero", 300, 450, 22500, 0},
		{"zero miles", 612, 50, 0, 0},
		{"zero price", 0, 50, 22500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := value.NetCentsPerMile(tt.cashPrice, tt.fees, tt.miles)
			assert.InDelta(t, tt.expected, got, 0.0001)
			assert.GreaterOrEqual(t, got, 0.0, "net CPP must never go negative")
		})
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name      string
		cpp       float64
		threshold float64
		expected  value.Tier
	}{
		{"zero cpp is unknown", 0, 1.5, value.TierUnknown},
		{"negative cpp is unknown", -0.5, 1.5, value.TierUnknown},
		{"below one cent is poor", 0.8, 1.5, value.TierPoor},
		{"exactly one cent is decent", 1.0, 1.5, value.TierDecent},
		{"below threshold is decent", 1.49, 1.5, value.TierDecent},
		{"at threshold is good", 1.5, 1.5, value.TierGood},
		{"below excellent floor is good", 2.24, 1.5, value.TierGood},
		{"at 1.5x threshold is excellent", 2.25, 1.5, value.TierExcellent},
		{"well above is excellent", 5.0, 1.5, value.TierExcellent},
		{"custom threshold good band", 2.1, 2.0, value.TierGood},
		{"degenerate threshold below one", 0.9, 0.5, value.TierExcellent},
		{"degenerate threshold poor band", 0.3, 0.5, value.TierPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, value.TierFor(tt.cpp, tt.threshold).Tier)
		})
	}
}

// Bands must be contiguous and exhaustive: every non-negative cpp maps to
// exactly one tier, with boundaries closed on the lower bound.
func TestTierFor_BandsExhaustive(t *testing.T) {
	threshold := 1.5
	for cpp := 0.0; cpp <= 6.0; cpp += 0.01 {
		v := value.TierFor(cpp, threshold)
		assert.NotEmpty(t, v.Tier)
		assert.NotEmpty(t, v.Label)
		assert.NotEmpty(t, v.Indicator)
	}
}

// The end-to-end example from the route OPO->ORD: $612 cash against a 22,500
// mile award at a 1.5 cent threshold values at 2.72 cpm, which clears the
// excellent floor of 2.25.
func TestTierFor_EndToEndExample(t *testing.T) {
	cpp := value.CentsPerMile(612, 22500)
	assert.InDelta(t, 2.72, cpp, 0.0001)

	v := value.TierFor(cpp, 1.5)
	assert.Equal(t, value.TierExcellent, v.Tier)
}
