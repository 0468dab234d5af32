package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := DefaultClassifier()
	tests := []struct {
		attr float64
		want Tier
	}{
		{0, TierLow},
		{-5, TierLow},
		{50000, TierLow},
		{99999, TierLow},
		{100000, TierMid},
		{150000, TierMid},
		{199999, TierMid},
		{200000, TierHigh},
		{250000, TierHigh},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, c.Classify(tt.attr), "attribute %v", tt.attr)
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	c := Classifier{MidFrom: 10, HighFrom: 20}
	assert.Equal(t, TierLow, c.Classify(9.99))
	assert.Equal(t, TierMid, c.Classify(10))
	assert.Equal(t, TierHigh, c.Classify(20))
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "low", TierLow.String())
	assert.Equal(t, "mid", TierMid.String())
	assert.Equal(t, "high", TierHigh.String())
	assert.Equal(t, "unknown", Tier(9).String())
}
