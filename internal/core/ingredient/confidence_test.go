package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pantry-ingest/internal/pkg/common"
)

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name        string
		confidence  float64
		wantTier    Tier
		wantConfirm bool
		wantBlocks  bool
	}{
		{"滿分", 1.0, TierHigh, false, false},
		{"恰好在 high 門檻上", 0.80, TierHigh, false, false},
		{"略低於 high 門檻", 0.799, TierMedium, true, false},
		{"恰好在 medium 門檻上", 0.60, TierMedium, true, false},
		{"略低於 medium 門檻", 0.599, TierLow, true, true},
		{"零分", 0.0, TierLow, true, true},
		{"超界分數夾回範圍", 1.5, TierHigh, false, false},
		{"負分夾回範圍", -0.3, TierLow, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.confidence, common.ProvenanceDetected)
			assert.Equal(t, tt.wantTier, c.Tier)
			assert.Equal(t, tt.wantTier, c.DisplayTier) // detected 不改寫顯示分級
			assert.Equal(t, tt.wantConfirm, c.RequiresConfirmation)
			assert.Equal(t, tt.wantBlocks, c.BlocksAutoMatch)
		})
	}
}

func TestClassifyUserEditedAlwaysHigh(t *testing.T) {
	// 人工確認過的值不論數值欄位存了什麼，一律 1.0 / high
	for _, conf := range []float64{0.0, 0.3, 0.59, 0.79, 1.0} {
		c := Classify(conf, common.ProvenanceUserEdited)
		assert.Equal(t, TierHigh, c.Tier, "confidence: %v", conf)
		assert.False(t, c.RequiresConfirmation)
		assert.False(t, c.BlocksAutoMatch)
	}
}

func TestClassifyCreatorDisplayPolicy(t *testing.T) {
	// creator_provided 依政策顯示為 high，但把關策略仍由數值分級決定
	c := Classify(0.55, common.ProvenanceCreator)
	assert.Equal(t, TierLow, c.Tier)
	assert.Equal(t, TierHigh, c.DisplayTier)
	assert.True(t, c.RequiresConfirmation)
	assert.True(t, c.BlocksAutoMatch)

	c = Classify(0.70, common.ProvenanceCreator)
	assert.Equal(t, TierMedium, c.Tier)
	assert.Equal(t, TierHigh, c.DisplayTier)
	assert.True(t, c.RequiresConfirmation)
	assert.False(t, c.BlocksAutoMatch)
}

func TestClassifyIngredientUsesEffectiveConfidence(t *testing.T) {
	ing := common.Ingredient{
		Name:           "flour",
		NormalizedName: "flour",
		Confidence:     0.2, // 數值欄位殘留舊分數
		Provenance:     common.ProvenanceUserEdited,
	}
	c := ClassifyIngredient(ing)
	assert.Equal(t, TierHigh, c.Tier)
	assert.InDelta(t, 1.0, ing.EffectiveConfidence(), 1e-9)
}
