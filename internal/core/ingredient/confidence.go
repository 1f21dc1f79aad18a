package ingredient

import (
	"pantry-ingest/internal/pkg/common"
)

// 信心分級門檻（固定常數，不開放執行期調整）
const (
	TierHighThreshold   = 0.80 // confidence >= 0.80 → high
	TierMediumThreshold = 0.60 // 0.60 <= confidence < 0.80 → medium
)

// Tier 信心分級
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Classification 信心分級結果與對應的把關策略
type Classification struct {
	Tier                 Tier `json:"tier"`                  // 數值分級，決定把關策略
	DisplayTier          Tier `json:"display_tier"`          // 顯示給使用者的分級
	RequiresConfirmation bool `json:"requires_confirmation"` // medium/low 需要使用者確認
	BlocksAutoMatch      bool `json:"blocks_auto_match"`     // low 在確認或編輯前不得自動比對庫存
}

// Classify 將數值信心加來源標記映射為離散分級
// user_edited 一律視為 1.0；creator_provided 依政策顯示為 high，
// 但把關策略仍由數值分級決定
func Classify(confidence float64, provenance common.Provenance) Classification {
	if provenance == common.ProvenanceUserEdited {
		confidence = 1.0
	}
	confidence = common.Clamp01(confidence)

	var tier Tier
	switch {
	case confidence >= TierHighThreshold:
		tier = TierHigh
	case confidence >= TierMediumThreshold:
		tier = TierMedium
	default:
		tier = TierLow
	}

	display := tier
	if provenance == common.ProvenanceCreator {
		display = TierHigh
	}

	return Classification{
		Tier:                 tier,
		DisplayTier:          display,
		RequiresConfirmation: tier != TierHigh,
		BlocksAutoMatch:      tier == TierLow,
	}
}

// ClassifyIngredient 以食材實際生效的信心分數做分級
func ClassifyIngredient(ing common.Ingredient) Classification {
	return Classify(ing.EffectiveConfidence(), ing.Provenance)
}
