package common

import (
	"fmt"
	"strings"
	"time"
)

// Platform 支援的來源平台
type Platform string

const (
	PlatformYouTube     Platform = "youtube"
	PlatformInstagram   Platform = "instagram"
	PlatformTikTok      Platform = "tiktok"
	PlatformXiaohongshu Platform = "xiaohongshu"
	PlatformUnknown     Platform = "unknown"
)

// RecipeSource 食譜來源，驗證通過後不可變
type RecipeSource struct {
	URL      string   `json:"url"`      // 正規化後的 URL
	Platform Platform `json:"platform"` // 來源平台
}

// ExtractionMethod 食材草稿的抽取方式
type ExtractionMethod string

const (
	MethodMetadata ExtractionMethod = "metadata" // 純 metadata 樣式比對
	MethodCreator  ExtractionMethod = "creator"  // 創作者提供的文字
	MethodModel    ExtractionMethod = "model"    // 模型輔助抽取
	MethodManual   ExtractionMethod = "manual"   // 使用者手動輸入
)

// Provenance 資料值的來源
type Provenance string

const (
	ProvenanceCreator      Provenance = "creator_provided"
	ProvenanceDetected     Provenance = "detected"
	ProvenanceUserEdited   Provenance = "user_edited"
	ProvenanceSubstitution Provenance = "substitution"
)

// RawIngredientDraft 抽取端回傳的原始食材草稿
type RawIngredientDraft struct {
	Text            string           `json:"text"`
	Method          ExtractionMethod `json:"method"`
	ModelConfidence *float64         `json:"model_confidence,omitempty"` // 模型自報分數，僅 method=model 有意義
}

// Ingredient 正規化後的食譜食材
type Ingredient struct {
	Name                  string     `json:"name"`
	NormalizedName        string     `json:"normalized_name"` // 僅用於比對，不顯示給使用者
	Amount                *float64   `json:"amount,omitempty"`
	Unit                  string     `json:"unit,omitempty"` // 受控單位詞彙表中的 token
	Preparation           string     `json:"preparation,omitempty"`
	Confidence            float64    `json:"confidence"` // [0.0, 1.0]
	Provenance            Provenance `json:"provenance"`
	SortOrder             int        `json:"sort_order"`
	IsOptional            bool       `json:"is_optional"`
	SubstitutionFor       string     `json:"substitution_for,omitempty"`       // provenance=substitution 時必填
	SubstitutionRationale string     `json:"substitution_rationale,omitempty"` // provenance=substitution 時必填
}

// EffectiveConfidence 回傳實際生效的信心分數
// user_edited 代表人工確認過，一律視為 1.0
func (i Ingredient) EffectiveConfidence() float64 {
	if i.Provenance == ProvenanceUserEdited {
		return 1.0
	}
	return Clamp01(i.Confidence)
}

// InventoryItem 使用者庫存快照中的一筆項目
type InventoryItem struct {
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PantryMatch 食譜食材與庫存的比對結果，衍生值不落地
type PantryMatch struct {
	Have                 int          `json:"have"`
	Need                 int          `json:"need"`
	MatchPercentage      int          `json:"match_percentage"` // [0, 100]
	MissingIngredients   []Ingredient `json:"missing_ingredients"`
	AvailableIngredients []Ingredient `json:"available_ingredients"`
}

// CostRange 缺少食材的成本區間估算，衍生值不落地
type CostRange struct {
	MinCents       int64    `json:"min_cents"`
	MaxCents       int64    `json:"max_cents"`
	Currency       string   `json:"currency"`
	Stores         []string `json:"stores"`
	TimePeriodDays int      `json:"time_period_days"`
	Confidence     float64  `json:"confidence"` // [0, 1]
}

// RecipeDraft 抽取端回傳的整份食譜草稿
type RecipeDraft struct {
	Title       string               `json:"title"`
	Ingredients []RawIngredientDraft `json:"ingredients"`
}

// Clamp01 將數值夾在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FormatIngredients 格式化食材列表（日誌與除錯用）
func FormatIngredients(ingredients []Ingredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		if ing.Amount != nil {
			sb.WriteString(fmt.Sprintf("- %s: %g%s", ing.Name, *ing.Amount, ing.Unit))
		} else {
			sb.WriteString(fmt.Sprintf("- %s", ing.Name))
		}
		if ing.Preparation != "" {
			sb.WriteString(fmt.Sprintf(", %s", ing.Preparation))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
