package recipe

import (
	"pantry-ingest/internal/core/ingredient"
	"pantry-ingest/internal/pkg/common"
)

// ImportedIngredient 匯入後的食材，附帶信心分級
type ImportedIngredient struct {
	common.Ingredient
	Classification ingredient.Classification `json:"classification"`
}

// ParseFailure 解析失敗的草稿行，回報給前端但不落地
type ParseFailure struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// CookCard 從社群連結匯入的食譜卡片
// 這是匯入流程的最終產物，前端據此渲染確認畫面
type CookCard struct {
	Source               common.RecipeSource  `json:"source"`
	Title                string               `json:"title"`
	Ingredients          []ImportedIngredient `json:"ingredients"`
	ParseFailures        []ParseFailure       `json:"parse_failures,omitempty"`
	RequiresConfirmation bool                 `json:"requires_confirmation"`
}

// Ingredient 食材結構
type Ingredient = common.Ingredient

// InventoryItem 庫存項目
type InventoryItem = common.InventoryItem
