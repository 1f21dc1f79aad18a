package ingest

import (
	"net/http"

	recipeService "pantry-ingest/internal/core/recipe"
	"pantry-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// NormalizeIngredientsRequest 正規化一批原始食材文字的請求
// 供手動輸入與前端重新整理草稿使用
type NormalizeIngredientsRequest struct {
	Ingredients []common.RawIngredientDraft `json:"ingredients"`
}

// NormalizeIngredientsResponse 正規化結果
type NormalizeIngredientsResponse struct {
	Ingredients   []recipeService.ImportedIngredient `json:"ingredients"`
	ParseFailures []recipeService.ParseFailure       `json:"parse_failures,omitempty"`
}

// HandleNormalizeIngredients 正規化一批食材文字
func HandleNormalizeIngredients(importService *recipeService.ImportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NormalizeIngredientsRequest
		if err := common.DecodeJSON(r.Body, &req); err != nil {
			common.LogError("請求格式無效", zap.Error(err))
			common.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if len(req.Ingredients) == 0 {
			common.WriteErrorResponse(w, http.StatusBadRequest, "ingredients must not be empty")
			return
		}

		ingredients, failures := importService.NormalizeIngredients(req.Ingredients)

		common.LogInfo("食材正規化完成",
			zap.Int("normalized_count", len(ingredients)),
			zap.Int("parse_failures", len(failures)),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := common.WriteJSON(w, NormalizeIngredientsResponse{
			Ingredients:   ingredients,
			ParseFailures: failures,
		}); err != nil {
			common.LogError("寫入響應失敗", zap.Error(err))
		}
	}
}
