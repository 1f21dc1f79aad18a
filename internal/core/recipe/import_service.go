package recipe

import (
	"context"
	"net/http"

	"pantry-ingest/internal/core/ingest"
	"pantry-ingest/internal/core/ingredient"
	"pantry-ingest/internal/core/pantry"
	"pantry-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// DraftExtractor 抽取端介面，由 extraction.Service 實作
type DraftExtractor interface {
	ExtractDraft(ctx context.Context, source common.RecipeSource) (*common.RecipeDraft, error)
}

// ImportService 食譜匯入服務
// 流程：驗證連結 -> 抽取草稿 -> 逐行正規化 -> 信心分級
type ImportService struct {
	extractor DraftExtractor
	estimator *pantry.Estimator
}

// NewImportService 創建新的食譜匯入服務
func NewImportService(extractor DraftExtractor, estimator *pantry.Estimator) *ImportService {
	return &ImportService{
		extractor: extractor,
		estimator: estimator,
	}
}

// ValidateURL 驗證並正規化一個食譜連結
func (s *ImportService) ValidateURL(rawURL string) ingest.ValidationResult {
	return ingest.ValidateRecipeURL(rawURL)
}

// ImportRecipe 從社群連結匯入一張食譜卡片
func (s *ImportService) ImportRecipe(ctx context.Context, rawURL string) (*CookCard, error) {
	result := ingest.ValidateRecipeURL(rawURL)
	if !result.IsValid {
		return nil, common.NewError(result.ErrorCode, result.ErrorMessage, http.StatusBadRequest, nil)
	}

	source := result.Source()
	draft, err := s.extractor.ExtractDraft(ctx, *source)
	if err != nil {
		return nil, err
	}

	card := &CookCard{
		Source:      *source,
		Title:       draft.Title,
		Ingredients: make([]ImportedIngredient, 0, len(draft.Ingredients)),
	}

	// 逐行正規化：sort order 依抽取順序，解析失敗的行回報但不落地
	sortOrder := 0
	for _, raw := range draft.Ingredients {
		ing, err := ingredient.NormalizeDraft(raw, sortOrder)
		if err != nil {
			card.ParseFailures = append(card.ParseFailures, ParseFailure{
				Text:   raw.Text,
				Reason: err.Error(),
			})
			continue
		}
		sortOrder++

		cls := ingredient.ClassifyIngredient(ing)
		if cls.RequiresConfirmation {
			card.RequiresConfirmation = true
		}
		card.Ingredients = append(card.Ingredients, ImportedIngredient{
			Ingredient:     ing,
			Classification: cls,
		})
	}

	common.LogInfo("食譜匯入完成",
		zap.String("platform", string(source.Platform)),
		zap.Int("ingredients_count", len(card.Ingredients)),
		zap.Int("parse_failures", len(card.ParseFailures)),
		zap.Bool("requires_confirmation", card.RequiresConfirmation),
	)

	return card, nil
}

// NormalizeIngredients 正規化一批原始食材草稿
// 回傳成功的食材與失敗的行，供手動輸入與重新整理使用
func (s *ImportService) NormalizeIngredients(drafts []common.RawIngredientDraft) ([]ImportedIngredient, []ParseFailure) {
	ingredients := make([]ImportedIngredient, 0, len(drafts))
	var failures []ParseFailure

	sortOrder := 0
	for _, raw := range drafts {
		ing, err := ingredient.NormalizeDraft(raw, sortOrder)
		if err != nil {
			failures = append(failures, ParseFailure{
				Text:   raw.Text,
				Reason: err.Error(),
			})
			continue
		}
		sortOrder++
		ingredients = append(ingredients, ImportedIngredient{
			Ingredient:     ing,
			Classification: ingredient.ClassifyIngredient(ing),
		})
	}

	return ingredients, failures
}

// EditIngredient 套用使用者對單一食材的修改
// 修改後 provenance 轉為 user_edited，信心一律 1.0
func (s *ImportService) EditIngredient(ing common.Ingredient, edit ingredient.UserEdit) (ImportedIngredient, error) {
	edited, err := ingredient.ApplyUserEdit(ing, edit)
	if err != nil {
		return ImportedIngredient{}, err
	}
	return ImportedIngredient{
		Ingredient:     edited,
		Classification: ingredient.ClassifyIngredient(edited),
	}, nil
}

// SubstituteIngredient 以替代食材取代原食材，保留替代脈絡
func (s *ImportService) SubstituteIngredient(ing common.Ingredient, substituteName, rationale string) (ImportedIngredient, error) {
	substituted, err := ingredient.ApplySubstitution(ing, substituteName, rationale)
	if err != nil {
		return ImportedIngredient{}, err
	}
	return ImportedIngredient{
		Ingredient:     substituted,
		Classification: ingredient.ClassifyIngredient(substituted),
	}, nil
}

// AutoMatch 自動比對食譜卡片與庫存
// 低信心食材先排除，待使用者確認後才參與比對
func (s *ImportService) AutoMatch(card *CookCard, inventory []common.InventoryItem) common.PantryMatch {
	matchable := make([]common.Ingredient, 0, len(card.Ingredients))
	excluded := 0
	for _, imported := range card.Ingredients {
		if imported.Classification.BlocksAutoMatch {
			excluded++
			continue
		}
		matchable = append(matchable, imported.Ingredient)
	}

	if excluded > 0 {
		common.LogInfo("低信心食材已排除自動比對",
			zap.Int("excluded_count", excluded),
		)
	}

	return pantry.Match(matchable, inventory)
}

// MatchPantry 比對任意食材清單與庫存，不做信心過濾
// 供使用者確認後的重新比對使用
func (s *ImportService) MatchPantry(ingredients []common.Ingredient, inventory []common.InventoryItem) common.PantryMatch {
	return pantry.Match(ingredients, inventory)
}

// EstimateCost 估算缺少食材的採買成本
func (s *ImportService) EstimateCost(missing []common.Ingredient, catalog pantry.PriceCatalog) common.CostRange {
	return s.estimator.Estimate(missing, catalog)
}
