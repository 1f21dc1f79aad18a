package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-ingest/internal/core/ingredient"
	"pantry-ingest/internal/core/pantry"
	"pantry-ingest/internal/pkg/common"
)

func init() {
	if common.Logger == nil {
		_ = common.InitLogger("error")
	}
}

// stubExtractor 固定回傳預先準備的草稿
type stubExtractor struct {
	draft *common.RecipeDraft
	err   error
}

func (s *stubExtractor) ExtractDraft(ctx context.Context, source common.RecipeSource) (*common.RecipeDraft, error) {
	return s.draft, s.err
}

func floatPtr(v float64) *float64 {
	return &v
}

func newTestService(draft *common.RecipeDraft) *ImportService {
	return NewImportService(&stubExtractor{draft: draft}, pantry.NewEstimator("USD", 60))
}

func TestImportRecipeBuildsCookCard(t *testing.T) {
	draft := &common.RecipeDraft{
		Title: "Garlic Butter Pasta",
		Ingredients: []common.RawIngredientDraft{
			{Text: "2 cups flour", Method: common.MethodCreator},
			{Text: "3 cloves garlic, minced", Method: common.MethodModel, ModelConfidence: floatPtr(0.85)},
			{Text: "salt to taste", Method: common.MethodMetadata},
		},
	}

	card, err := newTestService(draft).ImportRecipe(context.Background(), "https://www.youtube.com/watch?v=abc123")
	require.NoError(t, err)

	assert.Equal(t, "Garlic Butter Pasta", card.Title)
	assert.Equal(t, common.PlatformYouTube, card.Source.Platform)
	require.Len(t, card.Ingredients, 3)
	assert.Empty(t, card.ParseFailures)

	// sort order 依抽取順序
	for i, imported := range card.Ingredients {
		assert.Equal(t, i, imported.SortOrder)
	}

	// creator 0.90 → high、model 0.85 → high、metadata 0.60 → medium
	assert.Equal(t, ingredient.TierHigh, card.Ingredients[0].Classification.Tier)
	assert.Equal(t, ingredient.TierHigh, card.Ingredients[1].Classification.Tier)
	assert.Equal(t, ingredient.TierMedium, card.Ingredients[2].Classification.Tier)

	// 有 medium 食材時整張卡片需要確認
	assert.True(t, card.RequiresConfirmation)
}

func TestImportRecipeRejectsInvalidURL(t *testing.T) {
	svc := newTestService(&common.RecipeDraft{})

	_, err := svc.ImportRecipe(context.Background(), "https://example.com/recipe")
	require.Error(t, err)

	customErr, ok := err.(*common.CustomError)
	require.True(t, ok)
	assert.Equal(t, common.ErrCodeUnsupportedPlatform, customErr.Code)
}

func TestImportRecipeReportsParseFailures(t *testing.T) {
	draft := &common.RecipeDraft{
		Title: "Mystery Dish",
		Ingredients: []common.RawIngredientDraft{
			{Text: "2 cups flour", Method: common.MethodCreator},
			{Text: "2 cups", Method: common.MethodModel, ModelConfidence: floatPtr(0.9)}, // 只有數量沒有名稱
			{Text: "1 tsp salt", Method: common.MethodCreator},
		},
	}

	card, err := newTestService(draft).ImportRecipe(context.Background(), "https://www.tiktok.com/@cook/video/123")
	require.NoError(t, err)

	// 解析失敗的行回報但不落地，sort order 不留空洞
	require.Len(t, card.Ingredients, 2)
	require.Len(t, card.ParseFailures, 1)
	assert.Equal(t, "2 cups", card.ParseFailures[0].Text)
	assert.Equal(t, 0, card.Ingredients[0].SortOrder)
	assert.Equal(t, 1, card.Ingredients[1].SortOrder)
}

func TestAutoMatchExcludesLowConfidence(t *testing.T) {
	svc := newTestService(nil)

	card := &CookCard{
		Ingredients: []ImportedIngredient{
			{
				Ingredient: common.Ingredient{
					Name:           "Flour",
					NormalizedName: "flour",
					Confidence:     0.95,
					Provenance:     common.ProvenanceDetected,
				},
				Classification: ingredient.Classify(0.95, common.ProvenanceDetected),
			},
			{
				Ingredient: common.Ingredient{
					Name:           "Butter",
					NormalizedName: "butter",
					Confidence:     0.40,
					Provenance:     common.ProvenanceDetected,
				},
				Classification: ingredient.Classify(0.40, common.ProvenanceDetected),
			},
		},
	}

	inventory := []common.InventoryItem{
		{Name: "Flour", NormalizedName: "flour", UpdatedAt: time.Now()},
		{Name: "Butter", NormalizedName: "butter", UpdatedAt: time.Now()},
	}

	// 低信心的 butter 被排除，即使庫存裡有
	match := svc.AutoMatch(card, inventory)
	assert.Equal(t, 1, match.Have)
	assert.Equal(t, 0, match.Need)
	assert.Equal(t, 100, match.MatchPercentage)

	// 使用者確認後走 MatchPantry，不做信心過濾
	confirmed := []common.Ingredient{
		card.Ingredients[0].Ingredient,
		card.Ingredients[1].Ingredient,
	}
	match = svc.MatchPantry(confirmed, inventory)
	assert.Equal(t, 2, match.Have)
}

func TestNormalizeIngredientsSeparatesFailures(t *testing.T) {
	svc := newTestService(nil)

	drafts := []common.RawIngredientDraft{
		{Text: "1 cup sugar", Method: common.MethodManual},
		{Text: "   ", Method: common.MethodManual},
	}

	ingredients, failures := svc.NormalizeIngredients(drafts)
	require.Len(t, ingredients, 1)
	require.Len(t, failures, 1)

	// manual 輸入信心 1.0，不需要確認
	assert.InDelta(t, 1.0, ingredients[0].Confidence, 1e-9)
	assert.False(t, ingredients[0].Classification.RequiresConfirmation)
}
