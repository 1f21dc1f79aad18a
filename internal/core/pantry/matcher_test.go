package pantry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-ingest/internal/pkg/common"
)

func ing(name string, optional bool) common.Ingredient {
	return common.Ingredient{
		Name:           name,
		NormalizedName: name,
		Provenance:     common.ProvenanceDetected,
		Confidence:     0.9,
		IsOptional:     optional,
	}
}

func item(name string, updated time.Time) common.InventoryItem {
	return common.InventoryItem{
		Name:           name,
		NormalizedName: name,
		UpdatedAt:      updated,
	}
}

func TestMatchExactAndSubstring(t *testing.T) {
	now := time.Now()
	inventory := []common.InventoryItem{
		item("flour", now),
		item("green onion", now),
		item("sea salt", now),
	}

	ingredients := []common.Ingredient{
		ing("flour", false),      // 精確命中
		ing("onion", false),      // 子字串命中 green onion
		ing("salt", false),       // 子字串命中 sea salt
		ing("heavy cream", false), // 未命中
	}

	result := Match(ingredients, inventory)

	assert.Equal(t, 3, result.Have)
	assert.Equal(t, 1, result.Need)
	assert.Equal(t, 75, result.MatchPercentage)
	require.Len(t, result.MissingIngredients, 1)
	assert.Equal(t, "heavy cream", result.MissingIngredients[0].Name)
	assert.Len(t, result.AvailableIngredients, 3)
}

func TestMatchOptionalExcludedFromDenominator(t *testing.T) {
	now := time.Now()
	inventory := []common.InventoryItem{item("flour", now)}

	ingredients := []common.Ingredient{
		ing("flour", false),
		ing("saffron", true), // 可選，不進分母但仍列入 missing
	}

	result := Match(ingredients, inventory)

	assert.Equal(t, 1, result.Have)
	assert.Equal(t, 0, result.Need)
	assert.Equal(t, 100, result.MatchPercentage)
	require.Len(t, result.MissingIngredients, 1)
	assert.Equal(t, "saffron", result.MissingIngredients[0].Name)
}

func TestMatchPercentageBounds(t *testing.T) {
	// 無食材時定義為 0，不是 NaN
	result := Match(nil, nil)
	assert.Equal(t, 0, result.MatchPercentage)
	assert.Equal(t, 0, result.Have)
	assert.Equal(t, 0, result.Need)

	// 全部為可選時分母為 0，同樣定義為 0
	result = Match([]common.Ingredient{ing("saffron", true)}, nil)
	assert.Equal(t, 0, result.MatchPercentage)

	// 半數進位
	assert.Equal(t, 67, matchPercentage(2, 1))
	assert.Equal(t, 33, matchPercentage(1, 2))
	assert.Equal(t, 50, matchPercentage(1, 1))
	assert.Equal(t, 100, matchPercentage(5, 0))
	assert.Equal(t, 0, matchPercentage(0, 5))
}

func TestMatchEmptyNormalizedNameNeverMatches(t *testing.T) {
	// 空的正規化名稱不能靠子字串規則萬用命中
	now := time.Now()
	inventory := []common.InventoryItem{item("flour", now)}

	blank := common.Ingredient{Name: "???", NormalizedName: ""}
	result := Match([]common.Ingredient{blank}, inventory)

	assert.Equal(t, 0, result.Have)
	assert.Equal(t, 1, result.Need)
	assert.Len(t, result.MissingIngredients, 1)
}

func TestMatchPercentageRange(t *testing.T) {
	// 任意組合下百分比都必須落在 [0,100]
	for have := 0; have <= 10; have++ {
		for need := 0; need <= 10; need++ {
			p := matchPercentage(have, need)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
}
