package pantry

import (
	"math"
	"strings"

	"pantry-ingest/internal/pkg/common"
)

// Match 將食譜食材與庫存快照做單向比對
// 先做正規化名稱的精確比對，再退回雙向子字串比對；同一食材命中多筆
// 庫存時，以最近更新的庫存項目為準。isOptional 的食材不進百分比分母，
// 但仍會出現在 available/missing 分區中。
func Match(ingredients []common.Ingredient, inventory []common.InventoryItem) common.PantryMatch {
	result := common.PantryMatch{
		MissingIngredients:   make([]common.Ingredient, 0, len(ingredients)),
		AvailableIngredients: make([]common.Ingredient, 0, len(ingredients)),
	}

	// 精確比對索引：同名取最近更新者
	exact := make(map[string]common.InventoryItem, len(inventory))
	for _, item := range inventory {
		key := item.NormalizedName
		if key == "" {
			continue
		}
		if existing, ok := exact[key]; !ok || item.UpdatedAt.After(existing.UpdatedAt) {
			exact[key] = item
		}
	}

	for _, ing := range ingredients {
		if matchOne(ing, exact, inventory) {
			result.AvailableIngredients = append(result.AvailableIngredients, ing)
			if !ing.IsOptional {
				result.Have++
			}
		} else {
			result.MissingIngredients = append(result.MissingIngredients, ing)
			if !ing.IsOptional {
				result.Need++
			}
		}
	}

	result.MatchPercentage = matchPercentage(result.Have, result.Need)
	return result
}

// matchOne 回報單一食材是否能在庫存中找到
func matchOne(ing common.Ingredient, exact map[string]common.InventoryItem, inventory []common.InventoryItem) bool {
	name := ing.NormalizedName
	if name == "" {
		return false
	}

	if _, ok := exact[name]; ok {
		return true
	}

	// 子字串退路：庫存名稱包含食材名稱，或反向包含
	found := false
	var best common.InventoryItem
	for _, item := range inventory {
		if item.NormalizedName == "" {
			continue
		}
		if strings.Contains(item.NormalizedName, name) || strings.Contains(name, item.NormalizedName) {
			if !found || item.UpdatedAt.After(best.UpdatedAt) {
				best = item
				found = true
			}
		}
	}
	return found
}

// matchPercentage 四捨五入（半數進位）的整數百分比，無非必選食材時定義為 0
func matchPercentage(have, need int) int {
	total := have + need
	if total == 0 {
		return 0
	}
	return int(math.Floor(100*float64(have)/float64(total) + 0.5))
}
