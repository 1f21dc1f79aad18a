package pantry

import (
	"sort"

	"pantry-ingest/internal/pkg/common"
)

// DefaultPriceWindowDays 價格目錄的預設回溯天數
const DefaultPriceWindowDays = 60

// PriceRange 價格目錄中一個正規化名稱的歷史價格區間
type PriceRange struct {
	MinCents int64  `json:"min_cents"`
	MaxCents int64  `json:"max_cents"`
	Store    string `json:"store,omitempty"`
}

// PriceCatalog 外部價格協作者：正規化食材名稱對應回溯窗口內的價格區間
type PriceCatalog interface {
	Lookup(normalizedName string) (PriceRange, bool)
}

// Estimator 缺少食材的成本估算器
type Estimator struct {
	currency   string
	windowDays int
}

// NewEstimator 創建成本估算器，空值採用預設幣別與窗口
func NewEstimator(currency string, windowDays int) *Estimator {
	if currency == "" {
		currency = "USD"
	}
	if windowDays <= 0 {
		windowDays = DefaultPriceWindowDays
	}
	return &Estimator{
		currency:   currency,
		windowDays: windowDays,
	}
}

// Estimate 對缺少的食材加總價格區間
// 目錄查不到任何一筆時返回零寬區間 {0,0} 且信心為 0，不視為錯誤
// 不變量：MinCents <= MaxCents 恆成立
func (e *Estimator) Estimate(missing []common.Ingredient, catalog PriceCatalog) common.CostRange {
	result := common.CostRange{
		Currency:       e.currency,
		Stores:         []string{},
		TimePeriodDays: e.windowDays,
	}

	if len(missing) == 0 || catalog == nil {
		return result
	}

	covered := 0
	storeSet := make(map[string]bool)

	for _, ing := range missing {
		pr, ok := catalog.Lookup(ing.NormalizedName)
		if !ok {
			continue
		}

		lo, hi := pr.MinCents, pr.MaxCents
		if hi < lo {
			lo, hi = hi, lo
		}
		if lo < 0 {
			lo = 0
		}
		if hi < 0 {
			hi = 0
		}

		result.MinCents += lo
		result.MaxCents += hi
		covered++

		if pr.Store != "" {
			storeSet[pr.Store] = true
		}
	}

	if covered == 0 {
		return common.CostRange{
			Currency:       e.currency,
			Stores:         []string{},
			TimePeriodDays: e.windowDays,
		}
	}

	for store := range storeSet {
		result.Stores = append(result.Stores, store)
	}
	sort.Strings(result.Stores)

	// 信心 = 有目錄價格覆蓋的缺少食材占比
	result.Confidence = common.Clamp01(float64(covered) / float64(len(missing)))
	return result
}

// StaticCatalog 以固定映射實作價格目錄，測試與邊緣函式的記憶體來源
type StaticCatalog map[string]PriceRange

// Lookup 實作 PriceCatalog
func (c StaticCatalog) Lookup(normalizedName string) (PriceRange, bool) {
	pr, ok := c[normalizedName]
	return pr, ok
}
