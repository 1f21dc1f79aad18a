package pantry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pantry-ingest/internal/pkg/common"
)

func TestEstimateSumsRanges(t *testing.T) {
	catalog := StaticCatalog{
		"flour":  {MinCents: 250, MaxCents: 400, Store: "SuperMart"},
		"butter": {MinCents: 300, MaxCents: 550, Store: "FreshCo"},
	}

	missing := []common.Ingredient{
		ing("flour", false),
		ing("butter", false),
	}

	est := NewEstimator("USD", 60)
	result := est.Estimate(missing, catalog)

	assert.Equal(t, int64(550), result.MinCents)
	assert.Equal(t, int64(950), result.MaxCents)
	assert.Equal(t, "USD", result.Currency)
	assert.Equal(t, 60, result.TimePeriodDays)
	assert.Equal(t, []string{"FreshCo", "SuperMart"}, result.Stores)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	assert.LessOrEqual(t, result.MinCents, result.MaxCents)
}

func TestEstimatePartialCoverage(t *testing.T) {
	catalog := StaticCatalog{
		"flour": {MinCents: 250, MaxCents: 400, Store: "SuperMart"},
	}

	missing := []common.Ingredient{
		ing("flour", false),
		ing("saffron", false), // 目錄查不到
	}

	result := NewEstimator("USD", 60).Estimate(missing, catalog)

	assert.Equal(t, int64(250), result.MinCents)
	assert.Equal(t, int64(400), result.MaxCents)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestEstimateZeroWidthFallback(t *testing.T) {
	// 無缺少食材或目錄全數未命中時返回零寬區間，信心 0，不是錯誤
	est := NewEstimator("USD", 60)

	result := est.Estimate(nil, StaticCatalog{})
	assert.Equal(t, int64(0), result.MinCents)
	assert.Equal(t, int64(0), result.MaxCents)
	assert.InDelta(t, 0.0, result.Confidence, 1e-9)

	result = est.Estimate([]common.Ingredient{ing("saffron", false)}, StaticCatalog{})
	assert.Equal(t, int64(0), result.MinCents)
	assert.Equal(t, int64(0), result.MaxCents)
	assert.InDelta(t, 0.0, result.Confidence, 1e-9)
	assert.Empty(t, result.Stores)
	assert.LessOrEqual(t, result.MinCents, result.MaxCents)
}

func TestEstimateNormalizesBadCatalogRanges(t *testing.T) {
	// 目錄若回傳反向或負值區間，估算端修正後仍須維持 min <= max
	catalog := StaticCatalog{
		"flour":  {MinCents: 400, MaxCents: 250},
		"butter": {MinCents: -100, MaxCents: 300},
	}

	missing := []common.Ingredient{
		ing("flour", false),
		ing("butter", false),
	}

	result := NewEstimator("USD", 60).Estimate(missing, catalog)

	assert.Equal(t, int64(250), result.MinCents)
	assert.Equal(t, int64(700), result.MaxCents)
	assert.LessOrEqual(t, result.MinCents, result.MaxCents)
}

func TestNewEstimatorDefaults(t *testing.T) {
	est := NewEstimator("", 0)
	result := est.Estimate(nil, nil)
	assert.Equal(t, "USD", result.Currency)
	assert.Equal(t, DefaultPriceWindowDays, result.TimePeriodDays)
}
