package pantry

import (
	"net/http"

	pantryCore "pantry-ingest/internal/core/pantry"
	recipeService "pantry-ingest/internal/core/recipe"
	"pantry-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchRequest 比對食譜食材與庫存快照的請求
// 庫存快照由呼叫端提供，本服務不持有使用者資料
type MatchRequest struct {
	Ingredients []common.Ingredient    `json:"ingredients" binding:"required"`
	Inventory   []common.InventoryItem `json:"inventory"`
}

// CostRequest 估算缺少食材成本的請求
type CostRequest struct {
	MissingIngredients []common.Ingredient              `json:"missing_ingredients" binding:"required"`
	Prices             map[string]pantryCore.PriceRange `json:"prices"` // 以正規化名稱為鍵的價格快照
}

// Handler 庫存比對處理程序
type Handler struct {
	importService *recipeService.ImportService
}

// NewHandler 創建新的庫存比對處理程序
func NewHandler(importService *recipeService.ImportService) *Handler {
	return &Handler{
		importService: importService,
	}
}

// HandleMatch 比對食譜食材與庫存
func (h *Handler) HandleMatch(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.importService.MatchPantry(req.Ingredients, req.Inventory)

	common.LogInfo("庫存比對完成",
		zap.String("request_id", requestID),
		zap.Int("have", result.Have),
		zap.Int("need", result.Need),
		zap.Int("match_percentage", result.MatchPercentage),
	)

	c.JSON(http.StatusOK, result)
}

// HandleCost 估算缺少食材的採買成本
func (h *Handler) HandleCost(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	catalog := pantryCore.StaticCatalog(req.Prices)
	result := h.importService.EstimateCost(req.MissingIngredients, catalog)

	common.LogInfo("成本估算完成",
		zap.String("request_id", requestID),
		zap.Int64("min_cents", result.MinCents),
		zap.Int64("max_cents", result.MaxCents),
		zap.Float64("confidence", result.Confidence),
	)

	c.JSON(http.StatusOK, result)
}
