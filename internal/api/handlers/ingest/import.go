package ingest

import (
	"net/http"

	"pantry-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportRecipeRequest 匯入食譜的請求
type ImportRecipeRequest struct {
	URL string `json:"url" binding:"required"`
}

// HandleImportRecipe 從社群連結匯入一張食譜卡片
func (h *Handler) HandleImportRecipe(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食譜匯入請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req ImportRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	card, err := h.importService.ImportRecipe(c.Request.Context(), req.URL)
	if err != nil {
		// 驗證失敗與抽取失敗帶有各自的錯誤代碼與狀態碼
		if customErr, ok := err.(*common.CustomError); ok {
			common.LogWarn("食譜匯入被拒絕",
				zap.String("request_id", requestID),
				zap.String("code", customErr.Code),
			)
			c.JSON(customErr.Status, gin.H{
				"error": customErr.Message,
				"code":  customErr.Code,
			})
			return
		}

		common.LogError("食譜匯入失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recipe import failed"})
		return
	}

	common.LogInfo("食譜匯入成功",
		zap.String("request_id", requestID),
		zap.String("platform", string(card.Source.Platform)),
		zap.Int("ingredients_count", len(card.Ingredients)),
	)

	c.JSON(http.StatusOK, card)
}
