package ingest

import (
	"net/http"

	recipeService "pantry-ingest/internal/core/recipe"
	"pantry-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidateURLRequest 驗證食譜連結的請求
type ValidateURLRequest struct {
	URL string `json:"url" binding:"required"` // 使用者貼上或分享進來的原始連結
}

// Handler 連結匯入處理程序
type Handler struct {
	importService *recipeService.ImportService
}

// NewHandler 創建新的連結匯入處理程序
func NewHandler(importService *recipeService.ImportService) *Handler {
	return &Handler{
		importService: importService,
	}
}

// HandleValidateURL 驗證並正規化一個食譜連結
// 純語法檢查，不發出任何網路請求，拒絕時一樣回 200 並附上錯誤代碼
func (h *Handler) HandleValidateURL(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req ValidateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.importService.ValidateURL(req.URL)

	common.LogInfo("連結驗證完成",
		zap.String("request_id", requestID),
		zap.Bool("is_valid", result.IsValid),
		zap.String("platform", string(result.Platform)),
		zap.String("error_code", result.ErrorCode),
	)

	c.JSON(http.StatusOK, result)
}
