package ingest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-ingest/internal/core/ingest"
	"pantry-ingest/internal/core/pantry"
	recipeService "pantry-ingest/internal/core/recipe"
	"pantry-ingest/internal/pkg/common"
)

func init() {
	gin.SetMode(gin.TestMode)
	// handler 會寫日誌，測試時導向 no-op logger
	if common.Logger == nil {
		_ = common.InitLogger("error")
	}
}

func newTestRouter() *gin.Engine {
	importService := recipeService.NewImportService(nil, pantry.NewEstimator("USD", 60))
	handler := NewHandler(importService)

	router := gin.New()
	router.POST("/api/v1/url/validate", handler.HandleValidateURL)
	router.POST("/api/v1/ingredient/normalize", func(c *gin.Context) {
		HandleNormalizeIngredients(importService)(c.Writer, c.Request)
	})
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleValidateURLAccepted(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/url/validate",
		`{"url": "http://m.youtube.com/watch?v=abc&utm_source=share"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var result ingest.ValidationResult
	require.NoError(t, common.ParseJSON(w.Body.String(), &result))
	assert.True(t, result.IsValid)
	assert.Equal(t, common.PlatformYouTube, result.Platform)
	assert.Equal(t, "https://youtube.com/watch?v=abc", result.NormalizedURL)
}

func TestHandleValidateURLRejected(t *testing.T) {
	router := newTestRouter()

	// 拒絕也是 200，錯誤代碼在響應體裡
	w := postJSON(t, router, "/api/v1/url/validate",
		`{"url": "https://example.com/recipe"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var result ingest.ValidationResult
	require.NoError(t, common.ParseJSON(w.Body.String(), &result))
	assert.False(t, result.IsValid)
	assert.Equal(t, common.ErrCodeUnsupportedPlatform, result.ErrorCode)
}

func TestHandleValidateURLBadRequest(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/url/validate", `{"link": "missing url field"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleNormalizeIngredients(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/ingredient/normalize",
		`{"ingredients": [
			{"text": "2 cups flour", "method": "creator"},
			{"text": "2 cups", "method": "creator"}
		]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp NormalizeIngredientsResponse
	require.NoError(t, common.ParseJSON(w.Body.String(), &resp))
	require.Len(t, resp.Ingredients, 1)
	require.Len(t, resp.ParseFailures, 1)
	assert.Equal(t, "flour", resp.Ingredients[0].NormalizedName)
	assert.InDelta(t, 0.90, resp.Ingredients[0].Confidence, 1e-9)
}

func TestHandleNormalizeIngredientsEmpty(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/ingredient/normalize", `{"ingredients": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
