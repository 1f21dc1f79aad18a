package ingest

import (
	"net/url"

	"pantry-ingest/internal/pkg/common"
)

// ValidationResult URL 驗證結果，作為交給抽取端之前的唯一閘門
type ValidationResult struct {
	IsValid       bool            `json:"is_valid"`
	NormalizedURL string          `json:"normalized_url,omitempty"`
	Platform      common.Platform `json:"platform,omitempty"`
	ErrorCode     string          `json:"error_code,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
}

// Source 驗證通過時返回對應的 RecipeSource，否則返回 nil
func (r ValidationResult) Source() *common.RecipeSource {
	if !r.IsValid {
		return nil
	}
	return &common.RecipeSource{
		URL:      r.NormalizedURL,
		Platform: r.Platform,
	}
}

// ValidateRecipeURL 正規化後做純語法驗證，不發出任何網路請求
func ValidateRecipeURL(rawURL string) ValidationResult {
	normalized := Canonicalize(rawURL)

	u, err := url.Parse(normalized)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return rejection(common.ErrInvalidURLFormat)
	}

	// http 已在正規化階段升級為 https，這個分支只會擋下其他 scheme（如 ftp）
	// 先升級再檢查的順序是刻意保留的既有行為，待產品端釐清前不得調整
	if u.Scheme != "https" {
		return rejection(common.ErrRequiresHTTPS)
	}

	platform := DetectPlatform(normalized)
	if platform == common.PlatformUnknown {
		return rejection(common.ErrUnsupportedPlatform)
	}

	return ValidationResult{
		IsValid:       true,
		NormalizedURL: normalized,
		Platform:      platform,
	}
}

// rejection 將預定義錯誤轉為拒絕結果
func rejection(err *common.CustomError) ValidationResult {
	return ValidationResult{
		IsValid:      false,
		Platform:     common.PlatformUnknown,
		ErrorCode:    err.Code,
		ErrorMessage: err.Message,
	}
}
