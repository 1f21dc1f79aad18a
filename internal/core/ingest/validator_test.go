package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-ingest/internal/pkg/common"
)

func TestValidateRecipeURLAccepts(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantURL      string
		wantPlatform common.Platform
	}{
		{
			name:         "標準 youtube 連結",
			in:           "https://youtube.com/watch?v=abc",
			wantURL:      "https://youtube.com/watch?v=abc",
			wantPlatform: common.PlatformYouTube,
		},
		{
			name:         "http 連結經升級後接受",
			in:           "http://youtube.com/watch?v=abc",
			wantURL:      "https://youtube.com/watch?v=abc",
			wantPlatform: common.PlatformYouTube,
		},
		{
			name:         "tiktok 短連結",
			in:           "https://vm.tiktok.com/ZMhK8v9R2/",
			wantURL:      "https://vm.tiktok.com/ZMhK8v9R2/",
			wantPlatform: common.PlatformTikTok,
		},
		{
			name:         "instagram 帶追蹤參數",
			in:           "https://www.instagram.com/reel/XYZ/?igshid=abc",
			wantURL:      "https://www.instagram.com/reel/XYZ/",
			wantPlatform: common.PlatformInstagram,
		},
		{
			name:         "小紅書短連結",
			in:           "http://xhslink.com/AbCdEf",
			wantURL:      "https://xhslink.com/AbCdEf",
			wantPlatform: common.PlatformXiaohongshu,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRecipeURL(tt.in)
			require.True(t, result.IsValid, "error: %s", result.ErrorCode)
			assert.Equal(t, tt.wantURL, result.NormalizedURL)
			assert.Equal(t, tt.wantPlatform, result.Platform)
			assert.True(t, strings.HasPrefix(result.NormalizedURL, "https://"))

			source := result.Source()
			require.NotNil(t, source)
			assert.Equal(t, tt.wantURL, source.URL)
			assert.Equal(t, tt.wantPlatform, source.Platform)
		})
	}
}

func TestValidateRecipeURLRejects(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantCode string
	}{
		{
			name:     "完全無法解析",
			in:       "not a url",
			wantCode: common.ErrCodeInvalidURLFormat,
		},
		{
			name:     "空字串",
			in:       "",
			wantCode: common.ErrCodeInvalidURLFormat,
		},
		{
			name:     "非 http(s) scheme 不經升級直接拒絕",
			in:       "ftp://youtube.com/watch?v=abc",
			wantCode: common.ErrCodeRequiresHTTPS,
		},
		{
			name:     "語法正確但平台不支援",
			in:       "https://example.com/recipe",
			wantCode: common.ErrCodeUnsupportedPlatform,
		},
		{
			name:     "vimeo 不在支援清單",
			in:       "https://vimeo.com/123456",
			wantCode: common.ErrCodeUnsupportedPlatform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRecipeURL(tt.in)
			require.False(t, result.IsValid)
			assert.Equal(t, tt.wantCode, result.ErrorCode)
			assert.NotEmpty(t, result.ErrorMessage)
			assert.Nil(t, result.Source())
		})
	}
}
