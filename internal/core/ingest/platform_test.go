package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pantry-ingest/internal/pkg/common"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want common.Platform
	}{
		{"https://youtube.com/watch?v=abc", common.PlatformYouTube},
		{"https://www.youtube.com/watch?v=abc", common.PlatformYouTube},
		{"https://youtu.be/dQw4w9WgXcQ", common.PlatformYouTube},
		{"https://instagram.com/reel/XYZ/", common.PlatformInstagram},
		{"https://www.instagram.com/p/ABC/", common.PlatformInstagram},
		{"https://tiktok.com/@user/video/123", common.PlatformTikTok},
		// 短連結主機靠子字串規則涵蓋，不需逐一列舉
		{"https://vm.tiktok.com/ZMhK8v9R2/", common.PlatformTikTok},
		{"https://vt.tiktok.com/ZSAbCdEf/", common.PlatformTikTok},
		{"https://www.xiaohongshu.com/explore/abc123", common.PlatformXiaohongshu},
		{"https://xhslink.com/AbCdEf", common.PlatformXiaohongshu},
		{"https://example.com/recipe", common.PlatformUnknown},
		{"https://vimeo.com/123", common.PlatformUnknown},
		{"not a url", common.PlatformUnknown},
		{"", common.PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}
