package ingest

import (
	"net/url"
	"strings"

	"pantry-ingest/internal/pkg/common"
)

// DetectPlatform 將 URL 歸類到封閉的平台集合，無法判斷時返回 unknown
// 主機比對刻意採用子字串規則：vm.tiktok.com / vt.tiktok.com 等短連結主機
// 不需要逐一列舉。規則互斥，依序第一個命中者勝出。
func DetectPlatform(rawURL string) common.Platform {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return common.PlatformUnknown
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return common.PlatformUnknown
	}

	switch {
	case strings.Contains(host, "youtube.com") || host == "youtu.be":
		return common.PlatformYouTube
	case strings.Contains(host, "instagram.com"):
		return common.PlatformInstagram
	case strings.Contains(host, "tiktok.com"):
		return common.PlatformTikTok
	case strings.Contains(host, "xiaohongshu.com") || strings.Contains(host, "xhslink.com"):
		return common.PlatformXiaohongshu
	}

	return common.PlatformUnknown
}
