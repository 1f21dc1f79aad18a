package ingest

import (
	"net/url"
	"strings"
)

// TrackingParams 追蹤參數黑名單（固定清單，測試可直接斷言）
var TrackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term",
	"igshid", "igsh", "fbclid", "gclid", "_ga", "ref",
}

var trackingParamSet = func() map[string]bool {
	set := make(map[string]bool, len(TrackingParams))
	for _, p := range TrackingParams {
		set[p] = true
	}
	return set
}()

// MobileHosts 行動版主機對應桌面版主機的改寫表
var MobileHosts = map[string]string{
	"m.youtube.com":   "youtube.com",
	"m.tiktok.com":    "tiktok.com",
	"m.instagram.com": "instagram.com",
}

// Canonicalize 將分享連結正規化為唯一的標準形式
// 不會失敗：無法解析的輸入原樣返回，交給下游驗證端拒絕
// 對任意輸入滿足 Canonicalize(Canonicalize(x)) == Canonicalize(x)
func Canonicalize(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return trimmed
	}

	// 百分號解碼，失敗時保留原字串
	// PathUnescape 不會把 + 號轉成空白，查詢參數中的 + 得以保留
	decoded, err := url.PathUnescape(trimmed)
	if err != nil {
		decoded = trimmed
	}

	// http 一律升級為 https（部分平台的短連結仍用純 HTTP 發出）
	if len(decoded) >= 7 && strings.EqualFold(decoded[:7], "http://") {
		decoded = "https://" + decoded[7:]
	}

	// 結構化解析，失敗時原樣返回
	u, err := url.Parse(decoded)
	if err != nil || u.Host == "" {
		return decoded
	}

	// 移除追蹤參數，其餘參數保留原始順序
	u.RawQuery = stripTrackingParams(u.RawQuery)

	// 行動版主機改寫
	host := strings.ToLower(u.Hostname())
	if canonical, ok := MobileHosts[host]; ok {
		u.Host = canonical
		host = canonical
	}

	// youtu.be 短連結展開；短連結路徑之外不攜帶有效參數，一併捨棄
	if host == "youtu.be" {
		id := strings.Trim(u.Path, "/")
		if i := strings.Index(id, "/"); i != -1 {
			id = id[:i]
		}
		if id != "" {
			return "https://youtube.com/watch?v=" + id
		}
	}

	return u.String()
}

// stripTrackingParams 過濾黑名單參數，保留其餘參數與順序
func stripTrackingParams(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	parts := strings.Split(rawQuery, "&")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		key := part
		if i := strings.Index(part, "="); i != -1 {
			key = part[:i]
		}
		if trackingParamSet[strings.ToLower(key)] {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "&")
}
