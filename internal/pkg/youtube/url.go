package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var pathVideoIDRegex = regexp.MustCompile(`/(?:shorts|embed)/([A-Za-z0-9_-]{6,})`)

// ExtractVideoID 从各种形式的 YouTube 链接中解析视频 ID：
// youtu.be 短链、watch?v=、shorts、embed。解析失败返回空串。
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host == "youtu.be" {
		return strings.TrimPrefix(u.Path, "/")
	}

	if v := u.Query().Get("v"); v != "" {
		return v
	}

	if m := pathVideoIDRegex.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}

	return ""
}
