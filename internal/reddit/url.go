package reddit

import "strings"

// ExtractPostID pulls the post id out of a Reddit permalink. The URL must
// carry a literal "/comments/" segment followed by the id; anything else
// yields "" and callers must not attempt a fetch.
func ExtractPostID(url string) string {
	const marker = "/comments/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return ""
	}
	rest := url[idx+len(marker):]
	if end := strings.IndexByte(rest, '/'); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
