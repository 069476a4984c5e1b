package analytics

import "github.com/mssola/useragent"

// PlatformFrom buckets a raw User-Agent header into a coarse platform
// tag. The full string is never stored.
func PlatformFrom(rawUA string) string {
	if rawUA == "" {
		return "unknown"
	}
	ua := useragent.New(rawUA)
	switch {
	case ua.Bot():
		return "bot"
	case ua.Mobile():
		return "mobile"
	default:
		return "desktop"
	}
}
