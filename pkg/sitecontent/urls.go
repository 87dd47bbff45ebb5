package sitecontent

import (
	"net/url"
	"strings"
)

// ResolvePublicURL joins a store-relative key with the configured public
// base URL. Keys that already carry a URL scheme (externally hosted
// assets) pass through unchanged. The join normalizes separators so the
// result has exactly one slash between base and key.
func ResolvePublicURL(baseURL, key string) string {
	if key == "" {
		return ""
	}
	if u, err := url.Parse(key); err == nil && u.IsAbs() {
		return key
	}
	if baseURL == "" {
		return key
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(key, "/")
}
