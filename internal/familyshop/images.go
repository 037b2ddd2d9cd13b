package familyshop

import "strings"

// DefaultImagePath is served when a stored image reference is unusable.
const DefaultImagePath = "/placeholder.png"

const cloudinaryHost = "https://res.cloudinary.com"

// absURL rewrites a relative image path to an absolute URL under the
// configured origin. Absolute http(s) and blob URLs pass through
// unchanged; empty paths stay empty.
func (c *Client) absURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "blob:") {
		return path
	}
	return c.config.Origin + path
}

// SanitizeImageURL recovers a usable URL from a possibly corrupted
// stored value. Some legacy rows carry a Cloudinary URL glued behind a
// bad prefix; the embedded URL is extracted verbatim. Anything else
// that is not already an http or blob URL falls back to the default
// placeholder path.
func SanitizeImageURL(s string) string {
	if idx := strings.Index(s, cloudinaryHost); idx >= 0 {
		return s[idx:]
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "blob:") {
		return s
	}
	return DefaultImagePath
}
