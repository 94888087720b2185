// Package imageurl turns hosted-drive share links into URLs an <img> tag can
// load directly.
package imageurl

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// PreviewWidth is the thumbnail width requested for every resolved link.
const PreviewWidth = 1000

var shareHosts = []string{
	"drive.google.com",
	"docs.google.com",
	"drive.usercontent.google.com",
	"lh3.googleusercontent.com",
}

// Checked in order; the first match wins.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`[?&]id=([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`/d/([A-Za-z0-9_-]+)`),
}

// Resolve returns a direct thumbnail URL for a recognised share link and the
// input unchanged for anything else, including share links with no file id.
func Resolve(ref string) string {
	if !IsShareLink(ref) {
		return ref
	}
	id := FileID(ref)
	if id == "" {
		return ref
	}
	return thumbnailURL(id)
}

// IsShareLink reports whether ref points at a drive host.
func IsShareLink(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range shareHosts {
		if host == h {
			return true
		}
	}
	return false
}

// FileID extracts the drive file identifier, or "" when none is present.
func FileID(ref string) string {
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(ref); m != nil {
			return m[1]
		}
	}
	return ""
}

// ResolveAll maps Resolve over refs.
func ResolveAll(refs []string) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = Resolve(ref)
	}
	return out
}

func thumbnailURL(id string) string {
	q := url.Values{}
	q.Set("id", id)
	q.Set("sz", fmt.Sprintf("w%d", PreviewWidth))
	return "https://drive.google.com/thumbnail?" + q.Encode()
}
