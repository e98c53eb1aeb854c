// Package imageurl produces size-specific Cloudinary delivery URLs by
// rewriting a canonical upload URL. One physical upload serves every
// derived size; no pixels are ever re-uploaded.
package imageurl

import (
	"fmt"
	"strings"
)

// uploadMarker is the fixed path segment in Cloudinary delivery URLs after
// which transformation directives are injected.
const uploadMarker = "/upload/"

// Transform rewrites url to request a width x height variant with automatic
// crop gravity, quality and format. The rewrite is a pure string
// transformation: the same inputs always produce the same output.
//
// Inputs that cannot carry directives are returned unchanged: empty strings,
// data URIs (inline placeholders) and URLs without exactly one "/upload/"
// segment (non-Cloudinary URLs).
func Transform(url string, width, height int) string {
	if url == "" || strings.HasPrefix(url, "data:") {
		return url
	}
	parts := strings.Split(url, uploadMarker)
	if len(parts) != 2 {
		return url
	}
	return fmt.Sprintf("%s/upload/c_fill,g_auto,q_auto,f_auto,w_%d,h_%d/%s",
		parts[0], width, height, parts[1])
}
