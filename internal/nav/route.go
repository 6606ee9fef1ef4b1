// Package nav implements the two-screen navigation shell: a capture
// destination followed by an edit destination that receives the captured
// photo's handle.
package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// Route names.
const (
	RouteCamera = "camera"
	RouteEdit   = "editPhoto/{uri}"

	editPrefix = "editPhoto/"
)

// Route is a parsed navigation destination.
type Route struct {
	Name   string
	Handle string
}

// EditRoute returns the edit destination for handle. The handle is
// URL-encoded so it survives as a single path segment.
func EditRoute(handle string) string {
	return editPrefix + url.QueryEscape(handle)
}

// Parse decodes a route produced by EditRoute or the camera route.
func Parse(route string) (Route, error) {
	switch {
	case route == RouteCamera:
		return Route{Name: RouteCamera}, nil
	case strings.HasPrefix(route, editPrefix):
		enc := strings.TrimPrefix(route, editPrefix)
		if enc == "" {
			return Route{}, fmt.Errorf("route %q: missing photo handle", route)
		}
		handle, err := url.QueryUnescape(enc)
		if err != nil {
			return Route{}, fmt.Errorf("route %q: %w", route, err)
		}
		return Route{Name: RouteEdit, Handle: handle}, nil
	default:
		return Route{}, fmt.Errorf("unknown route %q", route)
	}
}
