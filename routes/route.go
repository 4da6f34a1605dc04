package routes

import "strings"

// Kind enumerates the closed set of page identities the platform serves.
type Kind int

const (
	KindHome Kind = iota
	KindStore
	KindDashboard
	KindAdmin
	KindAuth
	KindNotFound
)

// Route is a parsed request target. StoreRef is only set for KindStore and
// carries the opaque reference (custom path or raw id) for the resolver.
type Route struct {
	Kind     Kind
	StoreRef string
}

// ReservedSegments are first path segments that can never be a store
// reference. Custom path claims are checked against this same set.
var ReservedSegments = map[string]Kind{
	"dashboard": KindDashboard,
	"admin":     KindAdmin,
	"auth":      KindAuth,
	"login":     KindAuth,
	"signup":    KindAuth,
}

// internalSegments are first segments owned by explicitly registered
// handlers; reaching Parse with one of these means nothing matched.
var internalSegments = map[string]bool{
	"api":     true,
	"healthz": true,
	"static":  true,
}

// Reserved reports whether a custom path may not be claimed because it
// would shadow a platform page.
func Reserved(path string) bool {
	if _, ok := ReservedSegments[path]; ok {
		return true
	}
	return internalSegments[path]
}

// Parse maps a URL path onto a route variant. Anything that is not the
// root and not a reserved page is treated as a single-segment store
// reference; deeper paths are not store URLs.
func Parse(path string) Route {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Route{Kind: KindHome}
	}

	segments := strings.Split(trimmed, "/")
	first := segments[0]

	if kind, ok := ReservedSegments[first]; ok {
		return Route{Kind: kind}
	}
	if internalSegments[first] || len(segments) > 1 {
		return Route{Kind: KindNotFound}
	}
	return Route{Kind: KindStore, StoreRef: first}
}
