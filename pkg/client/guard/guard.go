// Package guard makes synchronous client-side navigation decisions from
// the current session and a role-gated route table. It is a UX courtesy
// only: the backend enforces authorization on every request regardless.
package guard

import (
	"strings"

	"github.com/smartbill/backend/pkg/client"
)

// Redirect targets for denied navigation.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	HomePath         = "/"
)

// Decision is the outcome of a navigation attempt.
type Decision struct {
	Authorized bool
	// Redirect is the path to send the user to when not authorized.
	Redirect string
}

// publicPaths never require a session.
var publicPaths = map[string]bool{
	"/":                true,
	"/signup":          true,
	"/login":           true,
	"/unauthorized":    true,
	"/oauth2/redirect": true,
}

// route is a protected prefix and the roles allowed through it.
type route struct {
	prefix string
	roles  []string
}

var routes = []route{
	{prefix: "/admin/dashboard", roles: []string{client.RoleAdmin}},
	{prefix: "/admin/analytics", roles: []string{client.RoleAdmin}},
	{prefix: "/admin/products", roles: []string{client.RoleAdmin}},
	{prefix: "/shop/dashboard", roles: []string{client.RoleShop, client.RoleAdmin}},
	{prefix: "/shop/billing", roles: []string{client.RoleShop, client.RoleAdmin}},
	{prefix: "/shop/history", roles: []string{client.RoleShop, client.RoleAdmin}},
}

// Evaluate decides whether the session may navigate to path. Public
// paths are always authorized; unmatched paths redirect home; protected
// paths require a session with an allowed role.
func Evaluate(session *client.Session, path string) Decision {
	path = normalize(path)

	if publicPaths[path] {
		return Decision{Authorized: true}
	}

	matched, ok := match(path)
	if !ok {
		return Decision{Redirect: HomePath}
	}

	if session == nil || session.AccessToken == "" {
		return Decision{Redirect: LoginPath}
	}
	if !session.HasAnyRole(matched.roles...) {
		return Decision{Redirect: UnauthorizedPath}
	}
	return Decision{Authorized: true}
}

func match(path string) (route, bool) {
	for _, r := range routes {
		if path == r.prefix || strings.HasPrefix(path, r.prefix+"/") {
			return r, true
		}
	}
	return route{}, false
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
