package guard

import (
	"testing"

	"github.com/smartbill/backend/pkg/client"
	"github.com/stretchr/testify/assert"
)

func shopSession() *client.Session {
	return &client.Session{
		Username:    "asha",
		Roles:       []string{client.RoleShop},
		AccessToken: "tok",
	}
}

func adminSession() *client.Session {
	return &client.Session{
		Username:    "owner",
		Roles:       []string{client.RoleShop, client.RoleAdmin},
		AccessToken: "tok",
	}
}

func TestPublicPathsAlwaysAuthorized(t *testing.T) {
	for _, path := range []string{"/", "/login", "/signup", "/unauthorized", "/oauth2/redirect"} {
		decision := Evaluate(nil, path)
		assert.True(t, decision.Authorized, "path %s", path)
	}
}

func TestNoSessionRedirectsToLogin(t *testing.T) {
	decision := Evaluate(nil, "/shop/billing")
	assert.False(t, decision.Authorized)
	assert.Equal(t, LoginPath, decision.Redirect)

	// A session without a token counts as signed out
	decision = Evaluate(&client.Session{Username: "asha"}, "/shop/billing")
	assert.Equal(t, LoginPath, decision.Redirect)
}

func TestAdminRouteWithoutAdminRoleRedirectsUnauthorized(t *testing.T) {
	for _, path := range []string{"/admin/dashboard", "/admin/analytics", "/admin/products"} {
		decision := Evaluate(shopSession(), path)
		assert.False(t, decision.Authorized, "path %s", path)
		assert.Equal(t, UnauthorizedPath, decision.Redirect, "path %s", path)
	}
}

func TestAdminSessionPassesEverywhere(t *testing.T) {
	for _, path := range []string{
		"/admin/dashboard", "/admin/analytics", "/admin/products",
		"/shop/dashboard", "/shop/billing", "/shop/history",
	} {
		decision := Evaluate(adminSession(), path)
		assert.True(t, decision.Authorized, "path %s", path)
	}
}

func TestShopSessionPassesShopRoutes(t *testing.T) {
	for _, path := range []string{"/shop/dashboard", "/shop/billing", "/shop/history"} {
		decision := Evaluate(shopSession(), path)
		assert.True(t, decision.Authorized, "path %s", path)
	}
}

func TestUnmatchedPathRedirectsHome(t *testing.T) {
	decision := Evaluate(adminSession(), "/warehouse/receiving")
	assert.False(t, decision.Authorized)
	assert.Equal(t, HomePath, decision.Redirect)
}

func TestSubPathsInheritTheirPrefixRule(t *testing.T) {
	decision := Evaluate(shopSession(), "/admin/products/42/edit")
	assert.Equal(t, UnauthorizedPath, decision.Redirect)

	decision = Evaluate(adminSession(), "/admin/products/42/edit")
	assert.True(t, decision.Authorized)
}

func TestTrailingSlashAndMissingSlashNormalized(t *testing.T) {
	assert.True(t, Evaluate(shopSession(), "/shop/billing/").Authorized)
	assert.True(t, Evaluate(shopSession(), "shop/billing").Authorized)
	assert.True(t, Evaluate(nil, "").Authorized) // "" normalizes to home
}
