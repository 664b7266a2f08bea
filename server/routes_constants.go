package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Liveness & health
	RouteHealth = "/health"

	// OAuth flow
	RouteAuthGoogle   = "/auth/google"
	RouteAuthCallback = "/auth/callback"

	// Protected proxy routes
	RouteAnalyticsAccounts   = "/analytics/accounts"
	RouteAnalyticsProperties = "/analytics/properties"
	RouteAnalyticsData       = "/analytics/data"
)

const (
	// sessionCookieName carries the signed session; the cookie is the session,
	// nothing is stored server-side.
	sessionCookieName = "token"
	// refreshCookieName carries the raw provider refresh token, set only when
	// the provider supplied one.
	refreshCookieName = "refresh_token"
)
