package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /{$}", s.IndexHandler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// OAuth flow
	s.RegisterRouteHandler("GET "+RouteAuthGoogle, ChainMiddleware(s.AuthRedirectHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.AuthCallbackHandler(), s.APIMiddleware()...))

	// Proxy routes (require a valid session cookie)
	s.RegisterRouteHandler("GET "+RouteAnalyticsAccounts, ChainMiddleware(s.AccountsHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAnalyticsProperties, ChainMiddleware(s.PropertiesHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAnalyticsData, ChainMiddleware(s.DataHandler(), s.ProtectedMiddleware()...))
}
