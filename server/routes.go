package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteAuthorize, ChainMiddleware(s.AuthorizeHandler(), s.FrontChannelMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthorize, ChainMiddleware(s.AuthorizeDecisionHandler(), s.FrontChannelMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.FrontChannelMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.FrontChannelMiddleware()...))

	s.RegisterRouteFunc("POST "+RouteToken, ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteAPIUserInfo, ChainMiddleware(s.UserInfoHandler(), s.APIMiddleware()...))
}
