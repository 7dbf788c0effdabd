package server

const (
	RouteAuthorize   = "/authorize"
	RouteLogin       = "/login"
	RouteToken       = "/token"
	RouteAPIUserInfo = "/api/userinfo"
)

const contentTypeJSON = "application/json; charset=utf-8"
