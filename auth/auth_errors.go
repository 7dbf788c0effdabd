package auth

import "errors"

var (
	NotAuthenticatedErr        = errors.New("session not authenticated")
	InvalidCredentialsErr      = errors.New("invalid username or password")
	UnknownClientErr           = errors.New("unknown client id")
	RedirectURIMismatchErr     = errors.New("redirect uri not registered for client")
	UnsupportedResponseTypeErr = errors.New("unsupported response type")
	InvalidClientErr           = errors.New("client authentication failed")
)
