package auth

import (
	"net/http"
	"time"
)

const CookieName = "token"

// CookiePolicy decides the transport attributes of the session cookie.
// Production serves the SPA from another site over HTTPS, so the cookie must
// be Secure and SameSite=None; local development runs on plain HTTP ports.
type CookiePolicy struct {
	Secure   bool
	SameSite http.SameSite
}

func NewCookiePolicy(production bool) CookiePolicy {
	if production {
		return CookiePolicy{Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookiePolicy{Secure: false, SameSite: http.SameSiteStrictMode}
}

func (p CookiePolicy) Session(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

// Cleared overwrites the session cookie with an immediately expired one.
func (p CookiePolicy) Cleared() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}
