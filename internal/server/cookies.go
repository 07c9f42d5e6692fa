package server

import (
	"net/http"
	"time"
)

const (
	// CookieName identifies the browser client that owns a session store.
	CookieName = "prodsearch_client"
	// CookieMaxAge is generous on purpose: client state is in-memory only,
	// so the cookie just needs to outlive a browsing session.
	CookieMaxAge = 24 * time.Hour
)

// SetClientCookie sets an HTTP-only client identity cookie.
func SetClientCookie(w http.ResponseWriter, clientID string) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    clientID,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false, // Set to true in production with HTTPS
	}
	http.SetCookie(w, cookie)
}

// GetClientCookie reads the client id from the cookie.
func GetClientCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}
