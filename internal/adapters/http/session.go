package httpadapter

import (
	"net/http"

	"github.com/google/uuid"
)

// sessionID returns the caller's session identifier, assigning a fresh one
// via cookie when the request carries none. The id only keys the one-shot
// notice channel; it is not an authentication token.
func (rt *Router) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(rt.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     rt.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
