package handler

import "net/http"

// processLogout terminates the session bound to the cookie, if any,
// and clears the browser state. It succeeds regardless of whether a
// live entry existed, so repeated logouts are harmless.
func (h *Handler) processLogout(w http.ResponseWriter, r *http.Request) (*ResultResponse, error) {
	if cookie, err := r.Cookie(CookieSessionID); err == nil && cookie.Value != "" {
		h.sessions.Logout(cookie.Value)
	}

	for _, name := range []string{CookieSessionID, CookieForgery} {
		http.SetCookie(w, &http.Cookie{Name: name, Path: "/", MaxAge: -1})
	}

	return &ResultResponse{Result: "success"}, nil
}
