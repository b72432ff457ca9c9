package handler

import (
	"net/http"

	"github.com/cloudward/console-gate/internal/core/domain"
	"github.com/cloudward/console-gate/pkg/token"
)

// ForgeryTokenHeader is the request header alternative to the _xsrf
// form field.
const ForgeryTokenHeader = "X-XSRFToken"

// ensureForgeryToken makes sure the browser holds a forgery token,
// minting one on first touch. Returns the token in effect.
func (h *Handler) ensureForgeryToken(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CookieForgery); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	value, err := token.Generate()
	if err != nil {
		// crypto/rand failure; leave the browser without a token
		// rather than minting a predictable one.
		h.logger.Error("forgery token generation failed", "error", err)
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: CookieForgery, Value: value, Path: "/"})
	return value
}

// checkForgeryToken verifies the _xsrf form field or header against
// the cookie. A browser that has no cookie yet gets one issued and is
// let through; once the cookie exists the submitted token must match.
// Login and init skip this check entirely, they run before the
// browser has any state.
func (h *Handler) checkForgeryToken(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieForgery)
	if err != nil || cookie.Value == "" {
		h.ensureForgeryToken(w, r)
		return nil
	}

	submitted := r.FormValue(CookieForgery)
	if submitted == "" {
		submitted = r.Header.Get(ForgeryTokenHeader)
	}
	if !token.Equal(submitted, cookie.Value) {
		return domain.ErrForgeryToken
	}
	return nil
}
