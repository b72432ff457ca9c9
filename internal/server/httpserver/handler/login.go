package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/cloudward/console-gate/internal/core/domain"
)

// processLogin authenticates the Basic credentials through the
// delegate, creates the store entry and sets the session cookies.
func (h *Handler) processLogin(w http.ResponseWriter, r *http.Request) (*SessionBundle, error) {
	account, username, password, err := parseBasicAuth(r)
	if err != nil {
		return nil, err
	}

	remember := r.FormValue("remember")
	if remember == "" {
		return nil, errors.New("missing remember field")
	}

	sid, entity, err := h.sessions.Login(r.Context(), account, username, password)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieSessionID,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
	})
	h.ensureForgeryToken(w, r)
	h.setRememberCookies(w, account, username, remember)

	return h.sessionBundle(entity), nil
}

// setRememberCookies persists or clears the login-form prefill
// cookies depending on the remember choice.
func (h *Handler) setRememberCookies(w http.ResponseWriter, account, username, remember string) {
	maxAge := -1
	if remember == "yes" {
		maxAge = int(h.rememberFor.Seconds())
	}
	for name, value := range map[string]string{
		CookieAccount:  account,
		CookieUsername: username,
		CookieRemember: remember,
	} {
		cookie := &http.Cookie{Name: name, Path: "/", MaxAge: maxAge}
		if maxAge > 0 {
			cookie.Value = value
		}
		http.SetCookie(w, cookie)
	}
}

// parseBasicAuth extracts account, username and password from the
// Authorization header. The credential triple is colon-joined inside
// the base64 payload, so the password may itself contain colons only
// after the first two separators.
func parseBasicAuth(r *http.Request) (account, username, password string, err error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "", "", domain.ErrAuthHeaderMissing
	}

	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", "", domain.ErrAuthHeaderFormat
	}

	decoded, decErr := base64.StdEncoding.DecodeString(header[len(prefix):])
	if decErr != nil {
		return "", "", "", domain.ErrAuthHeaderFormat.WithCause(decErr)
	}

	parts := strings.SplitN(string(decoded), ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", domain.ErrAuthHeaderFormat
	}
	return parts[0], parts[1], parts[2], nil
}
