package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cloudward/console-gate/internal/auth"
	"github.com/cloudward/console-gate/internal/core/domain"
	"github.com/cloudward/console-gate/internal/core/service"
	"github.com/cloudward/console-gate/internal/server/config"
	"github.com/cloudward/console-gate/internal/storage/memory"
	"github.com/cloudward/console-gate/internal/telemetry/metric"
)

type fakeResolver struct {
	addrs []net.IPAddr
	err   error
}

func (f fakeResolver) LookupIPAddr(_ context.Context, _ string) ([]net.IPAddr, error) {
	return f.addrs, f.err
}

func newTestHandler(t *testing.T, resolver HostResolver) *Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := metric.New()
	sessions := service.NewSessionService(memory.New(), auth.NewMock(), metrics, logger, service.SessionConfig{
		IdleTimeout:  time.Hour,
		ReapInterval: time.Minute,
	})

	return New(Config{
		Sessions:    sessions,
		Global:      service.NewGlobalInfoService(config.NewStore(config.Default())),
		Metrics:     metrics,
		Logger:      logger,
		Resolver:    resolver,
		RememberFor: 180 * 24 * time.Hour,
	})
}

func postForm(values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func basicAuth(account, username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(account+":"+username+":"+password))
}

func doLogin(t *testing.T, h *Handler, remember string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	req := postForm(url.Values{"action": {"login"}, "remember": {remember}})
	req.Header.Set("Authorization", basicAuth("acct1", "bob", "pw"))
	rr := httptest.NewRecorder()
	h.Dispatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == CookieSessionID {
			return rr, c
		}
	}
	t.Fatal("login response did not set a session-id cookie")
	return nil, nil
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestLoginSuccess(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})
	rr, sid := doLogin(t, h, "no")

	bundle := decodeBody[SessionBundle](t, rr)
	if bundle.UserSession.Account != "acct1" || bundle.UserSession.Username != "bob" {
		t.Errorf("user_session = %+v, want acct1/bob", bundle.UserSession)
	}
	if bundle.GlobalSession.Language != "en_US" {
		t.Errorf("language = %q, want en_US", bundle.GlobalSession.Language)
	}
	if len(bundle.GlobalSession.InstanceTypes) == 0 {
		t.Error("instance_type table is empty")
	}
	if sid.Value == "" || !sid.HttpOnly {
		t.Errorf("session-id cookie = %+v, want non-empty HttpOnly", sid)
	}

	var haveForgery bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == CookieForgery && c.Value != "" {
			haveForgery = true
		}
	}
	if !haveForgery {
		t.Error("login did not issue a forgery token cookie")
	}
}

func TestLoginAuthHeaderErrors(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "CG-AUTH-4011"},
		{"wrong scheme", "Bearer abc", "CG-AUTH-4012"},
		{"bad base64", "Basic %%%", "CG-AUTH-4012"},
		{"too few fields", "Basic " + base64.StdEncoding.EncodeToString([]byte("acct1:bob")), "CG-AUTH-4012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postForm(url.Values{"action": {"login"}, "remember": {"no"}})
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.Dispatch(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
			resp := decodeBody[ErrorResponse](t, rr)
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestLoginMissingRemember(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})

	req := postForm(url.Values{"action": {"login"}})
	req.Header.Set("Authorization", basicAuth("acct1", "bob", "pw"))
	rr := httptest.NewRecorder()
	h.Dispatch(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	resp := decodeBody[ErrorResponse](t, rr)
	if resp.Code != domain.ErrNotAuthorized.Code {
		t.Errorf("code = %q, want %q", resp.Code, domain.ErrNotAuthorized.Code)
	}
}

func TestLoginRememberCookies(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})

	rr, _ := doLogin(t, h, "yes")
	cookies := map[string]*http.Cookie{}
	for _, c := range rr.Result().Cookies() {
		cookies[c.Name] = c
	}
	for name, want := range map[string]string{
		CookieAccount:  "acct1",
		CookieUsername: "bob",
		CookieRemember: "yes",
	} {
		c, ok := cookies[name]
		if !ok {
			t.Fatalf("cookie %q not set", name)
		}
		if c.Value != want || c.MaxAge <= 0 {
			t.Errorf("cookie %q = %q (MaxAge %d), want %q with positive MaxAge", name, c.Value, c.MaxAge, want)
		}
	}

	rr, _ = doLogin(t, h, "no")
	for _, c := range rr.Result().Cookies() {
		switch c.Name {
		case CookieAccount, CookieUsername, CookieRemember:
			if c.MaxAge >= 0 {
				t.Errorf("cookie %q not cleared, MaxAge = %d", c.Name, c.MaxAge)
			}
		}
	}
}

func TestSessionRoundTrip(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})
	_, sid := doLogin(t, h, "no")

	req := postForm(url.Values{"action": {"session"}}, sid)
	rr := httptest.NewRecorder()
	h.Dispatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	bundle := decodeBody[SessionBundle](t, rr)
	if bundle.UserSession.Account != "acct1" || bundle.UserSession.Username != "bob" {
		t.Errorf("user_session = %+v, want acct1/bob", bundle.UserSession)
	}
}

func TestSessionUnauthenticated(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})

	tests := []struct {
		name    string
		cookies []*http.Cookie
	}{
		{"no cookie", nil},
		{"unknown session id", []*http.Cookie{{Name: CookieSessionID, Value: "deadbeefdeadbeefdeadbeefdeadbeef"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postForm(url.Values{"action": {"session"}}, tt.cookies...)
			rr := httptest.NewRecorder()
			h.Dispatch(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
			resp := decodeBody[ErrorResponse](t, rr)
			if resp.Code != domain.ErrNotAuthorized.Code {
				t.Errorf("code = %q, want %q", resp.Code, domain.ErrNotAuthorized.Code)
			}
		})
	}
}

func TestLogoutIdempotent(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})
	_, sid := doLogin(t, h, "no")

	req := postForm(url.Values{"action": {"logout"}}, sid)
	rr := httptest.NewRecorder()
	h.Dispatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("first logout status = %d", rr.Code)
	}
	if got := decodeBody[ResultResponse](t, rr); got.Result != "success" {
		t.Errorf("result = %q, want success", got.Result)
	}
	for _, c := range rr.Result().Cookies() {
		if (c.Name == CookieSessionID || c.Name == CookieForgery) && c.MaxAge >= 0 {
			t.Errorf("cookie %q not cleared, MaxAge = %d", c.Name, c.MaxAge)
		}
	}

	// Second logout with no cookies at all.
	req = postForm(url.Values{"action": {"logout"}})
	rr = httptest.NewRecorder()
	h.Dispatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("second logout status = %d", rr.Code)
	}
	if got := decodeBody[ResultResponse](t, rr); got.Result != "success" {
		t.Errorf("result = %q, want success", got.Result)
	}
}

func TestBusy(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})
	_, sid := doLogin(t, h, "no")

	tests := []struct {
		name    string
		cookies []*http.Cookie
		want    string
	}{
		{"live session", []*http.Cookie{sid}, "true"},
		{"no cookie", nil, "false"},
		{"unknown session id", []*http.Cookie{{Name: CookieSessionID, Value: "nope"}}, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postForm(url.Values{"action": {"busy"}}, tt.cookies...)
			rr := httptest.NewRecorder()
			h.Dispatch(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			if got := decodeBody[ResultResponse](t, rr); got.Result != tt.want {
				t.Errorf("result = %q, want %q", got.Result, tt.want)
			}
		})
	}
}

func TestUnknownAction(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})

	req := postForm(url.Values{"action": {"nonsense"}})
	rr := httptest.NewRecorder()
	h.Dispatch(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	resp := decodeBody[ErrorResponse](t, rr)
	if resp.Message != "unknown action" {
		t.Errorf("message = %q, want %q", resp.Message, "unknown action")
	}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name         string
		resolver     HostResolver
		host         string
		wantIP       string
		wantHostname string
	}{
		{
			name:         "resolvable host",
			resolver:     fakeResolver{addrs: []net.IPAddr{{IP: net.ParseIP("127.0.0.1")}}},
			host:         "localhost",
			wantIP:       "127.0.0.1",
			wantHostname: "localhost",
		},
		{
			name:     "unresolvable host",
			resolver: fakeResolver{err: errors.New("no such host")},
			host:     "nowhere.invalid",
		},
		{
			name:     "ipv6 only answer",
			resolver: fakeResolver{addrs: []net.IPAddr{{IP: net.ParseIP("::1")}}},
			host:     "localhost",
		},
		{
			name:     "no host argument",
			resolver: fakeResolver{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.resolver)

			values := url.Values{"action": {"init"}}
			if tt.host != "" {
				values.Set("host", tt.host)
			}
			rr := httptest.NewRecorder()
			h.Dispatch(rr, postForm(values))

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
			}
			resp := decodeBody[InitResponse](t, rr)
			if resp.Language != "en_US" {
				t.Errorf("language = %q, want en_US", resp.Language)
			}
			if resp.IPAddr != tt.wantIP || resp.Hostname != tt.wantHostname {
				t.Errorf("ipaddr/hostname = %q/%q, want %q/%q", resp.IPAddr, resp.Hostname, tt.wantIP, tt.wantHostname)
			}
		})
	}
}

func TestForgeryTokenMismatch(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})
	_, sid := doLogin(t, h, "no")

	forgery := &http.Cookie{Name: CookieForgery, Value: "expected-token"}
	req := postForm(url.Values{"action": {"session"}, CookieForgery: {"wrong-token"}}, sid, forgery)
	rr := httptest.NewRecorder()
	h.Dispatch(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
	resp := decodeBody[ErrorResponse](t, rr)
	if resp.Code != domain.ErrForgeryToken.Code {
		t.Errorf("code = %q, want %q", resp.Code, domain.ErrForgeryToken.Code)
	}
}

func TestForgeryTokenAccepted(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})
	_, sid := doLogin(t, h, "no")

	forgery := &http.Cookie{Name: CookieForgery, Value: "expected-token"}

	// Token in the form field.
	req := postForm(url.Values{"action": {"session"}, CookieForgery: {"expected-token"}}, sid, forgery)
	rr := httptest.NewRecorder()
	h.Dispatch(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("form token: status = %d, want 200", rr.Code)
	}

	// Token in the header.
	req = postForm(url.Values{"action": {"session"}}, sid, forgery)
	req.Header.Set(ForgeryTokenHeader, "expected-token")
	rr = httptest.NewRecorder()
	h.Dispatch(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("header token: status = %d, want 200", rr.Code)
	}
}

func TestForgeryTokenIssuedOnFirstTouch(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})

	req := postForm(url.Values{"action": {"busy"}})
	rr := httptest.NewRecorder()
	h.Dispatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var issued bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == CookieForgery && c.Value != "" {
			issued = true
		}
	}
	if !issued {
		t.Error("first touch did not issue a forgery token cookie")
	}
}

func TestCheckIP(t *testing.T) {
	h := newTestHandler(t, fakeResolver{})

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"ipv4", "192.0.2.7:4242", "", "192.0.2.7"},
		{"ipv6 loopback", "[::1]:4242", "", "127.0.0.1"},
		{"forwarded", "10.0.0.1:4242", "203.0.113.9, 10.0.0.1", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/checkip", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			rr := httptest.NewRecorder()
			h.CheckIP(rr, req)

			if got := rr.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotAuthorized, http.StatusUnauthorized},
		{domain.ErrAuthHeaderMissing, http.StatusUnauthorized},
		{domain.ErrForgeryToken, http.StatusForbidden},
		{domain.ErrUnknownAction, http.StatusInternalServerError},
		{domain.ErrInternal, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusForError(tt.err); got != tt.want {
			t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
