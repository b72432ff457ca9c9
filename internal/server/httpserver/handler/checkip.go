package handler

import (
	"net"
	"net/http"
	"strings"
)

// CheckIP echoes the caller's address as plain text. The IPv6
// loopback is reported as 127.0.0.1 so browser-side checks see a
// single loopback spelling.
func (h *Handler) CheckIP(w http.ResponseWriter, r *http.Request) {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip = strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if ip == "::1" {
		ip = "127.0.0.1"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(ip))
}
