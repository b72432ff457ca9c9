package handler

import (
	"context"
	"net"
	"net/http"
)

// HostResolver resolves hostnames for the init action. *net.Resolver
// satisfies it.
type HostResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

func defaultResolver() HostResolver {
	return net.DefaultResolver
}

// processInit returns the locale bootstrap info. When a host form
// field is present it is resolved to its first IPv4 address; any
// lookup failure or an IPv6-only answer leaves the address fields
// empty instead of failing the request.
func (h *Handler) processInit(r *http.Request) (*InitResponse, error) {
	language, supportURL := h.global.LocaleInfo()
	resp := &InitResponse{
		Language:   language,
		SupportURL: supportURL,
	}

	host := r.FormValue("host")
	if host == "" {
		return resp, nil
	}

	addrs, err := h.resolver.LookupIPAddr(r.Context(), host)
	if err != nil {
		h.logger.Debug("host lookup failed", "host", host, "error", err)
		return resp, nil
	}
	for _, addr := range addrs {
		if v4 := addr.IP.To4(); v4 != nil {
			resp.IPAddr = v4.String()
			resp.Hostname = host
			break
		}
	}
	return resp, nil
}
