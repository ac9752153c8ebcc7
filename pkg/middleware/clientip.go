package middleware

import (
	"net/http"
	"net/netip"
	"strings"
)

// ClientIPResolver identifies the client behind a request. Forwarding headers
// are honoured only when the connection comes from a trusted proxy.
type ClientIPResolver struct {
	trusted []netip.Prefix
}

// NewClientIPResolver trusts X-Forwarded-For and X-Real-IP from peers inside
// trusted. With no prefixes only the connection address is used.
func NewClientIPResolver(trusted []netip.Prefix) ClientIPResolver {
	return ClientIPResolver{trusted: trusted}
}

// ClientIP returns the client address for r. Behind trusted proxies it walks
// X-Forwarded-For from the right and returns the first untrusted hop.
func (c ClientIPResolver) ClientIP(r *http.Request) string {
	peer, ok := remoteAddr(r)
	if !ok {
		return r.RemoteAddr
	}
	if !allowedAddr(c.trusted, peer) {
		return peer.String()
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				// An unparseable hop ends the trusted chain.
				break
			}
			hop = hop.Unmap()
			if !allowedAddr(c.trusted, hop) {
				return hop.String()
			}
		}
	}
	if xri, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return xri.Unmap().String()
	}
	return peer.String()
}

// peerIP is the connection address without the port.
func peerIP(r *http.Request) string {
	if a, ok := remoteAddr(r); ok {
		return a.String()
	}
	return r.RemoteAddr
}
