package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type clientMetadataKey struct{}

// ClientInfo describes the caller for request logs.
type ClientInfo struct {
	IP    string
	Agent string
}

// ClientMetadata records the caller's address and a short user-agent label.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := ClientInfo{
			IP:    ClientIPFromRequest(r),
			Agent: DescribeUserAgent(r.Header.Get("User-Agent")),
		}
		ctx := context.WithValue(r.Context(), clientMetadataKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientInfo returns the metadata stored by ClientMetadata.
func GetClientInfo(ctx context.Context) ClientInfo {
	info, _ := ctx.Value(clientMetadataKey{}).(ClientInfo)
	return info
}

// ClientIPFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP,
// then the connection's remote address.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// DescribeUserAgent turns a User-Agent header into "Browser on OS", "bot:<name>"
// or the raw product token for non-browser clients such as indexers.
func DescribeUserAgent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "unknown"
	}
	ua := useragent.New(raw)
	name, _ := ua.Browser()
	if ua.Bot() {
		return "bot:" + name
	}
	if os := ua.OS(); os != "" && name != "" {
		return name + " on " + os
	}
	product, _, _ := strings.Cut(raw, " ")
	return product
}
