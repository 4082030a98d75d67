package gate

import "strings"

// ClientIP resolves the client address behind optional proxies: the first
// X-Forwarded-For entry wins, then X-Real-IP, then the raw peer address.
func ClientIP(forwardedFor, realIP, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if realIP != "" {
		return strings.TrimSpace(realIP)
	}

	if remoteAddr != "" {
		return remoteAddr
	}

	return "unknown"
}
