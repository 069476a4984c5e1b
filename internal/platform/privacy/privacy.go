// Package privacy provides utilities for handling personally identifiable
// information (PII). No raw addresses, IPs, or user agents are ever stored.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
)

// AnonymizeIP truncates an IP address to remove the host-identifying portion.
//
// For IPv4 addresses, the last octet is zeroed (e.g., "192.168.1.47" ->
// "192.168.1.0"), effectively masking to a /24 network. For IPv6 addresses,
// only the /48 prefix is kept.
//
// Returns "invalid" for unparseable IP addresses, and "unknown" for empty strings.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// ActorHash derives a short, stable, non-reversible identifier for
// analytics from the anonymized IP and the user agent string. Two visits
// from the same /24 and browser collapse to one actor, which is as much
// resolution as the analytics need.
func ActorHash(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(AnonymizeIP(ip) + "|" + userAgent))
	return hex.EncodeToString(sum[:8])
}
