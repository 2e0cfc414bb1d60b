// Package realip derives the originating client address from configured
// proxy headers instead of the raw transport peer address. Header values
// are only honored when the transport peer is a trusted proxy.
package realip

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/takoapp/tako/internal/ipnet"
)

type Resolver struct {
	header  string
	trusted []string // bare addresses or CIDR blocks
}

func NewResolver(header string, trustedProxies []string) *Resolver {
	return &Resolver{
		header:  header,
		trusted: trustedProxies,
	}
}

// ClientIP resolves the caller address for a request.
func (r *Resolver) ClientIP(ctx *fiber.Ctx) string {
	return r.Resolve(ctx.IP(), ctx.Get(r.header))
}

// Resolve walks the forwarded chain from the right, skipping trusted hops,
// and returns the first untrusted address. The peer address wins when no
// header is present or the peer itself is not a trusted proxy.
func (r *Resolver) Resolve(peer string, forwarded string) string {
	if forwarded == "" || len(r.trusted) == 0 || !r.isTrusted(peer) {
		return peer
	}
	hops := strings.Split(forwarded, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := ipnet.IPToInt(hop); err != nil {
			// spoofed or non-IPv4 hop, fall back to the transport peer
			return peer
		}
		if !r.isTrusted(hop) {
			return hop
		}
	}
	// every hop is a trusted proxy, the leftmost one originated the request
	for _, hop := range hops {
		if h := strings.TrimSpace(hop); h != "" {
			return h
		}
	}
	return peer
}

func (r *Resolver) isTrusted(ip string) bool {
	for _, entry := range r.trusted {
		if strings.Contains(entry, "/") {
			if ok, err := ipnet.IPInCIDR(ip, entry); err == nil && ok {
				return true
			}
			continue
		}
		if entry == ip {
			return true
		}
	}
	return false
}
