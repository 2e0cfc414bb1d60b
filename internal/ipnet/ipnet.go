// Package ipnet implements IPv4 allow-list arithmetic: dotted-quad to
// uint32 conversion, CIDR range expansion, and membership testing. All
// functions are pure and return explicit errors on malformed input.
package ipnet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedIP   = errors.New("malformed IPv4 address")
	ErrMalformedCIDR = errors.New("malformed CIDR block")
)

// IPToInt parses a dotted-quad IPv4 address into a big-endian uint32.
func IPToInt(ip string) (uint32, error) {
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedIP, ip)
	}
	var n uint32
	for _, octet := range octets {
		v, err := strconv.ParseUint(octet, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedIP, ip)
		}
		n = n<<8 | uint32(v)
	}
	return n, nil
}

// IntToIP renders a uint32 as a canonical dotted-quad address.
func IntToIP(n uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", n>>24&0xff, n>>16&0xff, n>>8&0xff, n&0xff)
}

// CIDRToRange computes the inclusive address range of a CIDR block. The
// network address has the host bits zeroed, the broadcast address has them
// set. Prefix 0 spans the whole address space; prefix 32 is the single
// given address.
func CIDRToRange(cidr string) (network string, broadcast string, err error) {
	base, prefix, err := splitCIDR(cidr)
	if err != nil {
		return "", "", err
	}
	var mask uint32
	if prefix > 0 {
		mask = ^uint32(0) << (32 - prefix)
	}
	net := base & mask
	return IntToIP(net), IntToIP(net | ^mask), nil
}

// IPInCIDR reports whether ip lies inside the inclusive range of cidr.
func IPInCIDR(ip string, cidr string) (bool, error) {
	n, err := IPToInt(ip)
	if err != nil {
		return false, err
	}
	base, prefix, err := splitCIDR(cidr)
	if err != nil {
		return false, err
	}
	var mask uint32
	if prefix > 0 {
		mask = ^uint32(0) << (32 - prefix)
	}
	net := base & mask
	return n >= net && n <= net|^mask, nil
}

func splitCIDR(cidr string) (base uint32, prefix uint, err error) {
	addr, prefixStr, found := strings.Cut(cidr, "/")
	if !found {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedCIDR, cidr)
	}
	base, err = IPToInt(addr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedCIDR, cidr)
	}
	p, err := strconv.ParseUint(prefixStr, 10, 8)
	if err != nil || p > 32 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedCIDR, cidr)
	}
	return base, uint(p), nil
}
