package usecase

import (
	"net/netip"
	"strings"
)

// ipInRange reports whether ip matches a single allow-list entry. An
// entry may be a CIDR block ("192.168.1.0/24"), a dashed range
// ("10.0.0.1-10.0.0.50") or a bare address. Malformed entries never
// match.
func ipInRange(ip netip.Addr, entry string) bool {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return false
	}

	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return false
		}
		return prefix.Contains(ip.Unmap())
	}

	if start, end, ok := strings.Cut(entry, "-"); ok {
		lo, err := netip.ParseAddr(strings.TrimSpace(start))
		if err != nil {
			return false
		}
		hi, err := netip.ParseAddr(strings.TrimSpace(end))
		if err != nil {
			return false
		}
		u := ip.Unmap()
		return u.Compare(lo.Unmap()) >= 0 && u.Compare(hi.Unmap()) <= 0
	}

	exact, err := netip.ParseAddr(entry)
	if err != nil {
		return false
	}
	return ip.Unmap() == exact.Unmap()
}

// matchIPRanges checks an origin address against an ordered allow list;
// the first matching entry wins.
func matchIPRanges(origin string, ranges []string) bool {
	ip, err := netip.ParseAddr(strings.TrimSpace(origin))
	if err != nil {
		return false
	}
	for _, entry := range ranges {
		if ipInRange(ip, entry) {
			return true
		}
	}
	return false
}
