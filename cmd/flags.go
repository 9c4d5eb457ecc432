package cmd

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/s0up4200/proxy6/px6"
)

// parseIDs splits arguments like "1,2" "3" into proxy ids
func parseIDs(args []string) []px6.ProxyID {
	var ids []px6.ProxyID
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, px6.NewProxyID(part))
			}
		}
	}
	return ids
}

// parseVersion returns nil when no version was given
func parseVersion(s string) (*px6.ProxyVersion, error) {
	if s == "" {
		return nil, nil
	}
	v, err := px6.ParseProxyVersion(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseDescription returns nil when no description was given
func parseDescription(s string) (*px6.ProxyDescription, error) {
	if s == "" {
		return nil, nil
	}
	d, err := px6.NewProxyDescription(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseType(s string) (*px6.ProxyType, error) {
	if s == "" {
		return nil, nil
	}
	t, err := px6.ParseProxyType(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseIPs(args []string) ([]netip.Addr, error) {
	var addrs []netip.Addr
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			addr, err := netip.ParseAddr(part)
			if err != nil {
				return nil, fmt.Errorf("invalid ip %q: %w", part, err)
			}
			addrs = append(addrs, addr)
		}
	}
	return addrs, nil
}
