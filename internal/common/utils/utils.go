// Package utils holds the small constants and helpers shared across the
// coordination plane, mirroring crates/common/src/utils.rs.
package utils

import (
	"fmt"
	"net"
	"net/url"
)

// MaxNumSubblocks bounds the number of subblocks a single block can be
// decomposed into.
const MaxNumSubblocks = 7

// AddrToURL converts a TCP socket address into a URL with the given scheme
// prefix (e.g. "http://" or "ws://"), the Go counterpart of
// common::utils::addr_to_url.
func AddrToURL(addr net.Addr, schemePrefix string) *url.URL {
	u, err := url.Parse(fmt.Sprintf("%s%s", schemePrefix, addr.String()))
	if err != nil {
		panic(fmt.Sprintf("utils: failed to convert address %s to a URL: %v", addr, err))
	}
	return u
}
