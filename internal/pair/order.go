package pair

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"liquidityRange/internal/model"
	"liquidityRange/internal/tickmath"
)

// compareAddress orders two addresses. Hex addresses compare on their 20 bytes
// so checksummed and lower-case forms agree; anything else compares as a
// lower-cased string.
func compareAddress(a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if common.IsHexAddress(a) && common.IsHexAddress(b) {
		addrA, addrB := common.HexToAddress(a), common.HexToAddress(b)
		return bytes.Compare(addrA[:], addrB[:])
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// IsSorted reports whether a already sorts before b, or the pair cannot be
// compared because an address is missing or both are equal.
func IsSorted(a, b model.TokenMeta) bool {
	if strings.TrimSpace(a.Address) == "" || strings.TrimSpace(b.Address) == "" {
		return true
	}
	return compareAddress(a.Address, b.Address) <= 0
}

// ReorderByAddress returns the pair as (token0, token1) in ascending address
// order. Equal or missing addresses leave the input unchanged.
func ReorderByAddress(a, b model.TokenMeta) (model.TokenMeta, model.TokenMeta) {
	if IsSorted(a, b) {
		return a, b
	}
	return b, a
}

// Orient sorts base and quote into protocol order and reports the direction
// that quotes prices as quote per base.
func Orient(base, quote model.TokenMeta) (model.TokenMeta, model.TokenMeta, tickmath.Direction) {
	if IsSorted(base, quote) {
		return base, quote, tickmath.Token0Base
	}
	return quote, base, tickmath.Token1Base
}
