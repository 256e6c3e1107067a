package dex

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// go-ethereum unpacks uint24, int24, uint128 and uint160 into *big.Int,
// uint8 into uint8, and bytes32 into [32]byte.

func asAddress(value interface{}) (common.Address, error) {
	addr, ok := value.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
	return addr, nil
}

func asBig(value interface{}) (*big.Int, error) {
	b, ok := value.(*big.Int)
	if !ok || b == nil {
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
	return b, nil
}

// asFee decodes a uint24 fee tier.
func asFee(value interface{}) (uint32, error) {
	b, err := asBig(value)
	if err != nil {
		return 0, err
	}
	if b.Sign() < 0 || b.BitLen() > 24 {
		return 0, fmt.Errorf("uint24 overflow: %s", b)
	}
	return uint32(b.Uint64()), nil
}

// asInt24 decodes a tick or a tick spacing.
func asInt24(value interface{}) (int32, error) {
	b, err := asBig(value)
	if err != nil {
		return 0, err
	}
	if !b.IsInt64() || b.Int64() < -1<<23 || b.Int64() >= 1<<23 {
		return 0, fmt.Errorf("int24 overflow: %s", b)
	}
	return int32(b.Int64()), nil
}

// asUint160 decodes a sqrtPriceX96 slot0 value.
func asUint160(value interface{}) (*uint256.Int, error) {
	b, err := asBig(value)
	if err != nil {
		return nil, err
	}
	if b.Sign() < 0 || b.BitLen() > 160 {
		return nil, fmt.Errorf("uint160 overflow: %s", b)
	}
	u, _ := uint256.FromBig(b)
	return u, nil
}

func asUint8(value interface{}) (uint8, error) {
	v, ok := value.(uint8)
	if !ok {
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
	return v, nil
}

// bytes32Text trims the zero padding of a bytes32 symbol or name.
func bytes32Text(value interface{}) string {
	v, ok := value.([32]byte)
	if !ok {
		return ""
	}
	return string(bytes.TrimRight(v[:], "\x00"))
}
