// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Address represents a 20 byte account address.
type Address [20]byte

var (
	// ZeroAddress is the all-zero address, used as the "no bidder" marker.
	ZeroAddress = Address{}
)

// String implements the stringer interface.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// AbbrevString returns an abbreviated form of the address for logging.
func (a Address) AbbrevString() string {
	full := hex.EncodeToString(a[:])
	return "0x" + full[:4] + "…" + full[len(full)-4:]
}

// Bytes returns the byte slice form of the address.
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero returns true if the address is all zero.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler, so addresses render as
// 0x-prefixed hex in json.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress converts a "0x" prefixed hex string to an address.
func ParseAddress(s string) (Address, error) {
	if len(s) == 40+2 {
		if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
			return Address{}, errors.New("invalid prefix")
		}
		s = s[2:]
	}
	if len(s) != 40 {
		return Address{}, errors.New("invalid length")
	}
	var addr Address
	if _, err := hex.Decode(addr[:], []byte(s)); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// MustParseAddress converts a hex string to an address, panics on error.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(fmt.Errorf("invalid address %q: %v", s, err))
	}
	return addr
}

// BytesToAddress converts a byte slice to an address, left-padded or
// left-truncated to 20 bytes.
func BytesToAddress(b []byte) Address {
	var addr Address
	if len(b) > len(addr) {
		b = b[len(b)-20:]
	}
	copy(addr[20-len(b):], b)
	return addr
}
