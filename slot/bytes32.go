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

// Bytes32 array of 32 bytes, used for hashes and storage keys.
type Bytes32 [32]byte

// String implements the stringer interface.
func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// AbbrevString returns an abbreviated form for logging.
func (b Bytes32) AbbrevString() string {
	full := hex.EncodeToString(b[:])
	return "0x" + full[:4] + "…" + full[len(full)-4:]
}

// Bytes returns the byte slice form.
func (b Bytes32) Bytes() []byte {
	return b[:]
}

// IsZero returns true if all bytes are zero.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// MarshalText implements encoding.TextMarshaler, so hashes render as
// 0x-prefixed hex in json.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes32) UnmarshalText(text []byte) error {
	parsed, err := ParseBytes32(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 converts a "0x" prefixed hex string to Bytes32.
func ParseBytes32(s string) (Bytes32, error) {
	if len(s) == 64+2 {
		if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
			return Bytes32{}, errors.New("invalid prefix")
		}
		s = s[2:]
	}
	if len(s) != 64 {
		return Bytes32{}, errors.New("invalid length")
	}
	var b Bytes32
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

// MustParseBytes32 converts a hex string to Bytes32, panics on error.
func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(fmt.Errorf("invalid bytes32 %q: %v", s, err))
	}
	return b
}

// BytesToBytes32 converts a byte slice to Bytes32, left-padded or
// left-truncated to 32 bytes.
func BytesToBytes32(b []byte) Bytes32 {
	var b32 Bytes32
	if len(b) > len(b32) {
		b = b[len(b)-32:]
	}
	copy(b32[32-len(b):], b)
	return b32
}
