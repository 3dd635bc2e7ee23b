// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import "math/big"

// Event is a notification emitted by the engine. Topics[0] is the blake2b
// hash of the event name; Data is the RLP encoding of the payload so the
// wire form stays stable across implementations.
type Event struct {
	Address Address
	Topics  []Bytes32
	Data    []byte
}

// Events slice of events.
type Events []*Event

// Transfer value transfer log.
type Transfer struct {
	Sender    Address
	Recipient Address
	Amount    *big.Int
	Token     byte
}

// Transfers slice of transfer logs.
type Transfers []*Transfer

// Token identifiers used in transfer logs.
const (
	TokenNative     = byte(0)
	TokenWrapped    = byte(1)
	TokenSettlement = byte(2)
)
