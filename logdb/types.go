// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/slotio/slot-auction/slot"
)

// Event represents a slot.Event that can be stored in db, stamped with the
// operation timestamp and its index inside the operation.
type Event struct {
	Seq    uint64
	Ts     uint64
	Index  uint32
	Addr   slot.Address
	Topics [5]*slot.Bytes32
	Data   []byte
}

// newEvent converts slot.Event to Event.
func newEvent(ts uint64, index uint32, ev *slot.Event) *Event {
	event := &Event{
		Ts:    ts,
		Index: index,
		Addr:  ev.Address,
		Data:  ev.Data,
	}
	for i := 0; i < len(ev.Topics) && i < len(event.Topics); i++ {
		t := ev.Topics[i]
		event.Topics[i] = &t
	}
	return event
}

// Transfer represents a slot.Transfer that can be stored in db.
type Transfer struct {
	Seq       uint64
	Ts        uint64
	Index     uint32
	Sender    slot.Address
	Recipient slot.Address
	Amount    *big.Int
	Token     uint32
}

// newTransfer converts slot.Transfer to Transfer.
func newTransfer(ts uint64, index uint32, transfer *slot.Transfer) *Transfer {
	return &Transfer{
		Ts:        ts,
		Index:     index,
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
		Token:     uint32(transfer.Token),
	}
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Address *slot.Address
	Topics  [5]*slot.Bytes32
}

// EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

type TransferCriteria struct {
	Sender    *slot.Address
	Recipient *slot.Address
}

// TransferFilter filter
type TransferFilter struct {
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
