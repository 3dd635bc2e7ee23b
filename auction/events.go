// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/slotio/slot-auction/slot"
)

// Event names. Topic[0] of every emitted event is the blake2b hash of the
// name; Data is the RLP encoding of the payload struct. This wire form must
// stay stable across implementations.
const (
	EvRoundCreated           = "round-created"
	EvBidPlaced              = "bid-placed"
	EvRoundSettled           = "round-settled"
	EvDurationUpdated        = "duration-updated"
	EvReservePriceUpdated    = "reserve-price-updated"
	EvTimeBufferUpdated      = "time-buffer-updated"
	EvMinBidIncrementUpdated = "min-bid-increment-updated"
	EvRefundFailed           = "refund-failed"
	EvWhitelistUpdated       = "whitelist-updated"
	EvWinnerOverridden       = "winner-overridden"
)

var (
	RoundCreatedTopic           = slot.Blake2b([]byte(EvRoundCreated))
	BidPlacedTopic              = slot.Blake2b([]byte(EvBidPlaced))
	RoundSettledTopic           = slot.Blake2b([]byte(EvRoundSettled))
	DurationUpdatedTopic        = slot.Blake2b([]byte(EvDurationUpdated))
	ReservePriceUpdatedTopic    = slot.Blake2b([]byte(EvReservePriceUpdated))
	TimeBufferUpdatedTopic      = slot.Blake2b([]byte(EvTimeBufferUpdated))
	MinBidIncrementUpdatedTopic = slot.Blake2b([]byte(EvMinBidIncrementUpdated))
	RefundFailedTopic           = slot.Blake2b([]byte(EvRefundFailed))
	WhitelistUpdatedTopic       = slot.Blake2b([]byte(EvWhitelistUpdated))
	WinnerOverriddenTopic       = slot.Blake2b([]byte(EvWinnerOverridden))
)

type RoundCreatedEvent struct {
	RoundID   *big.Int
	StartTime uint64
	EndTime   uint64
}

type BidPlacedEvent struct {
	RoundID  *big.Int
	Bidder   slot.Address
	Amount   *big.Int
	Extended bool
	EndTime  uint64
	URL      string
}

type RoundSettledEvent struct {
	RoundID *big.Int
	Winner  slot.Address
	Amount  *big.Int
	URL     string
}

type DurationUpdatedEvent struct {
	Duration uint64
}

type ReservePriceUpdatedEvent struct {
	ReservePrice *big.Int
}

type TimeBufferUpdatedEvent struct {
	TimeBuffer uint64
}

type MinBidIncrementUpdatedEvent struct {
	Percentage uint8
}

type RefundFailedEvent struct {
	To     slot.Address
	Amount *big.Int
	Reason string
}

type WhitelistUpdatedEvent struct {
	Settler slot.Address
	Status  bool
}

type WinnerOverriddenEvent struct {
	RoundID        *big.Int
	OriginalWinner slot.Address
	NewWinner      slot.Address
	Amount         *big.Int
	Refunded       bool
}

func (a *Auction) emit(env *Env, topic slot.Bytes32, payload interface{}) {
	data, err := rlp.EncodeToBytes(payload)
	if err != nil {
		a.logger.Error("rlp encode event failed", "err", err)
		return
	}
	env.AddEvent(slot.AuctionModuleAddr, []slot.Bytes32{topic}, data)
}
