// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/big"
	"time"

	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

// AuctionRound is the mutable current-round record, replaced each cycle.
// A zero HighestBidder address means no bid was admitted yet.
type AuctionRound struct {
	ID            *big.Int
	HighestBid    *big.Int
	HighestBidder slot.Address
	StartTime     uint64
	EndTime       uint64
	Settled       bool

	ValidUntil *big.Int
	URL        string
}

func newAuctionRound() *AuctionRound {
	return &AuctionRound{
		ID:         new(big.Int),
		HighestBid: new(big.Int),
		ValidUntil: new(big.Int),
		URL:        slot.SentinelURL,
	}
}

// HasStarted reports whether a round was ever created.
func (r *AuctionRound) HasStarted() bool {
	return r.StartTime != 0
}

func (r *AuctionRound) ToString() string {
	return fmt.Sprintf("AuctionRound(id=%v, highestBid=%v, highestBidder=%v, start=%v, end=%v, settled=%v, url=%q)",
		r.ID, r.HighestBid, r.HighestBidder.AbbrevString(),
		time.Unix(int64(r.StartTime), 0).UTC().Format(time.RFC3339),
		time.Unix(int64(r.EndTime), 0).UTC().Format(time.RFC3339),
		r.Settled, r.URL)
}

func (r *AuctionRound) String() string {
	return r.ToString()
}

// GetRound loads the current round record, returning the zero round when
// none was created yet.
func (a *Auction) GetRound(st *state.State) (result *AuctionRound) {
	st.DecodeStorage(slot.AuctionModuleAddr, slot.AuctionRoundKey, func(raw []byte) error {
		decoder := gob.NewDecoder(bytes.NewBuffer(raw))
		var round AuctionRound
		err := decoder.Decode(&round)
		if err != nil {
			if err.Error() == "EOF" && len(raw) == 0 {
				// empty raw, do nothing
			} else {
				a.logger.Warn("error during decoding auction round, use zero round", "err", err)
			}
			result = newAuctionRound()
			return nil
		}
		result = &round
		return nil
	})
	return
}

// SetRound stores the current round record.
func (a *Auction) SetRound(st *state.State, round *AuctionRound) {
	st.EncodeStorage(slot.AuctionModuleAddr, slot.AuctionRoundKey, func() ([]byte, error) {
		buf := bytes.NewBuffer([]byte{})
		encoder := gob.NewEncoder(buf)
		err := encoder.Encode(round)
		return buf.Bytes(), err
	})
}
