// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/slotio/slot-auction/slot"
)

// checkAdmission applies the reserve/increment rules to a candidate amount.
// First bid: at least the reserve price. Later bids: at least the last bid
// plus the configured percentage of it, floor division, with the degenerate
// case of a zero minimum against a zero bid rejected outright.
func checkAdmission(settings *AuctionSettings, round *AuctionRound, amount *big.Int) error {
	if round.HighestBidder.IsZero() {
		if amount.Cmp(settings.ReservePrice) < 0 {
			return ErrReserveNotMet
		}
		return nil
	}
	last := round.HighestBid
	step := new(big.Int).Div(new(big.Int).Mul(last, big.NewInt(int64(settings.MinBidIncrement))), big.NewInt(100))
	minimum := new(big.Int).Add(last, step)
	if amount.Cmp(minimum) < 0 {
		return ErrMinimumNotMet
	}
	if minimum.Sign() == 0 && amount.Sign() == 0 {
		return ErrMinimumNotMet
	}
	return nil
}

// extendIfNeeded pushes the round end forward when the bid lands inside the
// trailing time buffer, or past the scheduled end in the token era. endTime
// only ever moves forward.
func extendIfNeeded(settings *AuctionSettings, round *AuctionRound, now uint64) bool {
	if round.EndTime < now+settings.TimeBuffer {
		round.EndTime = now + settings.TimeBuffer
		return true
	}
	return false
}

// PlaceBid admits a bid for roundID carrying the slot url. In the native era
// the bid amount is the value attached to the env; in the token era it is
// derived from the caller's authorized token balance.
func (a *Auction) PlaceBid(env *Env, roundID *big.Int, url string) error {
	return a.run(env, "bid", func() error {
		if slot.IsTokenEra(a.era) {
			return a.placeBidToken(env, roundID, url)
		}
		return a.placeBidNative(env, roundID, url)
	})
}

// placeBidNative is the era-1 path: value rides along with the call, the
// previous bidder's refund is fatal on failure.
func (a *Auction) placeBidNative(env *Env, roundID *big.Int, url string) error {
	st := env.State()
	settings := a.GetSettings(st)
	round := a.GetRound(st)

	if round.ID.Cmp(roundID) != 0 {
		return ErrWrongRound
	}
	if env.Now() >= round.EndTime {
		return ErrRoundOver
	}
	value := env.Value()
	if err := checkAdmission(settings, round, value); err != nil {
		return err
	}

	// collect the attached value into custody
	if !st.SubBalance(env.Caller(), value) {
		return ErrNotEnoughBalance
	}
	st.AddBalance(slot.AuctionModuleAddr, value)
	env.AddTransfer(env.Caller(), slot.AuctionModuleAddr, value, slot.TokenNative)

	prevBidder := round.HighestBidder
	prevBid := round.HighestBid

	round.HighestBid = new(big.Int).Set(value)
	round.HighestBidder = env.Caller()
	round.URL = url
	extended := extendIfNeeded(settings, round, env.Now())
	a.SetRound(st, round)
	env.AddCounter(bidsCounter)
	if extended {
		env.AddCounter(extensionsCounter)
	}

	if !prevBidder.IsZero() {
		// fatal: a failed refund aborts the whole bid
		if err := a.transferor.Send(env, prevBidder, prevBid); err != nil {
			a.logger.Warn("refund failed, bid aborted", "to", prevBidder, "amount", prevBid, "err", err)
			return err
		}
	}

	a.emit(env, BidPlacedTopic, &BidPlacedEvent{
		RoundID:  round.ID,
		Bidder:   env.Caller(),
		Amount:   round.HighestBid,
		Extended: extended,
		EndTime:  round.EndTime,
		URL:      url,
	})
	a.logger.Info("bid placed", "round", round.ID, "bidder", env.Caller(),
		"amount", round.HighestBid, "extended", extended, "end", round.EndTime)
	return nil
}
