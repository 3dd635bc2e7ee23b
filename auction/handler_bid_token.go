// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/slotio/slot-auction/slot"
)

// placeBidToken is the era-2 path. The bid amount is not caller-supplied: it
// is min(allowance, balance) of the caller's settlement tokens at call time.
// Funds are pulled before any record is touched, and the previous bidder's
// refund is best-effort so a refusing recipient cannot stall the auction.
//
// Admission deliberately does not re-check endTime expiry, only the settled
// flag; an expired round keeps accepting bids until someone settles it.
func (a *Auction) placeBidToken(env *Env, roundID *big.Int, url string) error {
	st := env.State()
	settings := a.GetSettings(st)
	round := a.GetRound(st)

	if round.ID.Cmp(roundID) != 0 {
		return ErrWrongRound
	}
	if round.Settled {
		return ErrAlreadySettled
	}

	tok := a.Token(st)
	allowance := tok.Allowance(env.Caller(), slot.AuctionModuleAddr)
	balance := tok.BalanceOf(env.Caller())
	amount := allowance
	if balance.Cmp(allowance) < 0 {
		amount = balance
	}

	if err := checkAdmission(settings, round, amount); err != nil {
		return err
	}

	// funds before state update: never credit a bid that was not collected
	if err := tok.TransferFrom(slot.AuctionModuleAddr, env.Caller(), slot.AuctionModuleAddr, amount); err != nil {
		a.logger.Warn("bid transfer-from failed", "bidder", env.Caller(), "amount", amount, "err", err)
		return ErrTokenTransferFailed
	}
	env.AddTransfer(env.Caller(), slot.AuctionModuleAddr, amount, slot.TokenSettlement)

	prevBidder := round.HighestBidder
	prevBid := round.HighestBid

	round.HighestBid = new(big.Int).Set(amount)
	round.HighestBidder = env.Caller()
	round.URL = url
	extended := extendIfNeeded(settings, round, env.Now())
	a.SetRound(st, round)
	env.AddCounter(bidsCounter)
	if extended {
		env.AddCounter(extensionsCounter)
	}

	if !prevBidder.IsZero() {
		a.refundBestEffort(env, prevBidder, prevBid)
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

// refundBestEffort tries to pay a former bidder back. A failure is
// downgraded to a refund-failed notification; the tokens stay in custody.
func (a *Auction) refundBestEffort(env *Env, to slot.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	if err := a.transferor.Send(env, to, amount); err != nil {
		a.logger.Warn("refund failed, tolerated", "to", to, "amount", amount, "err", err)
		a.emit(env, RefundFailedTopic, &RefundFailedEvent{
			To:     to,
			Amount: amount,
			Reason: err.Error(),
		})
		env.AddCounter(refundFailuresCounter)
	}
}
