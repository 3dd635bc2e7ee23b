// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/slotio/slot-auction/slot"
)

// settleRound closes the current round: marks it settled, pays the winning
// bid to the treasury, and parks the winner's metadata in the pending slot
// for the next round to pick up. Any recorded bidder wins the slot, even at
// a zero amount under a zero reserve; only the payout needs a positive bid.
// A round nobody bid in settles with the sentinel metadata so the slot goes
// dark until someone wins again.
func (a *Auction) settleRound(env *Env) error {
	st := env.State()
	settings := a.GetSettings(st)
	round := a.GetRound(st)

	if round.Settled {
		return ErrAlreadySettled
	}
	if !round.HasStarted() {
		return ErrNotStarted
	}
	if env.Now() < round.EndTime {
		return ErrStillActive
	}

	round.Settled = true

	hasWinner := !round.HighestBidder.IsZero()
	if hasWinner {
		if err := a.payTreasury(env, settings, round); err != nil {
			return err
		}
		settings.PendingValidUntil = new(big.Int).SetUint64(env.Now() + settings.Duration)
		settings.PendingURL = round.URL
	} else {
		settings.PendingValidUntil = new(big.Int)
		settings.PendingURL = slot.SentinelURL
	}

	a.SetRound(st, round)
	a.SetSettings(st, settings)

	a.emit(env, RoundSettledTopic, &RoundSettledEvent{
		RoundID: round.ID,
		Winner:  round.HighestBidder,
		Amount:  round.HighestBid,
		URL:     round.URL,
	})
	env.AddCounter(roundsSettledCounter)
	a.logger.Info("round settled", "id", round.ID,
		"winner", round.HighestBidder, "amount", round.HighestBid, "url", round.URL)
	return nil
}

// payTreasury moves the winning bid from custody to the treasury. Token-era
// custody can run short after tolerated refund failures, so when the
// transferor reports the shortfall the payout is skipped rather than wedging
// settlement. The custody read goes through the transferor itself so the
// check and the transfer always agree on the asset.
func (a *Auction) payTreasury(env *Env, settings *AuctionSettings, round *AuctionRound) error {
	if round.HighestBid.Sign() == 0 {
		return nil
	}
	if slot.IsTokenEra(a.era) {
		if cr, ok := a.transferor.(CustodyReporter); ok {
			if cr.Custody(env).Cmp(round.HighestBid) < 0 {
				a.logger.Warn("custody short of winning bid, payout skipped",
					"round", round.ID, "bid", round.HighestBid)
				return nil
			}
		}
		if err := a.transferor.Send(env, settings.Treasury, round.HighestBid); err != nil {
			return ErrTokenTransferFailed
		}
		return nil
	}
	return a.transferor.Send(env, settings.Treasury, round.HighestBid)
}

// SettleRound settles the current round without starting a new one. Open to
// anyone in the native era; token-era settlement is restricted to the
// whitelist.
func (a *Auction) SettleRound(env *Env) error {
	return a.run(env, "settleRound", func() error {
		if slot.IsTokenEra(a.era) {
			if !a.IsSettler(env.State(), env.Caller()) {
				return ErrNotWhitelistedSettler
			}
		}
		return a.settleRound(env)
	})
}

// AdvanceRound settles the current round and creates the next one in a
// single atomic step; if either half fails, neither happened.
func (a *Auction) AdvanceRound(env *Env) error {
	return a.run(env, "advanceRound", func() error {
		if err := a.checkSettleAuthority(env); err != nil {
			return err
		}
		if a.gate.IsPaused() {
			return ErrPaused
		}
		if err := a.settleRound(env); err != nil {
			return err
		}
		return a.createRound(env)
	})
}
