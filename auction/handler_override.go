// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/slotio/slot-auction/slot"
)

// OverrideWinner replaces the current round's leading bidder and url while
// keeping the recorded bid amount. Token era only, whitelist gated; meant for
// moderation of an abusive winning entry before settlement. When
// refundOriginal is set the displaced bidder gets their bid back best-effort;
// either way the bid stays on the books so settlement pays the treasury the
// same amount.
func (a *Auction) OverrideWinner(env *Env, bidder slot.Address, url string, refundOriginal bool) error {
	return a.run(env, "overrideWinner", func() error {
		if !slot.IsTokenEra(a.era) {
			return ErrUnsupportedEra
		}
		if a.gate.IsPaused() {
			return ErrPaused
		}
		st := env.State()
		if !a.IsSettler(st, env.Caller()) {
			return ErrNotWhitelistedSettler
		}
		round := a.GetRound(st)
		if round.Settled {
			return ErrAlreadySettled
		}

		original := round.HighestBidder
		amount := new(big.Int).Set(round.HighestBid)
		refunded := refundOriginal && !original.IsZero() && amount.Sign() > 0
		if refunded {
			a.refundBestEffort(env, original, amount)
		}

		round.HighestBidder = bidder
		round.URL = url
		a.SetRound(st, round)

		a.emit(env, WinnerOverriddenTopic, &WinnerOverriddenEvent{
			RoundID:        round.ID,
			OriginalWinner: original,
			NewWinner:      bidder,
			Amount:         amount,
			Refunded:       refunded,
		})
		env.AddCounter(overridesCounter)
		a.logger.Info("winner overridden", "round", round.ID,
			"original", original, "new", bidder, "refunded", refunded)
		return nil
	})
}
