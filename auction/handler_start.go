// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/slotio/slot-auction/slot"
)

// createRound replaces the current round record with a fresh one: id bumped
// by exactly one, window [now, now+duration], no bid, sentinel metadata with
// validUntil reaching one duration past the scheduled end.
func (a *Auction) createRound(env *Env) error {
	st := env.State()
	settings := a.GetSettings(st)
	if settings.Duration == 0 {
		// a zero duration would create a round that expires on arrival
		return ErrCreateFailed
	}
	prev := a.GetRound(st)

	start := env.Now()
	end := start + settings.Duration
	round := &AuctionRound{
		ID:         new(big.Int).Add(prev.ID, big.NewInt(1)),
		HighestBid: new(big.Int),
		StartTime:  start,
		EndTime:    end,
		ValidUntil: new(big.Int).SetUint64(end + settings.Duration),
		URL:        slot.SentinelURL,
	}
	a.SetRound(st, round)

	a.emit(env, RoundCreatedTopic, &RoundCreatedEvent{
		RoundID:   round.ID,
		StartTime: round.StartTime,
		EndTime:   round.EndTime,
	})
	env.AddCounter(roundsCreatedCounter)
	a.logger.Info("round created", "id", round.ID, "start", start, "end", end)
	return nil
}

// Pause moves the engine into the administrative state. Owner-only.
func (a *Auction) Pause(env *Env) error {
	return a.run(env, "pause", func() error {
		if err := a.checkOwner(env); err != nil {
			return err
		}
		a.gate.Pause()
		return nil
	})
}

// Unpause resumes the engine. The first-ever unpause launches the auction:
// it creates round one and flips the launched flag, failing the whole call
// when creation is refused. Later unpauses create a new round only when the
// current one is already settled; unpausing over a still-open round changes
// nothing but the gate.
func (a *Auction) Unpause(env *Env) error {
	return a.run(env, "unpause", func() error {
		if err := a.checkOwner(env); err != nil {
			return err
		}
		if !a.gate.IsPaused() {
			return ErrNotPaused
		}
		st := env.State()
		settings := a.GetSettings(st)
		if !settings.Launched {
			if err := a.createRound(env); err != nil {
				return ErrLaunchFailed
			}
			settings.Launched = true
			a.SetSettings(st, settings)
			a.logger.Info("auction launched")
		} else if a.GetRound(st).Settled {
			if err := a.createRound(env); err != nil {
				return err
			}
		}
		a.gate.Unpause()
		return nil
	})
}
