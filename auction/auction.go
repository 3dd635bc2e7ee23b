// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"log/slog"
	"math/big"
	"time"

	"github.com/slotio/slot-auction/builtin/token"
	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

var AuctionGlobInst *Auction

func GetAuctionGlobInst() *Auction {
	return AuctionGlobInst
}

func SetAuctionGlobInst(inst *Auction) {
	AuctionGlobInst = inst
}

// OwnerGate answers the owner capability check. Ownership plumbing itself is
// an external collaborator.
type OwnerGate interface {
	IsOwner(addr slot.Address) bool
}

// PauseGate holds the administrative paused/active state.
type PauseGate interface {
	IsPaused() bool
	Pause()
	Unpause()
}

// EventSink is the append-only notification sink.
type EventSink interface {
	Append(ts uint64, events slot.Events, transfers slot.Transfers) error
}

// SoloOwner is the single-owner implementation of OwnerGate.
type SoloOwner struct {
	Addr slot.Address
}

func (o SoloOwner) IsOwner(addr slot.Address) bool {
	return !addr.IsZero() && addr == o.Addr
}

// Gate is the trivial PauseGate. The engine starts paused and gets unpaused
// by the owner, which also launches the first round.
type Gate struct {
	paused bool
}

func NewGate(paused bool) *Gate {
	return &Gate{paused: paused}
}

func (g *Gate) IsPaused() bool { return g.paused }
func (g *Gate) Pause()         { g.paused = true }
func (g *Gate) Unpause()       { g.paused = false }

// Options configure the engine.
type Options struct {
	Era   uint32
	Owner OwnerGate
	Gate  PauseGate
	Sink  EventSink

	// Transferor overrides the era default payout strategy; tests use this
	// to inject failures.
	Transferor Transferor

	// Now overrides the clock, unix seconds.
	Now func() uint64
}

// Auction is the engine: it owns round creation, bid admission, extension,
// settlement and the token-era winner override, on top of state custodied by
// slot.AuctionModuleAddr.
type Auction struct {
	logger     *slog.Logger
	era        uint32
	owner      OwnerGate
	gate       PauseGate
	sink       EventSink
	transferor Transferor
	now        func() uint64

	entered bool
}

// New creates the engine.
func New(opts Options) *Auction {
	if opts.Era == 0 {
		opts.Era = slot.EraNative
	}
	if opts.Gate == nil {
		opts.Gate = NewGate(true)
	}
	if opts.Now == nil {
		opts.Now = func() uint64 { return uint64(time.Now().Unix()) }
	}
	if opts.Transferor == nil {
		if slot.IsTokenEra(opts.Era) {
			opts.Transferor = NewTokenTransferor(slot.SettlementTokenAddr)
		} else {
			opts.Transferor = NewNativeTransferor(nil)
		}
	}
	a := &Auction{
		logger:     slog.Default().With("pkg", "auction"),
		era:        opts.Era,
		owner:      opts.Owner,
		gate:       opts.Gate,
		sink:       opts.Sink,
		transferor: opts.Transferor,
		now:        opts.Now,
	}
	SetAuctionGlobInst(a)
	return a
}

// Era returns the engine era.
func (a *Auction) Era() uint32 {
	return a.era
}

// IsPaused reports the administrative state.
func (a *Auction) IsPaused() bool {
	return a.gate.IsPaused()
}

// NewEnv builds a call environment with the clock sampled once.
func (a *Auction) NewEnv(st *state.State, caller slot.Address, value *big.Int) *Env {
	return NewEnv(st, caller, value, a.now())
}

// Token returns the settlement token binder over the given state.
func (a *Auction) Token(st *state.State) *token.Token {
	return token.New(slot.SettlementTokenAddr, st)
}

// run executes one externally triggered operation: reentrancy guard,
// checkpoint, handler, and on success the flush of collected events to the
// sink. Any error reverts every state write and drops the notifications.
func (a *Auction) run(env *Env, op string, fn func() error) (err error) {
	if a.entered {
		return ErrReentrantCall
	}
	a.entered = true
	start := time.Now()
	defer func() {
		a.entered = false
		if err != nil {
			env.SetReturnData([]byte(err.Error()))
		}
		a.logger.Debug(op+" completed", "elapsed", slot.PrettyDuration(time.Since(start)), "err", err)
	}()

	checkpoint := env.State().NewCheckpoint()
	if err = fn(); err != nil {
		env.State().RevertTo(checkpoint)
		env.discard()
		return err
	}
	if err = env.State().Err(); err != nil {
		env.State().RevertTo(checkpoint)
		env.discard()
		return err
	}
	env.flushCounters()
	if a.sink != nil {
		if err := a.sink.Append(env.Now(), env.GetEvents(), env.GetTransfers()); err != nil {
			// sink trouble must not undo settled state, only gets logged
			a.logger.Error("event sink append failed", "err", err)
		}
	}
	return nil
}

func (a *Auction) checkOwner(env *Env) error {
	if a.owner == nil || !a.owner.IsOwner(env.Caller()) {
		return ErrNotOwner
	}
	return nil
}

// checkSettleAuthority gates the settlement-class operations: the owner in
// the native era, the whitelist in the token era.
func (a *Auction) checkSettleAuthority(env *Env) error {
	if slot.IsTokenEra(a.era) {
		if !a.IsSettler(env.State(), env.Caller()) {
			return ErrNotWhitelistedSettler
		}
		return nil
	}
	return a.checkOwner(env)
}

// InitConfig seeds the engine's settings at deployment.
type InitConfig struct {
	Admin           slot.Address
	Treasury        slot.Address
	Duration        uint64
	TimeBuffer      uint64
	MinBidIncrement uint8
	ReservePrice    *big.Int
}

// Initialize writes the initial settings exactly once. In the token era the
// deploying admin is auto-authorized as a settler.
func (a *Auction) Initialize(env *Env, cfg InitConfig) error {
	return a.run(env, "initialize", func() error {
		st := env.State()
		settings := a.GetSettings(st)
		if !settings.Treasury.IsZero() || settings.Launched {
			return ErrAlreadyInitialized
		}
		if cfg.Treasury.IsZero() {
			return ErrInvalidParam
		}
		if cfg.MinBidIncrement < 1 {
			return ErrInvalidParam
		}
		settings.Treasury = cfg.Treasury
		settings.Duration = cfg.Duration
		settings.TimeBuffer = cfg.TimeBuffer
		settings.MinBidIncrement = cfg.MinBidIncrement
		if cfg.ReservePrice != nil {
			settings.ReservePrice = new(big.Int).Set(cfg.ReservePrice)
		}
		if slot.IsTokenEra(a.era) {
			settings.SettlementToken = slot.SettlementTokenAddr
			list := newSettlerList()
			list.Add(cfg.Admin)
			a.SetSettlerList(st, list)
		}
		a.SetSettings(st, settings)
		a.logger.Info("auction initialized", "era", slot.GetEraName(a.era),
			"treasury", cfg.Treasury, "duration", cfg.Duration, "reservePrice", settings.ReservePrice)
		return nil
	})
}

// SetDuration updates the round duration. Owner-only, paused-only.
func (a *Auction) SetDuration(env *Env, duration uint64) error {
	return a.run(env, "setDuration", func() error {
		if err := a.checkOwner(env); err != nil {
			return err
		}
		if !a.gate.IsPaused() {
			return ErrNotPaused
		}
		settings := a.GetSettings(env.State())
		settings.Duration = duration
		a.SetSettings(env.State(), settings)
		a.emit(env, DurationUpdatedTopic, &DurationUpdatedEvent{Duration: duration})
		return nil
	})
}

// SetReservePrice updates the reserve price. Owner-only, paused-only.
func (a *Auction) SetReservePrice(env *Env, price *big.Int) error {
	return a.run(env, "setReservePrice", func() error {
		if err := a.checkOwner(env); err != nil {
			return err
		}
		if !a.gate.IsPaused() {
			return ErrNotPaused
		}
		settings := a.GetSettings(env.State())
		settings.ReservePrice = new(big.Int).Set(price)
		a.SetSettings(env.State(), settings)
		a.emit(env, ReservePriceUpdatedTopic, &ReservePriceUpdatedEvent{ReservePrice: price})
		return nil
	})
}

// SetTimeBuffer updates the extension window. Owner-only, paused-only.
func (a *Auction) SetTimeBuffer(env *Env, buffer uint64) error {
	return a.run(env, "setTimeBuffer", func() error {
		if err := a.checkOwner(env); err != nil {
			return err
		}
		if !a.gate.IsPaused() {
			return ErrNotPaused
		}
		settings := a.GetSettings(env.State())
		settings.TimeBuffer = buffer
		a.SetSettings(env.State(), settings)
		a.emit(env, TimeBufferUpdatedTopic, &TimeBufferUpdatedEvent{TimeBuffer: buffer})
		return nil
	})
}

// SetMinBidIncrement updates the increment percentage, at least 1.
// Owner-only, paused-only.
func (a *Auction) SetMinBidIncrement(env *Env, percentage uint8) error {
	return a.run(env, "setMinBidIncrement", func() error {
		if err := a.checkOwner(env); err != nil {
			return err
		}
		if !a.gate.IsPaused() {
			return ErrNotPaused
		}
		if percentage < 1 {
			return ErrInvalidParam
		}
		settings := a.GetSettings(env.State())
		settings.MinBidIncrement = percentage
		a.SetSettings(env.State(), settings)
		a.emit(env, MinBidIncrementUpdatedTopic, &MinBidIncrementUpdatedEvent{Percentage: percentage})
		return nil
	})
}

// SetTreasury updates the payout destination, non-zero. Owner-only,
// paused-only.
func (a *Auction) SetTreasury(env *Env, treasury slot.Address) error {
	return a.run(env, "setTreasury", func() error {
		if err := a.checkOwner(env); err != nil {
			return err
		}
		if !a.gate.IsPaused() {
			return ErrNotPaused
		}
		if treasury.IsZero() {
			return ErrInvalidParam
		}
		settings := a.GetSettings(env.State())
		settings.Treasury = treasury
		a.SetSettings(env.State(), settings)
		return nil
	})
}

// AddSettler authorizes an address to settle rounds. Owner-only, token era.
func (a *Auction) AddSettler(env *Env, settler slot.Address) error {
	return a.run(env, "addSettler", func() error {
		if !slot.IsTokenEra(a.era) {
			return ErrUnsupportedEra
		}
		if err := a.checkOwner(env); err != nil {
			return err
		}
		if settler.IsZero() {
			return ErrInvalidParam
		}
		list := a.GetSettlerList(env.State())
		list.Add(settler)
		a.SetSettlerList(env.State(), list)
		a.emit(env, WhitelistUpdatedTopic, &WhitelistUpdatedEvent{Settler: settler, Status: true})
		return nil
	})
}

// RemoveSettler revokes a settler. Owner-only, token era.
func (a *Auction) RemoveSettler(env *Env, settler slot.Address) error {
	return a.run(env, "removeSettler", func() error {
		if !slot.IsTokenEra(a.era) {
			return ErrUnsupportedEra
		}
		if err := a.checkOwner(env); err != nil {
			return err
		}
		list := a.GetSettlerList(env.State())
		list.Remove(settler)
		a.SetSettlerList(env.State(), list)
		a.emit(env, WhitelistUpdatedTopic, &WhitelistUpdatedEvent{Settler: settler, Status: false})
		return nil
	})
}
