// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

// Env is the per-call environment of a handler. Time is sampled once at
// construction and never re-read mid operation. Events, transfers and metric
// bumps are collected here and only land when the whole operation succeeds.
type Env struct {
	state  *state.State
	caller slot.Address
	value  *big.Int
	now    uint64

	returnData []byte
	events     []*slot.Event
	transfers  []*slot.Transfer
	counters   []prometheus.Counter
}

// NewEnv creates a call environment. value is the native value attached to
// the call (era 1 bids); pass nil when no value rides along.
func NewEnv(state *state.State, caller slot.Address, value *big.Int, now uint64) *Env {
	if value == nil {
		value = new(big.Int)
	}
	return &Env{
		state:      state,
		caller:     caller,
		value:      value,
		now:        now,
		returnData: make([]byte, 0),
		events:     make([]*slot.Event, 0),
		transfers:  make([]*slot.Transfer, 0),
	}
}

func (env *Env) State() *state.State  { return env.state }
func (env *Env) Caller() slot.Address { return env.caller }
func (env *Env) Value() *big.Int      { return env.value }
func (env *Env) Now() uint64          { return env.now }

func (env *Env) SetReturnData(data []byte) {
	env.returnData = data
}

func (env *Env) GetReturnData() []byte {
	if len(env.returnData) == 0 {
		return nil
	}
	return env.returnData
}

func (env *Env) AddTransfer(sender, recipient slot.Address, amount *big.Int, token byte) {
	env.transfers = append(env.transfers, &slot.Transfer{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Token:     token,
	})
}

func (env *Env) AddEvent(address slot.Address, topics []slot.Bytes32, data []byte) {
	env.events = append(env.events, &slot.Event{
		Address: address,
		Topics:  topics,
		Data:    data,
	})
}

func (env *Env) GetTransfers() slot.Transfers { return env.transfers }
func (env *Env) GetEvents() slot.Events       { return env.events }

// AddCounter queues a metric bump for the commit of the operation.
func (env *Env) AddCounter(c prometheus.Counter) {
	env.counters = append(env.counters, c)
}

func (env *Env) flushCounters() {
	for _, c := range env.counters {
		c.Inc()
	}
	env.counters = env.counters[:0]
}

// discard drops collected notifications after a revert.
func (env *Env) discard() {
	env.events = env.events[:0]
	env.transfers = env.transfers[:0]
	env.counters = env.counters[:0]
}
