// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wtoken

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

var (
	errInsufficientNative  = errors.New("insufficient native balance to wrap")
	errInsufficientWrapped = errors.New("insufficient wrapped balance")
)

// WToken binder of the wrapped-native token. Wrapping moves native value into
// the token account and credits the holder with a wrapped claim; wrapped
// claims move with plain transfers and never run recipient code, which is why
// the engine falls back to it when a direct native payout fails.
type WToken struct {
	addr  slot.Address
	state *state.State
}

// New creates a wrapped token binder at the given address.
func New(addr slot.Address, state *state.State) *WToken {
	return &WToken{addr, state}
}

// Address returns the wrapped token account address.
func (w *WToken) Address() slot.Address {
	return w.addr
}

func (w *WToken) balanceKey(addr slot.Address) slot.Bytes32 {
	return slot.Blake2b([]byte("wtoken-balance-key"), addr.Bytes())
}

// BalanceOf returns the wrapped balance of addr.
func (w *WToken) BalanceOf(addr slot.Address) (balance *big.Int) {
	w.state.DecodeStorage(w.addr, w.balanceKey(addr), func(raw []byte) error {
		if len(raw) == 0 {
			balance = &big.Int{}
			return nil
		}
		return rlp.DecodeBytes(raw, &balance)
	})
	return
}

func (w *WToken) setBalance(addr slot.Address, balance *big.Int) {
	w.state.EncodeStorage(w.addr, w.balanceKey(addr), func() ([]byte, error) {
		return rlp.EncodeToBytes(balance)
	})
}

// Deposit wraps amount of holder's native balance into a wrapped claim.
func (w *WToken) Deposit(holder slot.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if !w.state.SubBalance(holder, amount) {
		return errInsufficientNative
	}
	w.state.AddBalance(w.addr, amount)
	w.setBalance(holder, new(big.Int).Add(w.BalanceOf(holder), amount))
	return nil
}

// Transfer moves a wrapped claim between holders.
func (w *WToken) Transfer(from, to slot.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	balance := w.BalanceOf(from)
	if balance.Cmp(amount) < 0 {
		return errInsufficientWrapped
	}
	w.setBalance(from, new(big.Int).Sub(balance, amount))
	w.setBalance(to, new(big.Int).Add(w.BalanceOf(to), amount))
	return nil
}
