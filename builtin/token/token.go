// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

var (
	totalSupplyKey = slot.Blake2b([]byte("token-total-supply-key"))

	errInsufficientBalance   = errors.New("insufficient token balance")
	errInsufficientAllowance = errors.New("insufficient token allowance")
	errAccountFrozen         = errors.New("account frozen")
)

// Token binder of the settlement fungible token. Balances live on state
// accounts; allowances and supply live in the token account's storage. A
// frozen sender or recipient makes transfers fail, which is the in-state
// analogue of token transfer hooks and blocklists.
type Token struct {
	addr  slot.Address
	state *state.State
}

// New creates a token binder at the given address.
func New(addr slot.Address, state *state.State) *Token {
	return &Token{addr, state}
}

// Address returns the token account address.
func (t *Token) Address() slot.Address {
	return t.addr
}

// TotalSupply returns the minted supply.
func (t *Token) TotalSupply() (supply *big.Int) {
	t.state.DecodeStorage(t.addr, totalSupplyKey, func(raw []byte) error {
		if len(raw) == 0 {
			supply = &big.Int{}
			return nil
		}
		return rlp.DecodeBytes(raw, &supply)
	})
	return
}

func (t *Token) setTotalSupply(supply *big.Int) {
	t.state.EncodeStorage(t.addr, totalSupplyKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(supply)
	})
}

// BalanceOf returns the token balance of addr.
func (t *Token) BalanceOf(addr slot.Address) *big.Int {
	return t.state.GetTokenBalance(addr)
}

// Mint credits addr with amount and grows the supply.
func (t *Token) Mint(addr slot.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	t.state.AddTokenBalance(addr, amount)
	t.setTotalSupply(new(big.Int).Add(t.TotalSupply(), amount))
}

// Allowance returns the amount spender may pull from owner.
func (t *Token) Allowance(owner, spender slot.Address) *big.Int {
	return t.state.GetAllowance(owner, spender)
}

// Approve sets the amount spender may pull from owner.
func (t *Token) Approve(owner, spender slot.Address, amount *big.Int) {
	t.state.SetAllowance(owner, spender, amount)
}

// Freeze marks an account so transfers touching it fail.
func (t *Token) Freeze(addr slot.Address) {
	t.state.SetFrozen(addr, true)
}

// Unfreeze clears the frozen mark.
func (t *Token) Unfreeze(addr slot.Address) {
	t.state.SetFrozen(addr, false)
}

// Transfer moves amount from one account to another. A zero amount is a
// no-op. Fails without state change on frozen accounts or insufficient
// balance.
func (t *Token) Transfer(from, to slot.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if t.state.IsFrozen(from) || t.state.IsFrozen(to) {
		return errAccountFrozen
	}
	if !t.state.SubTokenBalance(from, amount) {
		return errInsufficientBalance
	}
	t.state.AddTokenBalance(to, amount)
	return nil
}

// TransferFrom moves amount from `from` to `to` on behalf of spender,
// consuming spender's allowance.
func (t *Token) TransferFrom(spender, from, to slot.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	allowance := t.Allowance(from, spender)
	if allowance.Cmp(amount) < 0 {
		return errInsufficientAllowance
	}
	if err := t.Transfer(from, to, amount); err != nil {
		return err
	}
	t.Approve(from, spender, new(big.Int).Sub(allowance, amount))
	return nil
}
