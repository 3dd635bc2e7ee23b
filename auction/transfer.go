// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/slotio/slot-auction/builtin/token"
	"github.com/slotio/slot-auction/builtin/wtoken"
	"github.com/slotio/slot-auction/slot"
)

// Transferor pays out settlement value from the module's custody to an
// address. Implementations decide the asset and the fallback policy; the
// engine decides whether a failure is fatal or tolerated.
type Transferor interface {
	Send(env *Env, to slot.Address, amount *big.Int) error
}

// SendHook performs the direct native credit of a payout. The default hook
// is a plain balance move and cannot run recipient code; a custom hook must
// not allow the recipient unbounded computation (see slot.RefundGasStipend).
type SendHook func(env *Env, to slot.Address, amount *big.Int) error

// NativeTransferor is the era-1 strategy: validate custody, attempt a direct
// native credit, and on failure wrap the amount into the wrapped token and
// transfer that instead. The fallback leg must succeed.
type NativeTransferor struct {
	hook SendHook
}

// NewNativeTransferor creates the era-1 strategy. hook may be nil to use the
// default direct balance move.
func NewNativeTransferor(hook SendHook) *NativeTransferor {
	if hook == nil {
		hook = func(env *Env, to slot.Address, amount *big.Int) error {
			st := env.State()
			st.SubBalance(slot.AuctionModuleAddr, amount)
			st.AddBalance(to, amount)
			return nil
		}
	}
	return &NativeTransferor{hook: hook}
}

func (n *NativeTransferor) Send(env *Env, to slot.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	st := env.State()
	if st.GetBalance(slot.AuctionModuleAddr).Cmp(amount) < 0 {
		return ErrInsolvent
	}
	if err := n.hook(env, to, amount); err != nil {
		wrapped := wtoken.New(slot.WrappedTokenAddr, st)
		if err := wrapped.Deposit(slot.AuctionModuleAddr, amount); err != nil {
			return ErrFailingFallbackTransfer
		}
		if err := wrapped.Transfer(slot.AuctionModuleAddr, to, amount); err != nil {
			return ErrFailingFallbackTransfer
		}
		env.AddTransfer(slot.AuctionModuleAddr, to, amount, slot.TokenWrapped)
		return nil
	}
	env.AddTransfer(slot.AuctionModuleAddr, to, amount, slot.TokenNative)
	return nil
}

// CustodyReporter is implemented by transferors that can report the module's
// spendable custody of the asset they pay out with. Settlement uses it to
// skip a payout it could never fund.
type CustodyReporter interface {
	Custody(env *Env) *big.Int
}

// TokenTransferor is the era-2 strategy: a settlement token transfer out of
// the module's custody. Both a refusing and an insufficient-balance transfer
// count as failed; the engine maps failures to fatal or tolerated.
type TokenTransferor struct {
	tokenAddr slot.Address
}

// NewTokenTransferor creates the era-2 strategy against the given token
// account.
func NewTokenTransferor(tokenAddr slot.Address) *TokenTransferor {
	return &TokenTransferor{tokenAddr: tokenAddr}
}

// Custody reports the module's balance of the transferor's own token.
func (t *TokenTransferor) Custody(env *Env) *big.Int {
	return token.New(t.tokenAddr, env.State()).BalanceOf(slot.AuctionModuleAddr)
}

func (t *TokenTransferor) Send(env *Env, to slot.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	tok := token.New(t.tokenAddr, env.State())
	if err := tok.Transfer(slot.AuctionModuleAddr, to, amount); err != nil {
		return err
	}
	env.AddTransfer(slot.AuctionModuleAddr, to, amount, slot.TokenSettlement)
	return nil
}
