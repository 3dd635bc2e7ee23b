// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
)

// Account is the persisted representation of an account. Balance is native
// value, Token is the settlement token balance, Frozen marks an account the
// token refuses to move funds for.
type Account struct {
	Balance *big.Int
	Token   *big.Int
	Frozen  bool
}

func emptyAccount() *Account {
	return &Account{Balance: new(big.Int), Token: new(big.Int)}
}

func (a *Account) copy() *Account {
	return &Account{
		Balance: new(big.Int).Set(a.Balance),
		Token:   new(big.Int).Set(a.Token),
		Frozen:  a.Frozen,
	}
}

// IsEmpty returns if an account is empty.
// An empty account has zero balances and is not frozen.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0 && a.Token.Sign() == 0 && !a.Frozen
}
