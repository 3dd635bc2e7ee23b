// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotio/slot-auction/builtin/token"
	"github.com/slotio/slot-auction/lvldb"
	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

var (
	holder  = slot.BytesToAddress([]byte("holder"))
	spender = slot.BytesToAddress([]byte("spender"))
	other   = slot.BytesToAddress([]byte("other"))
)

func newToken(t *testing.T) *token.Token {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := state.New(kv)
	require.NoError(t, err)
	return token.New(slot.SettlementTokenAddr, st)
}

func TestMintAndSupply(t *testing.T) {
	tok := newToken(t)
	assert.Equal(t, 0, tok.TotalSupply().Sign())

	tok.Mint(holder, big.NewInt(1000))
	tok.Mint(other, big.NewInt(500))
	assert.Equal(t, big.NewInt(1500), tok.TotalSupply())
	assert.Equal(t, big.NewInt(1000), tok.BalanceOf(holder))
}

func TestTransfer(t *testing.T) {
	tok := newToken(t)
	tok.Mint(holder, big.NewInt(100))

	require.NoError(t, tok.Transfer(holder, other, big.NewInt(40)))
	assert.Equal(t, big.NewInt(60), tok.BalanceOf(holder))
	assert.Equal(t, big.NewInt(40), tok.BalanceOf(other))

	assert.Error(t, tok.Transfer(holder, other, big.NewInt(61)))
	assert.Equal(t, big.NewInt(60), tok.BalanceOf(holder))

	assert.NoError(t, tok.Transfer(holder, other, new(big.Int)), "zero amount is a no-op")
}

func TestTransferFrozen(t *testing.T) {
	tok := newToken(t)
	tok.Mint(holder, big.NewInt(100))

	tok.Freeze(other)
	assert.Error(t, tok.Transfer(holder, other, big.NewInt(10)))

	tok.Unfreeze(other)
	tok.Freeze(holder)
	assert.Error(t, tok.Transfer(holder, other, big.NewInt(10)))

	tok.Unfreeze(holder)
	assert.NoError(t, tok.Transfer(holder, other, big.NewInt(10)))
}

func TestTransferFrom(t *testing.T) {
	tok := newToken(t)
	tok.Mint(holder, big.NewInt(100))
	tok.Approve(holder, spender, big.NewInt(70))

	assert.Error(t, tok.TransferFrom(spender, holder, other, big.NewInt(71)))

	require.NoError(t, tok.TransferFrom(spender, holder, other, big.NewInt(50)))
	assert.Equal(t, big.NewInt(50), tok.BalanceOf(other))
	assert.Equal(t, big.NewInt(20), tok.Allowance(holder, spender))

	assert.Error(t, tok.TransferFrom(spender, holder, other, big.NewInt(21)),
		"allowance spent down")
}
