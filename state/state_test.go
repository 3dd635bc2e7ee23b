// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotio/slot-auction/lvldb"
	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

var (
	addr1   = slot.BytesToAddress([]byte("addr1"))
	addr2   = slot.BytesToAddress([]byte("addr2"))
	someKey = slot.Blake2b([]byte("some-key"))
)

func newState(t *testing.T) *state.State {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := state.New(kv)
	require.NoError(t, err)
	return st
}

func TestBalances(t *testing.T) {
	st := newState(t)

	assert.Equal(t, 0, st.GetBalance(addr1).Sign())
	st.AddBalance(addr1, big.NewInt(100))
	assert.Equal(t, big.NewInt(100), st.GetBalance(addr1))

	assert.False(t, st.SubBalance(addr1, big.NewInt(101)))
	assert.Equal(t, big.NewInt(100), st.GetBalance(addr1))

	assert.True(t, st.SubBalance(addr1, big.NewInt(40)))
	assert.Equal(t, big.NewInt(60), st.GetBalance(addr1))

	st.AddTokenBalance(addr1, big.NewInt(7))
	assert.Equal(t, big.NewInt(7), st.GetTokenBalance(addr1))
	assert.False(t, st.SubTokenBalance(addr1, big.NewInt(8)))
	assert.True(t, st.SubTokenBalance(addr1, big.NewInt(7)))
}

func TestCheckpointRevert(t *testing.T) {
	st := newState(t)
	st.AddBalance(addr1, big.NewInt(100))
	st.SetRawStorage(addr1, someKey, []byte("before"))
	st.SetAllowance(addr1, addr2, big.NewInt(10))

	checkpoint := st.NewCheckpoint()
	st.AddBalance(addr1, big.NewInt(900))
	st.SetRawStorage(addr1, someKey, []byte("after"))
	st.SetAllowance(addr1, addr2, big.NewInt(99))
	st.SetFrozen(addr2, true)

	st.RevertTo(checkpoint)
	assert.Equal(t, big.NewInt(100), st.GetBalance(addr1))
	assert.Equal(t, []byte("before"), st.GetRawStorage(addr1, someKey))
	assert.Equal(t, big.NewInt(10), st.GetAllowance(addr1, addr2))
	assert.False(t, st.IsFrozen(addr2))
}

func TestNestedCheckpoints(t *testing.T) {
	st := newState(t)
	st.AddBalance(addr1, big.NewInt(1))

	outer := st.NewCheckpoint()
	st.AddBalance(addr1, big.NewInt(10))
	inner := st.NewCheckpoint()
	st.AddBalance(addr1, big.NewInt(100))

	st.RevertTo(inner)
	assert.Equal(t, big.NewInt(11), st.GetBalance(addr1))
	st.RevertTo(outer)
	assert.Equal(t, big.NewInt(1), st.GetBalance(addr1))
}

func TestCommitAndReload(t *testing.T) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := state.New(kv)
	require.NoError(t, err)

	st.AddBalance(addr1, big.NewInt(42))
	st.SetRawStorage(addr1, someKey, []byte("persisted"))
	st.SetAllowance(addr1, addr2, big.NewInt(5))
	require.NoError(t, st.Commit())

	reloaded, err := state.New(kv)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), reloaded.GetBalance(addr1))
	assert.Equal(t, []byte("persisted"), reloaded.GetRawStorage(addr1, someKey))
	assert.Equal(t, big.NewInt(5), reloaded.GetAllowance(addr1, addr2))
	assert.NoError(t, reloaded.Err())
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := newState(t)

	st.EncodeStorage(addr1, someKey, func() ([]byte, error) {
		return []byte("payload"), nil
	})
	var got []byte
	st.DecodeStorage(addr1, someKey, func(raw []byte) error {
		got = raw
		return nil
	})
	assert.Equal(t, []byte("payload"), got)
	assert.NoError(t, st.Err())
}
