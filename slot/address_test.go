// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotio/slot-auction/slot"
)

func TestParseAddressRoundtrip(t *testing.T) {
	addr := slot.BytesToAddress([]byte("some-account"))
	parsed, err := slot.ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	_, err = slot.ParseAddress("0x1234")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := slot.BytesToAddress([]byte("some-account"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var decoded slot.Address
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestIsZero(t *testing.T) {
	assert.True(t, slot.Address{}.IsZero())
	assert.False(t, slot.BytesToAddress([]byte("x")).IsZero())
	assert.True(t, slot.Bytes32{}.IsZero())
}

func TestBlake2bDeterministic(t *testing.T) {
	h1 := slot.Blake2b([]byte("bid-placed"))
	h2 := slot.Blake2b([]byte("bid-placed"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, slot.Blake2b([]byte("round-created")))
}

func TestEraNames(t *testing.T) {
	assert.Equal(t, "Native", slot.GetEraName(slot.EraNative))
	assert.Equal(t, "Token", slot.GetEraName(slot.EraToken))
	assert.False(t, slot.IsTokenEra(slot.EraNative))
	assert.True(t, slot.IsTokenEra(slot.EraToken))
}
