// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotio/slot-auction/logdb"
	"github.com/slotio/slot-auction/slot"
)

var (
	moduleAddr = slot.BytesToAddress([]byte("module"))
	sender     = slot.BytesToAddress([]byte("sender"))
	recipient  = slot.BytesToAddress([]byte("recipient"))
	topicA     = slot.Blake2b([]byte("topic-a"))
	topicB     = slot.Blake2b([]byte("topic-b"))
)

func newDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func appendSample(t *testing.T, db *logdb.LogDB) {
	events := slot.Events{
		{Address: moduleAddr, Topics: []slot.Bytes32{topicA}, Data: []byte("one")},
		{Address: moduleAddr, Topics: []slot.Bytes32{topicB}, Data: []byte("two")},
	}
	transfers := slot.Transfers{
		{Sender: sender, Recipient: recipient, Amount: big.NewInt(100), Token: slot.TokenNative},
	}
	require.NoError(t, db.Append(1000, events, transfers))
	require.NoError(t, db.Append(2000, slot.Events{
		{Address: moduleAddr, Topics: []slot.Bytes32{topicA}, Data: []byte("three")},
	}, nil))
}

func TestAppendAndFilterAll(t *testing.T) {
	db := newDB(t)
	appendSample(t, db)

	events, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 3)
	assert.Equal(t, []byte("one"), events[0].Data)
	assert.Equal(t, moduleAddr, events[0].Addr)
	require.NotNil(t, events[0].Topics[0])
	assert.Equal(t, topicA, *events[0].Topics[0])
}

func TestFilterEventsByTopic(t *testing.T) {
	db := newDB(t)
	appendSample(t, db)

	events, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Topics: [5]*slot.Bytes32{&topicA}}},
		Order:       logdb.DESC,
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, []byte("three"), events[0].Data)
	assert.Equal(t, []byte("one"), events[1].Data)
}

func TestFilterEventsByRangeAndLimit(t *testing.T) {
	db := newDB(t)
	appendSample(t, db)

	events, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		Range:   &logdb.Range{From: 0, To: 1500},
		Options: &logdb.Options{Offset: 0, Limit: 1},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(1000), events[0].Ts)
}

func TestFilterTransfers(t *testing.T) {
	db := newDB(t)
	appendSample(t, db)

	transfers, err := db.FilterTransfers(context.Background(), &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Recipient: &recipient}},
	})
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, sender, transfers[0].Sender)
	assert.Equal(t, big.NewInt(100), transfers[0].Amount)
	assert.Equal(t, uint32(slot.TokenNative), transfers[0].Token)

	none, err := db.FilterTransfers(context.Background(), &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Recipient: &sender}},
	})
	require.NoError(t, err)
	assert.Len(t, none, 0)
}
