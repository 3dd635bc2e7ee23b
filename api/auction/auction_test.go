// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiauction "github.com/slotio/slot-auction/api/auction"
	"github.com/slotio/slot-auction/auction"
	"github.com/slotio/slot-auction/lvldb"
	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

var (
	admin    = slot.BytesToAddress([]byte("admin"))
	treasury = slot.BytesToAddress([]byte("treasury"))
)

func initAuctionServer(t *testing.T) *httptest.Server {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := state.New(kv)
	require.NoError(t, err)

	engine := auction.New(auction.Options{
		Era:   slot.EraToken,
		Owner: auction.SoloOwner{Addr: admin},
		Now:   func() uint64 { return 1_700_000_000 },
	})
	env := engine.NewEnv(st, admin, nil)
	require.NoError(t, engine.Initialize(env, auction.InitConfig{
		Admin:           admin,
		Treasury:        treasury,
		Duration:        3600,
		TimeBuffer:      300,
		MinBidIncrement: 10,
		ReservePrice:    big.NewInt(100),
	}))
	require.NoError(t, engine.Unpause(engine.NewEnv(st, admin, nil)))

	router := mux.NewRouter()
	apiauction.New(engine, func() *state.State { return st }).Mount(router, "/auction")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string, obj interface{}) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, obj))
}

func TestGetSettings(t *testing.T) {
	ts := initAuctionServer(t)

	var settings apiauction.Settings
	httpGet(t, ts.URL+"/auction/settings", &settings)
	assert.Equal(t, treasury, settings.Treasury)
	assert.Equal(t, uint64(3600), settings.Duration)
	assert.Equal(t, uint64(300), settings.TimeBuffer)
	assert.Equal(t, uint8(10), settings.MinBidIncrement)
	assert.Equal(t, "100", settings.ReservePrice)
	assert.True(t, settings.Launched)
	assert.Equal(t, slot.SettlementTokenAddr, settings.SettlementToken)
}

func TestGetRound(t *testing.T) {
	ts := initAuctionServer(t)

	var round apiauction.Round
	httpGet(t, ts.URL+"/auction/round", &round)
	assert.Equal(t, "1", round.ID)
	assert.Equal(t, "0", round.HighestBid)
	assert.Equal(t, uint64(1_700_000_000), round.StartTime)
	assert.Equal(t, uint64(1_700_003_600), round.EndTime)
	assert.False(t, round.Settled)
}

func TestGetPending(t *testing.T) {
	ts := initAuctionServer(t)

	var pending apiauction.Pending
	httpGet(t, ts.URL+"/auction/pending", &pending)
	assert.Equal(t, slot.SentinelURL, pending.URL)
	assert.Equal(t, "0", pending.ValidUntil)
}

func TestGetSettlers(t *testing.T) {
	ts := initAuctionServer(t)

	var settlers []slot.Address
	httpGet(t, ts.URL+"/auction/settlers", &settlers)
	require.Len(t, settlers, 1)
	assert.Equal(t, admin, settlers[0])
}

func TestGetStatus(t *testing.T) {
	ts := initAuctionServer(t)

	var status apiauction.Status
	httpGet(t, ts.URL+"/auction/status", &status)
	assert.Equal(t, "Token", status.Era)
	assert.False(t, status.Paused)
}
