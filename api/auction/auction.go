// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/slotio/slot-auction/api/utils"
	"github.com/slotio/slot-auction/auction"
	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

// Auction serves read-only views of the engine's records.
type Auction struct {
	engine  *auction.Auction
	stateFn func() *state.State
}

func New(engine *auction.Auction, stateFn func() *state.State) *Auction {
	return &Auction{
		engine:  engine,
		stateFn: stateFn,
	}
}

func (at *Auction) handleGetStatus(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, &Status{
		Era:    slot.GetEraName(at.engine.Era()),
		Paused: at.engine.IsPaused(),
	})
}

func (at *Auction) handleGetSettings(w http.ResponseWriter, req *http.Request) error {
	settings := at.engine.GetSettings(at.stateFn())
	return utils.WriteJSON(w, convertSettings(settings))
}

func (at *Auction) handleGetRound(w http.ResponseWriter, req *http.Request) error {
	round := at.engine.GetRound(at.stateFn())
	return utils.WriteJSON(w, convertRound(round))
}

func (at *Auction) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	settings := at.engine.GetSettings(at.stateFn())
	return utils.WriteJSON(w, convertPending(settings))
}

func (at *Auction) handleGetSettlers(w http.ResponseWriter, req *http.Request) error {
	list := at.engine.GetSettlerList(at.stateFn())
	return utils.WriteJSON(w, list.Settlers)
}

func (at *Auction) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/status").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetStatus))
	sub.Path("/settings").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetSettings))
	sub.Path("/round").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetRound))
	sub.Path("/pending").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetPending))
	sub.Path("/settlers").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetSettlers))
}
