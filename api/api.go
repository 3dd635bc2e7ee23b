// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apiauction "github.com/slotio/slot-auction/api/auction"
	"github.com/slotio/slot-auction/api/events"
	"github.com/slotio/slot-auction/api/transfers"
	"github.com/slotio/slot-auction/auction"
	"github.com/slotio/slot-auction/logdb"
	"github.com/slotio/slot-auction/state"
)

// New return api router
func New(engine *auction.Auction, stateFn func() *state.State, logDB *logdb.LogDB, allowedOrigins string) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	apiauction.New(engine, stateFn).
		Mount(router, "/auction")
	events.New(logDB).
		Mount(router, "/logs/event")
	transfers.New(logDB).
		Mount(router, "/logs/transfer")

	router.Path("/metrics").Handler(promhttp.Handler())

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}))(router).ServeHTTP
}
