// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import "github.com/prometheus/client_golang/prometheus"

var (
	roundsCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auction_rounds_created_total",
		Help: "Counter of created auction rounds",
	})
	roundsSettledCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auction_rounds_settled_total",
		Help: "Counter of settled auction rounds",
	})
	bidsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auction_bids_total",
		Help: "Counter of admitted bids",
	})
	extensionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auction_extensions_total",
		Help: "Counter of round end extensions triggered by late bids",
	})
	refundFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auction_refund_failures_total",
		Help: "Counter of tolerated refund failures",
	})
	overridesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auction_winner_overrides_total",
		Help: "Counter of winner overrides",
	})
)

func init() {
	prometheus.MustRegister(roundsCreatedCounter)
	prometheus.MustRegister(roundsSettledCounter)
	prometheus.MustRegister(bidsCounter)
	prometheus.MustRegister(extensionsCounter)
	prometheus.MustRegister(refundFailuresCounter)
	prometheus.MustRegister(overridesCounter)
}
