// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/slotio/slot-auction/auction"
	"github.com/slotio/slot-auction/slot"
)

type Settings struct {
	Treasury        slot.Address `json:"treasury"`
	Duration        uint64       `json:"duration"`
	TimeBuffer      uint64       `json:"timeBuffer"`
	MinBidIncrement uint8        `json:"minBidIncrement"`
	ReservePrice    string       `json:"reservePrice"`
	Launched        bool         `json:"launched"`
	SettlementToken slot.Address `json:"settlementToken"`
}

type Round struct {
	ID            string       `json:"id"`
	HighestBid    string       `json:"highestBid"`
	HighestBidder slot.Address `json:"highestBidder"`
	StartTime     uint64       `json:"startTime"`
	EndTime       uint64       `json:"endTime"`
	Settled       bool         `json:"settled"`
	ValidUntil    string       `json:"validUntil"`
	URL           string       `json:"url"`
}

// Pending is the slot content currently on display: the last settled winning
// entry, or the sentinel when the last round went unsold.
type Pending struct {
	URL        string `json:"url"`
	ValidUntil string `json:"validUntil"`
}

type Status struct {
	Era    string `json:"era"`
	Paused bool   `json:"paused"`
}

func convertSettings(s *auction.AuctionSettings) *Settings {
	return &Settings{
		Treasury:        s.Treasury,
		Duration:        s.Duration,
		TimeBuffer:      s.TimeBuffer,
		MinBidIncrement: s.MinBidIncrement,
		ReservePrice:    s.ReservePrice.String(),
		Launched:        s.Launched,
		SettlementToken: s.SettlementToken,
	}
}

func convertRound(r *auction.AuctionRound) *Round {
	return &Round{
		ID:            r.ID.String(),
		HighestBid:    r.HighestBid.String(),
		HighestBidder: r.HighestBidder,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Settled:       r.Settled,
		ValidUntil:    r.ValidUntil.String(),
		URL:           r.URL,
	}
}

func convertPending(s *auction.AuctionSettings) *Pending {
	return &Pending{
		URL:        s.PendingURL,
		ValidUntil: s.PendingValidUntil.String(),
	}
}
