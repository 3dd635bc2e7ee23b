// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"
	"encoding/gob"
	"math/big"

	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

// AuctionSettings is the engine's singleton configuration record. It is only
// mutated while the engine is paused. PendingValidUntil/PendingURL carry the
// metadata of the last settled round until the next round is created.
type AuctionSettings struct {
	Treasury        slot.Address
	Duration        uint64
	TimeBuffer      uint64
	MinBidIncrement uint8
	ReservePrice    *big.Int
	Launched        bool

	PendingValidUntil *big.Int
	PendingURL        string

	SettlementToken slot.Address
}

func newAuctionSettings() *AuctionSettings {
	return &AuctionSettings{
		ReservePrice:      new(big.Int),
		PendingValidUntil: new(big.Int),
		PendingURL:        slot.SentinelURL,
	}
}

// GetSettings loads the settings record, returning defaults when none were
// stored yet.
func (a *Auction) GetSettings(st *state.State) (result *AuctionSettings) {
	st.DecodeStorage(slot.AuctionModuleAddr, slot.AuctionSettingsKey, func(raw []byte) error {
		decoder := gob.NewDecoder(bytes.NewBuffer(raw))
		var settings AuctionSettings
		err := decoder.Decode(&settings)
		if err != nil {
			if err.Error() == "EOF" && len(raw) == 0 {
				// empty raw, do nothing
			} else {
				a.logger.Warn("error during decoding auction settings, use defaults", "err", err)
			}
			result = newAuctionSettings()
			return nil
		}
		result = &settings
		return nil
	})
	return
}

// SetSettings stores the settings record.
func (a *Auction) SetSettings(st *state.State, settings *AuctionSettings) {
	st.EncodeStorage(slot.AuctionModuleAddr, slot.AuctionSettingsKey, func() ([]byte, error) {
		buf := bytes.NewBuffer([]byte{})
		encoder := gob.NewEncoder(buf)
		err := encoder.Encode(settings)
		return buf.Bytes(), err
	})
}
