// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"
	"encoding/gob"

	"github.com/slotio/slot-auction/slot"
	"github.com/slotio/slot-auction/state"
)

// SettlerList is the flat allow-list of addresses authorized to settle
// rounds and override winners in the token era. Kept sorted for a cheap
// membership test; there is no expiry and no hierarchy.
type SettlerList struct {
	Settlers []slot.Address
}

func newSettlerList() *SettlerList {
	return &SettlerList{Settlers: make([]slot.Address, 0)}
}

func (l *SettlerList) indexOf(addr slot.Address) (int, int) {
	// return values:
	//     first parameter: if found, the index of the item
	//     second parameter: if not found, the correct insert index of the item
	if len(l.Settlers) <= 0 {
		return -1, 0
	}
	lo := 0
	hi := len(l.Settlers)
	for lo < hi {
		m := (lo + hi) / 2
		cmp := bytes.Compare(addr.Bytes(), l.Settlers[m].Bytes())
		if cmp < 0 {
			hi = m
		} else if cmp > 0 {
			lo = m + 1
		} else {
			return m, -1
		}
	}
	return -1, hi
}

// Has reports membership.
func (l *SettlerList) Has(addr slot.Address) bool {
	index, _ := l.indexOf(addr)
	return index >= 0
}

// Add inserts an address, keeping the list sorted. Adding twice is a no-op.
func (l *SettlerList) Add(addr slot.Address) {
	index, insertIndex := l.indexOf(addr)
	if index >= 0 {
		return
	}
	newList := make([]slot.Address, insertIndex)
	copy(newList, l.Settlers[:insertIndex])
	newList = append(newList, addr)
	newList = append(newList, l.Settlers[insertIndex:]...)
	l.Settlers = newList
}

// Remove deletes an address if present.
func (l *SettlerList) Remove(addr slot.Address) {
	index, _ := l.indexOf(addr)
	if index >= 0 {
		l.Settlers = append(l.Settlers[:index], l.Settlers[index+1:]...)
	}
}

// Count returns the list size.
func (l *SettlerList) Count() int {
	return len(l.Settlers)
}

// GetSettlerList loads the whitelist, empty when never stored.
func (a *Auction) GetSettlerList(st *state.State) (result *SettlerList) {
	st.DecodeStorage(slot.AuctionModuleAddr, slot.SettlerListKey, func(raw []byte) error {
		decoder := gob.NewDecoder(bytes.NewBuffer(raw))
		var list SettlerList
		err := decoder.Decode(&list)
		if err != nil {
			if err.Error() == "EOF" && len(raw) == 0 {
				// empty raw, do nothing
			} else {
				a.logger.Warn("error during decoding settler list, use empty list", "err", err)
			}
			result = newSettlerList()
			return nil
		}
		result = &list
		return nil
	})
	return
}

// SetSettlerList stores the whitelist.
func (a *Auction) SetSettlerList(st *state.State, list *SettlerList) {
	st.EncodeStorage(slot.AuctionModuleAddr, slot.SettlerListKey, func() ([]byte, error) {
		buf := bytes.NewBuffer([]byte{})
		encoder := gob.NewEncoder(buf)
		err := encoder.Encode(list)
		return buf.Bytes(), err
	})
}

// IsSettler reports whether addr may settle rounds in the current era.
func (a *Auction) IsSettler(st *state.State, addr slot.Address) bool {
	return a.GetSettlerList(st).Has(addr)
}
