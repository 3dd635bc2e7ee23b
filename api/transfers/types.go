// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/slotio/slot-auction/logdb"
	"github.com/slotio/slot-auction/slot"
)

// FilteredTransfer is the json form of a stored transfer.
type FilteredTransfer struct {
	Sender    slot.Address `json:"sender"`
	Recipient slot.Address `json:"recipient"`
	Amount    string       `json:"amount"`
	Token     uint32       `json:"token"`
	Ts        uint64       `json:"ts"`
	Index     uint32       `json:"index"`
}

func convertTransfer(transfer *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount.String(),
		Token:     transfer.Token,
		Ts:        transfer.Ts,
		Index:     transfer.Index,
	}
}

type TransferCriteria struct {
	Sender    *slot.Address `json:"sender"`
	Recipient *slot.Address `json:"recipient"`
}

type TransferFilter struct {
	CriteriaSet []*TransferCriteria `json:"criteriaSet"`
	Range       *logdb.Range        `json:"range"`
	Options     *logdb.Options      `json:"options"`
	Order       logdb.Order         `json:"order"`
}

func convertTransferFilter(filter *TransferFilter) *logdb.TransferFilter {
	f := &logdb.TransferFilter{
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	if len(filter.CriteriaSet) > 0 {
		criterias := make([]*logdb.TransferCriteria, len(filter.CriteriaSet))
		for i, criteria := range filter.CriteriaSet {
			criterias[i] = &logdb.TransferCriteria{
				Sender:    criteria.Sender,
				Recipient: criteria.Recipient,
			}
		}
		f.CriteriaSet = criterias
	}
	return f
}
