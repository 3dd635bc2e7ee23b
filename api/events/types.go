// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/slotio/slot-auction/logdb"
	"github.com/slotio/slot-auction/slot"
)

type TopicSet struct {
	Topic0 *slot.Bytes32 `json:"topic0"`
	Topic1 *slot.Bytes32 `json:"topic1"`
	Topic2 *slot.Bytes32 `json:"topic2"`
	Topic3 *slot.Bytes32 `json:"topic3"`
	Topic4 *slot.Bytes32 `json:"topic4"`
}

// FilteredEvent is the json form of a stored event.
type FilteredEvent struct {
	Address slot.Address    `json:"address"`
	Topics  []*slot.Bytes32 `json:"topics"`
	Data    string          `json:"data"`
	Ts      uint64          `json:"ts"`
	Index   uint32          `json:"index"`
}

// convertEvent converts a logdb.Event into json format.
func convertEvent(event *logdb.Event) *FilteredEvent {
	fe := FilteredEvent{
		Address: event.Addr,
		Data:    hexutil.Encode(event.Data),
		Ts:      event.Ts,
		Index:   event.Index,
	}
	fe.Topics = make([]*slot.Bytes32, 0)
	for i := 0; i < 5; i++ {
		if event.Topics[i] != nil {
			fe.Topics = append(fe.Topics, event.Topics[i])
		}
	}
	return &fe
}

type EventCriteria struct {
	Address *slot.Address `json:"address"`
	TopicSet
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *logdb.Range     `json:"range"`
	Options     *logdb.Options   `json:"options"`
	Order       logdb.Order      `json:"order"`
}

func convertEventFilter(filter *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	if len(filter.CriteriaSet) > 0 {
		criterias := make([]*logdb.EventCriteria, len(filter.CriteriaSet))
		for i, criteria := range filter.CriteriaSet {
			var topics [5]*slot.Bytes32
			topics[0] = criteria.Topic0
			topics[1] = criteria.Topic1
			topics[2] = criteria.Topic2
			topics[3] = criteria.Topic3
			topics[4] = criteria.Topic4
			criterias[i] = &logdb.EventCriteria{
				Address: criteria.Address,
				Topics:  topics,
			}
		}
		f.CriteriaSet = criterias
	}
	return f
}
