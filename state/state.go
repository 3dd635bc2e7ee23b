// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/slotio/slot-auction/kv"
	"github.com/slotio/slot-auction/slot"
)

const accountCacheSize = 512

// State manages accounts, allowances and raw storage records on top of a kv
// store. All mutations are journaled; NewCheckpoint/RevertTo give handlers
// all-or-nothing semantics, Commit flushes to the kv store.
type State struct {
	kv       kv.GetPutter
	accounts map[slot.Address]*Account
	storage  map[slot.Bytes32][]byte
	allows   map[slot.Bytes32]*big.Int
	journal  []func()
	cache    *lru.ARCCache
	err      error
}

// New create state object over the given kv store.
func New(kv kv.GetPutter) (*State, error) {
	cache, err := lru.NewARC(accountCacheSize)
	if err != nil {
		return nil, err
	}
	return &State{
		kv:       kv,
		accounts: make(map[slot.Address]*Account),
		storage:  make(map[slot.Bytes32][]byte),
		allows:   make(map[slot.Bytes32]*big.Int),
		cache:    cache,
	}, nil
}

func accountKey(addr slot.Address) slot.Bytes32 {
	return slot.Blake2b([]byte("a"), addr.Bytes())
}

func storageKey(addr slot.Address, key slot.Bytes32) slot.Bytes32 {
	return slot.Blake2b([]byte("s"), addr.Bytes(), key.Bytes())
}

func allowanceKey(owner, spender slot.Address) slot.Bytes32 {
	return slot.Blake2b([]byte("w"), owner.Bytes(), spender.Bytes())
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns first occurred error.
func (s *State) Err() error {
	return s.err
}

func (s *State) getAccount(addr slot.Address) *Account {
	if acc, ok := s.accounts[addr]; ok {
		return acc
	}
	key := accountKey(addr)
	var raw []byte
	if cached, ok := s.cache.Get(key); ok {
		raw = cached.([]byte)
	} else {
		loaded, err := s.kv.Get(key.Bytes())
		if err != nil {
			if !isNotFound(s.kv, err) {
				s.setError(err)
			}
		} else {
			raw = loaded
			s.cache.Add(key, loaded)
		}
	}
	acc := emptyAccount()
	if len(raw) > 0 {
		if err := rlp.DecodeBytes(raw, acc); err != nil {
			s.setError(err)
			acc = emptyAccount()
		}
	}
	s.accounts[addr] = acc
	return acc
}

type notFounder interface {
	IsNotFound(err error) bool
}

func isNotFound(store kv.GetPutter, err error) bool {
	if nf, ok := store.(notFounder); ok {
		return nf.IsNotFound(err)
	}
	return false
}

func (s *State) updateAccount(addr slot.Address, acc *Account) {
	prev := s.getAccount(addr).copy()
	s.journal = append(s.journal, func() { s.accounts[addr] = prev })
	s.accounts[addr] = acc
}

// GetBalance returns native balance for the given address.
func (s *State) GetBalance(addr slot.Address) *big.Int {
	return new(big.Int).Set(s.getAccount(addr).Balance)
}

// SetBalance sets native balance for the given address.
func (s *State) SetBalance(addr slot.Address, balance *big.Int) {
	acc := s.getAccount(addr).copy()
	acc.Balance = new(big.Int).Set(balance)
	s.updateAccount(addr, acc)
}

// AddBalance adds native balance to the given address.
func (s *State) AddBalance(addr slot.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	s.SetBalance(addr, new(big.Int).Add(s.getAccount(addr).Balance, amount))
}

// SubBalance subtracts native balance, returns false if the balance is
// insufficient and leaves it unchanged.
func (s *State) SubBalance(addr slot.Address, amount *big.Int) bool {
	if amount.Sign() == 0 {
		return true
	}
	balance := s.getAccount(addr).Balance
	if balance.Cmp(amount) < 0 {
		return false
	}
	s.SetBalance(addr, new(big.Int).Sub(balance, amount))
	return true
}

// GetTokenBalance returns settlement token balance for the given address.
func (s *State) GetTokenBalance(addr slot.Address) *big.Int {
	return new(big.Int).Set(s.getAccount(addr).Token)
}

// SetTokenBalance sets settlement token balance for the given address.
func (s *State) SetTokenBalance(addr slot.Address, balance *big.Int) {
	acc := s.getAccount(addr).copy()
	acc.Token = new(big.Int).Set(balance)
	s.updateAccount(addr, acc)
}

// AddTokenBalance adds settlement token balance to the given address.
func (s *State) AddTokenBalance(addr slot.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	s.SetTokenBalance(addr, new(big.Int).Add(s.getAccount(addr).Token, amount))
}

// SubTokenBalance subtracts settlement token balance, returns false if the
// balance is insufficient and leaves it unchanged.
func (s *State) SubTokenBalance(addr slot.Address, amount *big.Int) bool {
	if amount.Sign() == 0 {
		return true
	}
	balance := s.getAccount(addr).Token
	if balance.Cmp(amount) < 0 {
		return false
	}
	s.SetTokenBalance(addr, new(big.Int).Sub(balance, amount))
	return true
}

// IsFrozen reports whether the token refuses transfers for the address.
func (s *State) IsFrozen(addr slot.Address) bool {
	return s.getAccount(addr).Frozen
}

// SetFrozen marks or unmarks an account as frozen.
func (s *State) SetFrozen(addr slot.Address, frozen bool) {
	acc := s.getAccount(addr).copy()
	acc.Frozen = frozen
	s.updateAccount(addr, acc)
}

func (s *State) getAllowance(key slot.Bytes32) *big.Int {
	if v, ok := s.allows[key]; ok {
		return v
	}
	v := new(big.Int)
	raw, err := s.kv.Get(slot.Blake2b([]byte("kw"), key.Bytes()).Bytes())
	if err != nil {
		if !isNotFound(s.kv, err) {
			s.setError(err)
		}
	} else if len(raw) > 0 {
		if err := rlp.DecodeBytes(raw, &v); err != nil {
			s.setError(err)
			v = new(big.Int)
		}
	}
	s.allows[key] = v
	return v
}

// GetAllowance returns the amount spender may pull from owner.
func (s *State) GetAllowance(owner, spender slot.Address) *big.Int {
	return new(big.Int).Set(s.getAllowance(allowanceKey(owner, spender)))
}

// SetAllowance sets the amount spender may pull from owner.
func (s *State) SetAllowance(owner, spender slot.Address, amount *big.Int) {
	key := allowanceKey(owner, spender)
	prev := new(big.Int).Set(s.getAllowance(key))
	s.journal = append(s.journal, func() { s.allows[key] = prev })
	s.allows[key] = new(big.Int).Set(amount)
}

func (s *State) getRawStorage(key slot.Bytes32) []byte {
	if raw, ok := s.storage[key]; ok {
		return raw
	}
	var raw []byte
	loaded, err := s.kv.Get(key.Bytes())
	if err != nil {
		if !isNotFound(s.kv, err) {
			s.setError(err)
		}
	} else {
		raw = loaded
	}
	s.storage[key] = raw
	return raw
}

// GetRawStorage returns the raw storage record of (addr, key).
func (s *State) GetRawStorage(addr slot.Address, key slot.Bytes32) []byte {
	return s.getRawStorage(storageKey(addr, key))
}

// SetRawStorage sets the raw storage record of (addr, key).
func (s *State) SetRawStorage(addr slot.Address, key slot.Bytes32, raw []byte) {
	sk := storageKey(addr, key)
	prev := s.getRawStorage(sk)
	s.journal = append(s.journal, func() { s.storage[sk] = prev })
	s.storage[sk] = raw
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr slot.Address, key slot.Bytes32, enc func() ([]byte, error)) {
	raw, err := enc()
	if err != nil {
		s.setError(err)
		return
	}
	s.SetRawStorage(addr, key, raw)
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr slot.Address, key slot.Bytes32, dec func([]byte) error) {
	if err := dec(s.GetRawStorage(addr, key)); err != nil {
		s.setError(err)
	}
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return len(s.journal)
}

// RevertTo reverts to the given revision. All mutations after the checkpoint
// are undone in reverse order.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > len(s.journal) {
		return
	}
	for i := len(s.journal) - 1; i >= revision; i-- {
		s.journal[i]()
	}
	s.journal = s.journal[:revision]
}

// Commit flushes all loaded records to the kv store and resets the journal.
func (s *State) Commit() error {
	if s.err != nil {
		return s.err
	}
	for addr, acc := range s.accounts {
		raw, err := rlp.EncodeToBytes(acc)
		if err != nil {
			return err
		}
		key := accountKey(addr)
		if err := s.kv.Put(key.Bytes(), raw); err != nil {
			return err
		}
		s.cache.Add(key, raw)
	}
	for key, raw := range s.storage {
		if err := s.kv.Put(key.Bytes(), raw); err != nil {
			return err
		}
	}
	for key, v := range s.allows {
		raw, err := rlp.EncodeToBytes(v)
		if err != nil {
			return err
		}
		if err := s.kv.Put(slot.Blake2b([]byte("kw"), key.Bytes()).Bytes(), raw); err != nil {
			return err
		}
	}
	s.journal = s.journal[:0]
	return nil
}
