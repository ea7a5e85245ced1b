// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tokenomy/stackedmap"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

func (k storageKey) encode() []byte {
	return append(append(make([]byte, 0, thor.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State holds the contract storage of one invocation.
// Writes are journaled and only reach the store through Stage.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[storageKey, rlp.RawValue]

	events []*tx.Event
	marks  []int // events length at each checkpoint
}

func newState(stater *Stater) *State {
	s := &State{stater: stater}
	s.sm = stackedmap.New(s.load)
	return s
}

// load implements stackedmap.MapGetter, reading committed values.
func (s *State) load(key storageKey) (rlp.RawValue, bool, error) {
	if v, ok := s.stater.cache.Get(key); ok {
		return v.(rlp.RawValue), true, nil
	}
	raw, err := s.stater.store.Get(key.encode())
	if err != nil {
		if s.stater.store.IsNotFound(err) {
			s.stater.cache.Add(key, rlp.RawValue(nil))
			return rlp.RawValue(nil), true, nil
		}
		return nil, false, err
	}
	s.stater.cache.Add(key, rlp.RawValue(raw))
	return raw, true, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr thor.Address, key thor.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw. Empty raw deletes the slot.
func (s *State) SetRawStorage(addr thor.Address, key thor.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// AddEvent appends an observable record. It is dropped if the enclosing checkpoint reverts.
func (s *State) AddEvent(ev *tx.Event) {
	s.events = append(s.events, ev)
}

// Events returns records emitted so far.
func (s *State) Events() tx.Events {
	return append(tx.Events(nil), s.events...)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	rev := s.sm.Push()
	s.marks = append(s.marks[:rev-1], len(s.events))
	return rev
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 || revision > len(s.marks) {
		panic(fmt.Errorf("invalid revision %d", revision))
	}
	s.sm.PopTo(revision)
	s.events = s.events[:s.marks[revision-1]]
	s.marks = s.marks[:revision-1]
}

// Stage collects all journaled changes, latest value wins.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes[k] = v
		return true
	})
	return &Stage{stater: s.stater, changes: changes}
}

// Stage abstracts changes on the state to be committed.
type Stage struct {
	stater  *Stater
	changes map[storageKey]rlp.RawValue
}

// Len returns count of changed slots.
func (st *Stage) Len() int {
	return len(st.changes)
}

// Commit writes all changes into the underlying store atomically.
func (st *Stage) Commit() error {
	if len(st.changes) == 0 {
		return nil
	}
	bulk := st.stater.store.Bulk()
	for k, v := range st.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.encode())
		} else {
			err = bulk.Put(k.encode(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	for k, v := range st.changes {
		st.stater.cache.Add(k, v)
	}
	return nil
}
