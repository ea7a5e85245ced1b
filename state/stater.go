// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/tokenomy/kv"
)

const (
	storageBucket = kv.Bucket("s")

	defaultCacheSize = 16 * 1024
)

// Stater is the state creator.
type Stater struct {
	store kv.Store
	cache *lru.Cache // committed slot values
}

// NewStater create a new stater.
func NewStater(db kv.Store) *Stater {
	cache, _ := lru.New(defaultCacheSize)
	return &Stater{
		store: storageBucket.NewStore(db),
		cache: cache,
	}
}

// NewState create a new state object over the latest committed storage.
func (s *Stater) NewState() *State {
	return newState(s)
}
