// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math"

	"github.com/pkg/errors"
)

const (
	indexBits = 20
	// MaxEventsPerReceipt is the number of events of one invocation the index can address.
	MaxEventsPerReceipt = 1 << indexBits
	maxSeq              = math.MaxInt64 >> indexBits
)

// sequence orders events globally: invocation sequence in the high bits, event index in the low bits.
type sequence int64

func newSequence(seq uint64, index uint32) (sequence, error) {
	if index >= MaxEventsPerReceipt {
		return 0, errors.Errorf("event index %d out of range", index)
	}
	if seq > maxSeq {
		return 0, errors.Errorf("invocation seq %d out of range", seq)
	}
	return (sequence(seq) << indexBits) | sequence(index), nil
}

func (s sequence) Seq() uint64 {
	return uint64(s >> indexBits)
}

func (s sequence) Index() uint32 {
	return uint32(s & (1<<indexBits - 1))
}
