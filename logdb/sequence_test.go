// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	type args struct {
		seq   uint64
		index uint32
	}
	tests := []struct {
		name string
		args args
	}{
		{"regular", args{1, 2}},
		{"max seq", args{math.MaxInt64 >> indexBits, 1}},
		{"max index", args{5, 1<<indexBits - 1}},
		{"both max", args{math.MaxInt64 >> indexBits, 1<<indexBits - 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newSequence(tt.args.seq, tt.args.index)
			require.NoError(t, err)
			assert.Equal(t, tt.args.seq, got.Seq())
			assert.Equal(t, tt.args.index, got.Index())
			assert.GreaterOrEqual(t, int64(got), int64(0))
		})
	}

	lo, err := newSequence(1, 1<<indexBits-1)
	require.NoError(t, err)
	hi, err := newSequence(2, 0)
	require.NoError(t, err)
	assert.Less(t, int64(lo), int64(hi))

	_, err = newSequence(1, 1<<indexBits)
	assert.Error(t, err)
	_, err = newSequence(math.MaxInt64>>indexBits+1, 0)
	assert.Error(t, err)
}
