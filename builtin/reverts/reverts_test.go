// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(InsufficientFunds, "balance %d, requested %d", 1, 2)
	assert.Equal(t, "InsufficientFunds: balance 1, requested 2", revert.Error())
	assert.Equal(t, "balance 1, requested 2", revert.Message())
	assert.Equal(t, Insufficient, revert.Category())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
	assert.True(t, IsRevertErr(errors.WithMessage(revert, "ledger")))
}

func TestRevertIs(t *testing.T) {
	err := errors.WithMessage(New(LockPeriodNotElapsed, "wait"), "claim")
	assert.ErrorIs(t, err, ErrLockPeriodNotElapsed)
	assert.NotErrorIs(t, err, ErrRewardsNotClaimed)
	assert.Equal(t, LockPeriodNotElapsed, KindOf(err))
	assert.Equal(t, Kind(0), KindOf(errors.New("io")))
	assert.Equal(t, "NotAdministrator", ErrNotAdministrator.Error())
}

func TestCategories(t *testing.T) {
	tests := []struct {
		kind Kind
		want Category
	}{
		{ZeroAddress, Validation},
		{InvalidAmount, Validation},
		{InsufficientFunds, Insufficient},
		{InsufficientAllowance, Insufficient},
		{NothingAvailable, Insufficient},
		{DistributionClosed, Temporal},
		{DistributionNotOver, Temporal},
		{StakingNotStarted, Temporal},
		{LockPeriodNotElapsed, Temporal},
		{RewardsAlreadyClaimed, Ordering},
		{RewardsNotClaimed, Ordering},
		{NotAdministrator, Authorization},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Category())
		})
	}
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
