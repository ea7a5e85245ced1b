// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/thor"
)

type Pool struct {
	Address            thor.Address          `json:"address"`
	StartTime          uint64                `json:"startTime"`
	LockPeriod         uint64                `json:"lockPeriod"`
	RewardRate         uint64                `json:"rewardRate"`
	StakeAsset         thor.Address          `json:"stakeAsset"`
	RewardAsset        thor.Address          `json:"rewardAsset"`
	RestartLockOnTopUp bool                  `json:"restartLockOnTopUp"`
	RejectZeroReward   bool                  `json:"rejectZeroReward"`
	TotalStaked        *math.HexOrDecimal256 `json:"totalStaked"`
	Now                uint64                `json:"now"`
}

type Position struct {
	Amount        *math.HexOrDecimal256 `json:"amount"`
	DepositTime   uint64                `json:"depositTime"`
	Claimed       bool                  `json:"claimed"`
	Unlocked      bool                  `json:"unlocked"`
	PendingReward *math.HexOrDecimal256 `json:"pendingReward"`
}

type DepositRequest struct {
	restutil.Invocation
	Amount *math.HexOrDecimal256 `json:"amount"`
}
