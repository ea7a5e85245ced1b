// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/builtin/vesting"
	"github.com/vechain/tokenomy/thor"
)

type Schedule struct {
	Address   thor.Address  `json:"address"`
	StartTime uint64        `json:"startTime"`
	EndTime   uint64        `json:"endTime"`
	Asset     thor.Address  `json:"asset"`
	Curve     vesting.Curve `json:"curve"`
	Now       uint64        `json:"now"`
}

type Account struct {
	Rights       *math.HexOrDecimal256 `json:"rights"`
	PaidOut      *math.HexOrDecimal256 `json:"paidOut"`
	Granted      *math.HexOrDecimal256 `json:"granted"`
	Unlocked     *math.HexOrDecimal256 `json:"unlocked"`
	Withdrawable *math.HexOrDecimal256 `json:"withdrawable"`
}

type GrantRequest struct {
	restutil.Invocation
	Account *thor.Address         `json:"account"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}
