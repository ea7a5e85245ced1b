// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import "time"

// Constants of the token system.
const (
	// PercentBase is the denominator of unlock percentages and reward rates.
	PercentBase uint64 = 100

	// MaxCurveStages bounds the length of a vesting unlock curve.
	MaxCurveStages = 64

	// DefaultLockPeriod is used when a genesis leaves the staking lock period out.
	DefaultLockPeriod = 30 * 24 * time.Hour

	// TokenDecimals is the default number of decimals of a ledger.
	TokenDecimals uint8 = 18
)
