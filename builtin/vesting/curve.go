// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/thor"
)

// Stage releases Percent of the granted amount once Threshold seconds have elapsed since the start.
type Stage struct {
	Threshold uint64 `json:"threshold" yaml:"threshold"`
	Percent   uint64 `json:"percent" yaml:"percent"`
}

// Curve is an ordered table of stages, a right-continuous step function of elapsed time.
type Curve []Stage

// Validate checks both columns are non-decreasing and percents are within [0,100].
func (c Curve) Validate() error {
	if len(c) > thor.MaxCurveStages {
		return errors.Errorf("too many stages: %d > %d", len(c), thor.MaxCurveStages)
	}
	for i, s := range c {
		if s.Percent > thor.PercentBase {
			return errors.Errorf("stage %d: percent %d exceeds %d", i, s.Percent, thor.PercentBase)
		}
		if i == 0 {
			continue
		}
		prev := c[i-1]
		if s.Threshold < prev.Threshold {
			return errors.Errorf("stage %d: threshold %d below previous %d", i, s.Threshold, prev.Threshold)
		}
		if s.Percent < prev.Percent {
			return errors.Errorf("stage %d: percent %d below previous %d", i, s.Percent, prev.Percent)
		}
	}
	return nil
}

// Percent returns the percent of the largest threshold not exceeding elapsed.
// The scan stops at the first unreached threshold.
func (c Curve) Percent(elapsed uint64) uint64 {
	var pct uint64
	for _, s := range c {
		if s.Threshold > elapsed {
			break
		}
		pct = s.Percent
	}
	return pct
}
