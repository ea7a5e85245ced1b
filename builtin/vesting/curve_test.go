// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/tokenomy/thor"
)

func TestCurvePercent(t *testing.T) {
	curve := Curve{{10, 5}, {20, 20}, {20, 30}, {40, 100}}

	tests := []struct {
		elapsed uint64
		want    uint64
	}{
		{0, 0},
		{9, 0},
		{10, 5},
		{19, 5},
		{20, 30},
		{39, 30},
		{40, 100},
		{1 << 40, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, curve.Percent(tt.elapsed), "elapsed %d", tt.elapsed)
	}
	assert.Equal(t, uint64(0), Curve(nil).Percent(100))
}

func TestCurveValidate(t *testing.T) {
	tests := []struct {
		name    string
		curve   Curve
		wantErr bool
	}{
		{"empty", nil, false},
		{"ok", Curve{{0, 0}, {10, 50}, {20, 100}}, false},
		{"flat", Curve{{10, 50}, {10, 50}}, false},
		{"percent over base", Curve{{10, 101}}, true},
		{"threshold decreasing", Curve{{20, 10}, {10, 20}}, true},
		{"percent decreasing", Curve{{10, 20}, {20, 10}}, true},
		{"too long", make(Curve, thor.MaxCurveStages+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.curve.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
