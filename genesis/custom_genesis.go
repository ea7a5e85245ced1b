// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tokenomy/builtin/vesting"
	"github.com/vechain/tokenomy/thor"
)

// CustomGenesis is user customized genesis.
type CustomGenesis struct {
	Name          string         `yaml:"name"`
	Administrator thor.Address   `yaml:"administrator"`
	Token         Asset          `yaml:"token"`
	Reward        Asset          `yaml:"reward"`
	Accounts      []Account      `yaml:"accounts"`
	Vesting       *VestingParams `yaml:"vesting,omitempty"`
	Staking       *StakingParams `yaml:"staking,omitempty"`
}

// Asset is the metadata of a builtin ledger.
type Asset struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals *uint8 `yaml:"decimals,omitempty"`
}

// Account is an initial allocation.
type Account struct {
	Address thor.Address          `yaml:"address"`
	Token   *math.HexOrDecimal256 `yaml:"token,omitempty"`
	Reward  *math.HexOrDecimal256 `yaml:"reward,omitempty"`
}

// VestingParams configures the vesting schedule. Asset is a ledger name or address.
type VestingParams struct {
	StartTime uint64                `yaml:"startTime"`
	EndTime   uint64                `yaml:"endTime"`
	Asset     string                `yaml:"asset"`
	Curve     vesting.Curve         `yaml:"curve"`
	Fund      *math.HexOrDecimal256 `yaml:"fund,omitempty"`
}

// StakingParams configures the staking pool. Assets are ledger names or addresses.
type StakingParams struct {
	StartTime          uint64                `yaml:"startTime"`
	LockPeriod         *time.Duration        `yaml:"lockPeriod,omitempty"` // 30 days when omitted
	RewardRate         uint64                `yaml:"rewardRate"`
	StakeAsset         string                `yaml:"stakeAsset"`
	RewardAsset        string                `yaml:"rewardAsset"`
	RestartLockOnTopUp *bool                 `yaml:"restartLockOnTopUp,omitempty"`
	RejectZeroReward   bool                  `yaml:"rejectZeroReward"`
	Fund               *math.HexOrDecimal256 `yaml:"fund,omitempty"`
}

// ParseCustomGenesis decodes a yaml document. Unknown fields are rejected.
func ParseCustomGenesis(data []byte) (*CustomGenesis, error) {
	var gen CustomGenesis
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// LoadCustomGenesis reads and decodes a genesis file.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return ParseCustomGenesis(data)
}

func amountOf(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return nil
	}
	return (*big.Int)(v)
}
