// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/tokenomy/builtin/vesting"
	"github.com/vechain/tokenomy/thor"
)

// DevAccount account for development.
type DevAccount struct {
	Address    thor.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for the devnet.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{thor.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

const day = 24 * 60 * 60

// DevCurve releases 10% after 30 days, 50% after 60 days and all after 90 days.
var DevCurve = vesting.Curve{
	{Threshold: 0, Percent: 0},
	{Threshold: 30 * day, Percent: 10},
	{Threshold: 60 * day, Percent: 50},
	{Threshold: 90 * day, Percent: 100},
}

// DevnetGenesis returns the devnet genesis document, with windows opening at launchTime.
// The first dev account is the administrator.
func DevnetGenesis(launchTime uint64) *CustomGenesis {
	accs := DevAccounts()

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(thor.TokenDecimals)), nil)
	units := func(n int64) *math.HexOrDecimal256 {
		return (*math.HexOrDecimal256)(new(big.Int).Mul(big.NewInt(n), unit))
	}

	gen := &CustomGenesis{
		Name:          "devnet",
		Administrator: accs[0].Address,
		Token:         Asset{Name: "Token", Symbol: "TKN"},
		Reward:        Asset{Name: "Reward", Symbol: "RWD"},
		Vesting: &VestingParams{
			StartTime: launchTime,
			EndTime:   launchTime + 30*day,
			Asset:     "Token",
			Curve:     DevCurve,
			Fund:      units(10_000_000),
		},
		Staking: &StakingParams{
			StartTime:   launchTime,
			RewardRate:  10,
			StakeAsset:  "Token",
			RewardAsset: "Reward",
			Fund:        units(10_000_000),
		},
	}
	for _, a := range accs {
		gen.Accounts = append(gen.Accounts, Account{
			Address: a.Address,
			Token:   units(1_000_000),
			Reward:  units(1_000),
		})
	}

	return gen
}

// NewDevnet create genesis for development.
func NewDevnet(launchTime uint64) *Genesis {
	g, err := NewCustomNet(DevnetGenesis(launchTime))
	if err != nil {
		panic(err)
	}
	return g
}
