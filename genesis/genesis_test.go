// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tokenomy/builtin"
	"github.com/vechain/tokenomy/builtin/vesting"
	"github.com/vechain/tokenomy/lvldb"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
	"github.com/vechain/tokenomy/xenv"
)

const customYAML = `
name: testnet
administrator: 0x00000000000000000000000000000061646d696e
token:
  name: Tokenomy
  symbol: TKY
  decimals: 6
accounts:
  - address: 0x000000000000000000000000000000616c696365
    token: 1000
    reward: 0x10
vesting:
  startTime: 1700000000
  endTime: 1702505600
  asset: Token
  fund: 5000
  curve:
    - {threshold: 0, percent: 0}
    - {threshold: 2592000, percent: 10}
    - {threshold: 7776000, percent: 100}
staking:
  startTime: 1700000000
  lockPeriod: 720h
  rewardRate: 10
  stakeAsset: token
  rewardAsset: Reward
  restartLockOnTopUp: false
  fund: 100
`

var (
	adminAddr = thor.BytesToAddress([]byte("admin"))
	alice     = thor.BytesToAddress([]byte("alice"))
)

func newRuntime(t *testing.T) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return runtime.New(state.NewStater(db), nil).SetClock(func() uint64 { return 1_700_000_000 })
}

func TestParseCustomGenesis(t *testing.T) {
	gen, err := ParseCustomGenesis([]byte(customYAML))
	require.NoError(t, err)

	assert.Equal(t, "testnet", gen.Name)
	assert.Equal(t, adminAddr, gen.Administrator)
	require.Len(t, gen.Accounts, 1)
	assert.Equal(t, alice, gen.Accounts[0].Address)
	assert.Equal(t, big.NewInt(1000), amountOf(gen.Accounts[0].Token))
	assert.Equal(t, big.NewInt(16), amountOf(gen.Accounts[0].Reward))
	assert.Len(t, gen.Vesting.Curve, 3)
	require.NotNil(t, gen.Staking.LockPeriod)
	assert.Equal(t, 30*24*time.Hour, *gen.Staking.LockPeriod)

	_, err = ParseCustomGenesis([]byte("unknown: 1"))
	assert.Error(t, err)
}

func TestApplyCustomGenesis(t *testing.T) {
	gen, err := ParseCustomGenesis([]byte(customYAML))
	require.NoError(t, err)
	g, err := NewCustomNet(gen)
	require.NoError(t, err)
	assert.Equal(t, "testnet", g.Name())
	assert.Equal(t, adminAddr, g.Administrator())

	rt := newRuntime(t)
	receipt, err := g.Apply(context.Background(), rt)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, OpGenesis, receipt.Op)
	assert.Len(t, receipt.Events.Filter(tx.EventOwnershipTransferred), 1)
	assert.Len(t, receipt.Events.Filter(tx.EventTransfer), 4)

	require.NoError(t, rt.Call(context.Background(), func(env *xenv.Environment) error {
		isAdmin, err := env.Admin().IsAdministrator(adminAddr)
		require.NoError(t, err)
		assert.True(t, isAdmin)

		md, err := env.Token().Metadata()
		require.NoError(t, err)
		assert.Equal(t, "TKY", md.Symbol)
		assert.Equal(t, uint8(6), md.Decimals)

		md, err = env.Reward().Metadata()
		require.NoError(t, err)
		assert.Equal(t, "RWD", md.Symbol)
		assert.Equal(t, thor.TokenDecimals, md.Decimals)

		balance, err := env.Token().BalanceOf(builtin.Vesting.Address)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(5000), balance)

		balance, err = env.Reward().BalanceOf(builtin.Staking.Address)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(100), balance)

		supply, err := env.Token().TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(6000), supply)

		cfg, err := env.Staking().Config()
		require.NoError(t, err)
		assert.Equal(t, uint64(30*day), cfg.LockPeriod)
		assert.Equal(t, builtin.Token.Address, cfg.StakeAsset)
		assert.False(t, cfg.RestartLockOnTopUp)

		vcfg, err := env.Vesting().Config()
		require.NoError(t, err)
		assert.Equal(t, uint64(1702505600), vcfg.EndTime)
		return nil
	}))

	// applying again is a no-op
	receipt, err = g.Apply(context.Background(), rt)
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestNewCustomNetErrors(t *testing.T) {
	tests := []struct {
		name string
		gen  *CustomGenesis
	}{
		{"no administrator", &CustomGenesis{}},
		{"null account", &CustomGenesis{
			Administrator: adminAddr,
			Accounts:      []Account{{}},
		}},
		{"unknown vesting asset", &CustomGenesis{
			Administrator: adminAddr,
			Vesting:       &VestingParams{Asset: "Gold"},
		}},
		{"bad curve", &CustomGenesis{
			Administrator: adminAddr,
			Vesting: &VestingParams{
				Asset: "Token",
				Curve: vesting.Curve{{Threshold: 10, Percent: 50}, {Threshold: 5, Percent: 60}},
			},
		}},
		{"unknown stake asset", &CustomGenesis{
			Administrator: adminAddr,
			Staking:       &StakingParams{StakeAsset: "Gold", RewardAsset: "Reward"},
		}},
		{"reward rate too large", &CustomGenesis{
			Administrator: adminAddr,
			Staking:       &StakingParams{StakeAsset: "Token", RewardAsset: "Reward", RewardRate: 10001},
		}},
		{"sub-second lock period", &CustomGenesis{
			Administrator: adminAddr,
			Staking:       &StakingParams{StakeAsset: "Token", RewardAsset: "Reward", LockPeriod: durationOf(500 * time.Millisecond)},
		}},
		{"negative lock period", &CustomGenesis{
			Administrator: adminAddr,
			Staking:       &StakingParams{StakeAsset: "Token", RewardAsset: "Reward", LockPeriod: durationOf(-time.Hour)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustomNet(tt.gen)
			assert.Error(t, err)
		})
	}
}

func TestDevnet(t *testing.T) {
	accs := DevAccounts()
	require.Len(t, accs, 5)
	assert.Equal(t, accs, DevAccounts())

	g := NewDevnet(1_700_000_000)
	assert.Equal(t, "devnet", g.Name())
	assert.Equal(t, accs[0].Address, g.Administrator())

	rt := newRuntime(t)
	_, err := g.Apply(context.Background(), rt)
	require.NoError(t, err)

	require.NoError(t, rt.Call(context.Background(), func(env *xenv.Environment) error {
		for _, a := range accs {
			balance, err := env.Token().BalanceOf(a.Address)
			require.NoError(t, err)
			assert.Equal(t, 1, balance.Sign())
		}
		cfg, err := env.Staking().Config()
		require.NoError(t, err)
		assert.Equal(t, uint64(thor.DefaultLockPeriod.Seconds()), cfg.LockPeriod)
		assert.True(t, cfg.RestartLockOnTopUp)
		return nil
	}))
}

func TestDevnetGenesisYAML(t *testing.T) {
	gen := DevnetGenesis(1_700_000_000)

	data, err := yaml.Marshal(gen)
	require.NoError(t, err)

	parsed, err := ParseCustomGenesis(data)
	require.NoError(t, err)
	assert.Equal(t, gen.Administrator, parsed.Administrator)
	assert.Equal(t, gen.Vesting.Curve, parsed.Vesting.Curve)
	assert.Equal(t, amountOf(gen.Staking.Fund), amountOf(parsed.Staking.Fund))
	require.Len(t, parsed.Accounts, len(gen.Accounts))

	_, err = NewCustomNet(parsed)
	assert.NoError(t, err)
}

func durationOf(d time.Duration) *time.Duration {
	return &d
}

func TestStakingLockPeriod(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want uint64
	}{
		{"omitted", "", uint64(thor.DefaultLockPeriod / time.Second)},
		{"zero", "  lockPeriod: 0s\n", 0},
		{"explicit", "  lockPeriod: 90s\n", 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "administrator: " + adminAddr.String() + "\n" +
				"staking:\n" +
				"  stakeAsset: Token\n" +
				"  rewardAsset: Reward\n" + tt.yaml
			custom, err := ParseCustomGenesis([]byte(doc))
			require.NoError(t, err)
			gen, err := NewCustomNet(custom)
			require.NoError(t, err)

			rt := newRuntime(t)
			_, err = gen.Apply(context.Background(), rt)
			require.NoError(t, err)
			require.NoError(t, rt.Call(context.Background(), func(env *xenv.Environment) error {
				cfg, err := env.Staking().Config()
				require.NoError(t, err)
				assert.Equal(t, tt.want, cfg.LockPeriod)
				return nil
			}))
		})
	}
}
