// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenomy/api/administrator"
	"github.com/vechain/tokenomy/api/events"
	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/api/staking"
	"github.com/vechain/tokenomy/api/tokens"
	"github.com/vechain/tokenomy/api/vesting"
	"github.com/vechain/tokenomy/builtin"
	"github.com/vechain/tokenomy/genesis"
	"github.com/vechain/tokenomy/test/testnode"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

const day = 24 * time.Hour

var (
	devs  = genesis.DevAccounts()
	admin = devs[0].Address
	alice = devs[1].Address
	bob   = devs[2].Address
	carol = devs[3].Address
)

type client struct {
	t    *testing.T
	base string
}

func newClient(t *testing.T) (*client, *testnode.Node) {
	node, err := testnode.NewDefaultNode()
	require.NoError(t, err)
	require.NoError(t, node.Start())
	t.Cleanup(node.Close)
	return &client{t, node.APIServer().URL}, node
}

func (c *client) do(method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res.StatusCode, data
}

func (c *client) get(path string, out any) {
	code, data := c.do(http.MethodGet, path, nil)
	require.Equal(c.t, http.StatusOK, code, string(data))
	require.NoError(c.t, json.Unmarshal(data, out))
}

// post expects success and returns the result.
func (c *client) post(path string, body any) *restutil.Result {
	code, data := c.do(http.MethodPost, path, body)
	require.Equal(c.t, http.StatusOK, code, string(data))
	var res restutil.Result
	require.NoError(c.t, json.Unmarshal(data, &res))
	return &res
}

// revert expects a revert response and returns it.
func (c *client) revert(path string, body any, status int) *restutil.Revert {
	code, data := c.do(http.MethodPost, path, body)
	require.Equal(c.t, status, code, string(data))
	var rev restutil.Revert
	require.NoError(c.t, json.Unmarshal(data, &rev))
	return &rev
}

func (c *client) balance(token string, addr thor.Address) *big.Int {
	var b tokens.Balance
	c.get("/tokens/"+token+"/balances/"+addr.String(), &b)
	return restutil.Amount(b.Balance)
}

func TestTokens(t *testing.T) {
	c, _ := newClient(t)

	var list []*tokens.Token
	c.get("/tokens", &list)
	require.Len(t, list, 2)
	assert.Equal(t, "TKN", list[0].Symbol)
	assert.Equal(t, builtin.Token.Address, list[0].Address)
	assert.Equal(t, "RWD", list[1].Symbol)

	var tok tokens.Token
	c.get("/tokens/"+builtin.Reward.Address.String(), &tok)
	assert.Equal(t, "Reward", tok.Name)
	assert.Equal(t, thor.TokenDecimals, tok.Decimals)

	before := c.balance("Token", bob)

	res := c.post("/tokens/Token/transfer", map[string]any{"caller": alice, "to": bob, "amount": "100"})
	require.Len(t, res.Receipt.Events, 1)
	assert.Equal(t, tx.EventTransfer, res.Receipt.Events[0].Name)
	assert.Equal(t, []thor.Address{alice, bob}, res.Receipt.Events[0].Accounts)
	assert.Equal(t, new(big.Int).Add(before, big.NewInt(100)), c.balance("token", bob))

	c.post("/tokens/Token/approve", map[string]any{"caller": alice, "spender": carol, "amount": "0x50"})
	var allowance tokens.Allowance
	c.get("/tokens/Token/allowances/"+alice.String()+"/"+carol.String(), &allowance)
	assert.Equal(t, big.NewInt(80), restutil.Amount(allowance.Allowance))

	c.post("/tokens/Token/transferFrom", map[string]any{"caller": carol, "owner": alice, "to": carol, "amount": "30"})
	c.get("/tokens/Token/allowances/"+alice.String()+"/"+carol.String(), &allowance)
	assert.Equal(t, big.NewInt(50), restutil.Amount(allowance.Allowance))

	rev := c.revert("/tokens/Token/transferFrom", map[string]any{"caller": carol, "owner": alice, "to": carol, "amount": "51"}, http.StatusUnprocessableEntity)
	assert.Equal(t, "InsufficientAllowance", rev.Error)

	rev = c.revert("/tokens/Token/mint", map[string]any{"caller": alice, "account": alice, "amount": "1"}, http.StatusForbidden)
	assert.Equal(t, "NotAdministrator", rev.Error)
	assert.Equal(t, "authorization", rev.Category)

	rev = c.revert("/tokens/Token/transfer", map[string]any{"caller": alice, "to": thor.NullAddress, "amount": "1"}, http.StatusBadRequest)
	assert.Equal(t, "ZeroAddress", rev.Error)

	var reward tokens.Token
	c.get("/tokens/Reward", &reward)
	// decoding into reward again overwrites its amounts in place
	supplyBefore := new(big.Int).Set(restutil.Amount(reward.TotalSupply))
	c.post("/tokens/Reward/mint", map[string]any{"caller": admin, "account": bob, "amount": "5"})
	c.get("/tokens/Reward", &reward)
	assert.Equal(t, new(big.Int).Add(supplyBefore, big.NewInt(5)), restutil.Amount(reward.TotalSupply))
}

func TestBadRequests(t *testing.T) {
	c, _ := newClient(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown token", http.MethodGet, "/tokens/Gold", nil, http.StatusNotFound},
		{"unknown operation", http.MethodPost, "/tokens/Token/steal", map[string]any{"caller": alice, "amount": "1"}, http.StatusNotFound},
		{"bad address", http.MethodGet, "/tokens/Token/balances/0x12", nil, http.StatusBadRequest},
		{"missing caller", http.MethodPost, "/tokens/Token/transfer", map[string]any{"to": bob, "amount": "1"}, http.StatusBadRequest},
		{"missing amount", http.MethodPost, "/tokens/Token/transfer", map[string]any{"caller": alice, "to": bob}, http.StatusBadRequest},
		{"missing recipient", http.MethodPost, "/tokens/Token/transfer", map[string]any{"caller": alice, "amount": "1"}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/staking/claim", map[string]any{"caller": alice, "extra": 1}, http.StatusBadRequest},
		{"bad amount", http.MethodPost, "/staking/deposit", map[string]any{"caller": alice, "amount": "lots"}, http.StatusBadRequest},
		{"null criteria", http.MethodPost, "/logs/event", map[string]any{"criteriaSet": []any{nil}}, http.StatusBadRequest},
		{"limit too large", http.MethodPost, "/logs/event", map[string]any{"options": map[string]any{"limit": 1000}}, http.StatusForbidden},
		{"reversed range", http.MethodPost, "/logs/event", map[string]any{"range": map[string]any{"from": 10, "to": 1}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, data := c.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, code, string(data))
		})
	}
}

func TestVesting(t *testing.T) {
	c, node := newClient(t)

	var schedule vesting.Schedule
	c.get("/vesting", &schedule)
	assert.Equal(t, node.Now(), schedule.StartTime)
	assert.Equal(t, builtin.Token.Address, schedule.Asset)
	assert.Equal(t, genesis.DevCurve, schedule.Curve)

	rev := c.revert("/vesting/grant", map[string]any{"caller": alice, "account": carol, "amount": "1000"}, http.StatusForbidden)
	assert.Equal(t, "NotAdministrator", rev.Error)

	res := c.post("/vesting/grant", map[string]any{"caller": admin, "account": carol, "amount": "1000"})
	assert.Equal(t, tx.EventRightsGranted, res.Receipt.Events[0].Name)

	rev = c.revert("/vesting/withdraw", map[string]any{"caller": carol}, http.StatusConflict)
	assert.Equal(t, "DistributionNotOver", rev.Error)
	assert.Equal(t, "temporal", rev.Category)

	node.Advance(31 * day)

	rev = c.revert("/vesting/grant", map[string]any{"caller": admin, "account": carol, "amount": "1"}, http.StatusConflict)
	assert.Equal(t, "DistributionClosed", rev.Error)

	before := c.balance("Token", carol)
	res = c.post("/vesting/withdraw", map[string]any{"caller": carol})
	assert.Equal(t, big.NewInt(100), restutil.Amount(res.Amount))
	assert.Equal(t, new(big.Int).Add(before, big.NewInt(100)), c.balance("Token", carol))

	rev = c.revert("/vesting/withdraw", map[string]any{"caller": carol}, http.StatusUnprocessableEntity)
	assert.Equal(t, "NothingAvailable", rev.Error)

	var account vesting.Account
	c.get("/vesting/"+carol.String(), &account)
	assert.Equal(t, big.NewInt(1000), restutil.Amount(account.Granted))
	assert.Equal(t, big.NewInt(100), restutil.Amount(account.PaidOut))
	assert.Equal(t, big.NewInt(100), restutil.Amount(account.Unlocked))
	assert.Zero(t, restutil.Amount(account.Withdrawable).Sign())
}

func TestStaking(t *testing.T) {
	c, node := newClient(t)

	var pool staking.Pool
	c.get("/staking", &pool)
	assert.Equal(t, uint64(10), pool.RewardRate)
	assert.Equal(t, uint64(thor.DefaultLockPeriod.Seconds()), pool.LockPeriod)

	c.post("/tokens/Token/approve", map[string]any{"caller": alice, "spender": builtin.Staking.Address, "amount": "1000"})
	res := c.post("/staking/deposit", map[string]any{"caller": alice, "amount": "1000"})
	assert.Equal(t, tx.EventDeposited, res.Receipt.Events[len(res.Receipt.Events)-1].Name)

	rev := c.revert("/staking/claim", map[string]any{"caller": alice}, http.StatusConflict)
	assert.Equal(t, "LockPeriodNotElapsed", rev.Error)

	node.Advance(31 * day)

	var pos staking.Position
	c.get("/staking/"+alice.String(), &pos)
	assert.True(t, pos.Unlocked)
	assert.Equal(t, big.NewInt(100), restutil.Amount(pos.PendingReward))

	rev = c.revert("/staking/withdraw", map[string]any{"caller": alice}, http.StatusConflict)
	assert.Equal(t, "RewardsNotClaimed", rev.Error)
	assert.Equal(t, "ordering", rev.Category)

	rewardBefore := c.balance("Reward", alice)
	res = c.post("/staking/claim", map[string]any{"caller": alice})
	assert.Equal(t, big.NewInt(100), restutil.Amount(res.Amount))
	assert.Equal(t, new(big.Int).Add(rewardBefore, big.NewInt(100)), c.balance("Reward", alice))

	rev = c.revert("/staking/claim", map[string]any{"caller": alice}, http.StatusConflict)
	assert.Equal(t, "RewardsAlreadyClaimed", rev.Error)

	res = c.post("/staking/withdraw", map[string]any{"caller": alice})
	assert.Equal(t, big.NewInt(1000), restutil.Amount(res.Amount))

	c.get("/staking", &pool)
	assert.Equal(t, 0, restutil.Amount(pool.TotalStaked).Sign())

	var fes []*events.FilteredEvent
	code, data := c.do(http.MethodPost, "/logs/event", map[string]any{
		"criteriaSet": []any{
			map[string]any{"name": tx.EventRewardsClaimed},
			map[string]any{"name": tx.EventWithdrawn, "account": alice},
		},
		"order": "desc",
	})
	require.Equal(t, http.StatusOK, code, string(data))
	require.NoError(t, json.Unmarshal(data, &fes))
	require.Len(t, fes, 2)
	assert.Equal(t, tx.EventWithdrawn, fes[0].Name)
	assert.Equal(t, "staking.withdraw", fes[0].Op)
	assert.Equal(t, alice, fes[0].Caller)
	assert.Equal(t, tx.EventRewardsClaimed, fes[1].Name)
	assert.Equal(t, big.NewInt(100), restutil.Amount(fes[1].Amount))
}

func TestAdministrator(t *testing.T) {
	c, _ := newClient(t)

	var status administrator.Status
	c.get("/admin", &status)
	assert.Equal(t, admin, status.Administrator)

	rev := c.revert("/admin/transfer", map[string]any{"caller": alice, "newAdministrator": alice}, http.StatusForbidden)
	assert.Equal(t, "NotAdministrator", rev.Error)

	rev = c.revert("/admin/transfer", map[string]any{"caller": admin, "newAdministrator": thor.NullAddress}, http.StatusBadRequest)
	assert.Equal(t, "ZeroAddress", rev.Error)

	res := c.post("/admin/transfer", map[string]any{"caller": admin, "newAdministrator": alice})
	assert.Equal(t, tx.EventOwnershipTransferred, res.Receipt.Events[0].Name)
	c.get("/admin", &status)
	assert.Equal(t, alice, status.Administrator)

	c.post("/admin/renounce", map[string]any{"caller": alice})
	c.get("/admin", &status)
	assert.True(t, status.Renounced)

	c.revert("/tokens/Token/mint", map[string]any{"caller": alice, "account": alice, "amount": "1"}, http.StatusForbidden)
}
