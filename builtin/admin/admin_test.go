// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenomy/builtin/reverts"
	"github.com/vechain/tokenomy/lvldb"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

var (
	owner = thor.BytesToAddress([]byte("owner"))
	alice = thor.BytesToAddress([]byte("alice"))
)

func newAdmin(t *testing.T) (*Admin, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()
	return New(thor.BytesToAddress([]byte("admin")), st), st
}

func TestInitialize(t *testing.T) {
	a, st := newAdmin(t)

	assert.ErrorIs(t, a.Initialize(thor.NullAddress), reverts.ErrZeroAddress)
	require.NoError(t, a.Initialize(owner))
	assert.Error(t, a.Initialize(alice))

	got, err := a.Get()
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	events := st.Events().Filter(tx.EventOwnershipTransferred)
	require.Len(t, events, 1)
	assert.Equal(t, thor.NullAddress, events[0].Account(0))
	assert.Equal(t, owner, events[0].Account(1))
}

func TestRequire(t *testing.T) {
	a, _ := newAdmin(t)

	// no administrator yet
	assert.ErrorIs(t, a.Require(owner), reverts.ErrNotAdministrator)

	require.NoError(t, a.Initialize(owner))
	assert.NoError(t, a.Require(owner))
	assert.ErrorIs(t, a.Require(alice), reverts.ErrNotAdministrator)
	assert.ErrorIs(t, a.Require(thor.NullAddress), reverts.ErrNotAdministrator)
}

func TestTransfer(t *testing.T) {
	a, st := newAdmin(t)
	require.NoError(t, a.Initialize(owner))

	assert.ErrorIs(t, a.Transfer(alice, alice), reverts.ErrNotAdministrator)
	assert.ErrorIs(t, a.Transfer(owner, thor.NullAddress), reverts.ErrZeroAddress)

	require.NoError(t, a.Transfer(owner, alice))
	ok, err := a.IsAdministrator(alice)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = a.IsAdministrator(owner)
	require.NoError(t, err)
	assert.False(t, ok)

	events := st.Events().Filter(tx.EventOwnershipTransferred)
	require.Len(t, events, 2)
	assert.Equal(t, owner, events[1].Account(0))
	assert.Equal(t, alice, events[1].Account(1))
}

func TestRenounce(t *testing.T) {
	a, _ := newAdmin(t)
	require.NoError(t, a.Initialize(owner))

	assert.ErrorIs(t, a.Renounce(alice), reverts.ErrNotAdministrator)
	require.NoError(t, a.Renounce(owner))

	got, err := a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.ErrorIs(t, a.Require(owner), reverts.ErrNotAdministrator)
	assert.ErrorIs(t, a.Transfer(owner, alice), reverts.ErrNotAdministrator)
}
