// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/bn"
	"github.com/vechain/tokenomy/builtin/reverts"
	"github.com/vechain/tokenomy/builtin/solidity"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

var (
	slotBalances    = thor.BytesToBytes32([]byte("balances"))
	slotAllowances  = thor.BytesToBytes32([]byte("allowances"))
	slotTotalSupply = thor.BytesToBytes32([]byte("total-supply"))
	slotMetadata    = thor.BytesToBytes32([]byte("metadata"))
)

// Ledger implements a fungible asset: balances, allowances and total supply.
// Every mutation keeps the sum of balances equal to the total supply.
type Ledger struct {
	sctx      *solidity.Context
	authority Authority

	balances    *solidity.Mapping[thor.Address, *big.Int]
	allowances  *solidity.Mapping[allowanceKey, *big.Int]
	totalSupply *solidity.Uint256
	metadata    *solidity.Raw[*Metadata]
}

// New create a new instance.
func New(addr thor.Address, state *state.State, authority Authority) *Ledger {
	sctx := solidity.NewContext(addr, state)
	return &Ledger{
		sctx:        sctx,
		authority:   authority,
		balances:    solidity.NewMapping[thor.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[allowanceKey, *big.Int](sctx, slotAllowances),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		metadata:    solidity.NewRaw[*Metadata](sctx, slotMetadata),
	}
}

func (l *Ledger) Address() thor.Address {
	return l.sctx.Address()
}

// Initialize stores the asset metadata.
func (l *Ledger) Initialize(md *Metadata) error {
	if md.Decimals == 0 {
		md.Decimals = thor.TokenDecimals
	}
	return errors.Wrap(l.metadata.Set(md), "failed to set metadata")
}

func (l *Ledger) Metadata() (*Metadata, error) {
	md, err := l.metadata.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get metadata")
	}
	return md, nil
}

//
// Getters - no state change
//

func (l *Ledger) BalanceOf(account thor.Address) (*big.Int, error) {
	balance, err := l.balances.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

func (l *Ledger) Allowance(owner, spender thor.Address) (*big.Int, error) {
	allowance, err := l.allowances.Get(allowanceKey{owner, spender})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowance")
	}
	return allowance, nil
}

func (l *Ledger) TotalSupply() (*big.Int, error) {
	supply, err := l.totalSupply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total supply")
	}
	return supply, nil
}

//
// Setters - state change
//

// Transfer moves amount from one account to another.
func (l *Ledger) Transfer(from, to thor.Address, amount *big.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if to.IsZero() {
		return reverts.New(reverts.ZeroAddress, "transfer to the null account")
	}
	if err := l.move(from, to, amount); err != nil {
		return err
	}
	l.sctx.Emit(tx.EventTransfer, amount, from, to)
	return nil
}

// Approve sets the allowance of spender over owner's balance, overwriting any prior value.
func (l *Ledger) Approve(owner, spender thor.Address, amount *big.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if spender.IsZero() {
		return reverts.New(reverts.ZeroAddress, "approve to the null account")
	}
	return l.setAllowance(owner, spender, amount)
}

// TransferFrom moves amount out of owner's balance on behalf of spender.
func (l *Ledger) TransferFrom(owner, spender, recipient thor.Address, amount *big.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if recipient.IsZero() {
		return reverts.New(reverts.ZeroAddress, "transfer to the null account")
	}
	balance, err := l.BalanceOf(owner)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return reverts.New(reverts.InsufficientFunds, "balance %v, requested %v", balance, amount)
	}
	allowance, err := l.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return reverts.New(reverts.InsufficientAllowance, "allowance %v, requested %v", allowance, amount)
	}

	remaining, err := bn.Sub(allowance, amount)
	if err != nil {
		return err
	}
	if err := l.setAllowance(owner, spender, remaining); err != nil {
		return err
	}
	if err := l.move(owner, recipient, amount); err != nil {
		return err
	}
	l.sctx.Emit(tx.EventTransfer, amount, owner, recipient)
	return nil
}

func (l *Ledger) IncreaseAllowance(owner, spender thor.Address, delta *big.Int) error {
	if err := validateAmount(delta); err != nil {
		return err
	}
	if spender.IsZero() {
		return reverts.New(reverts.ZeroAddress, "approve to the null account")
	}
	allowance, err := l.Allowance(owner, spender)
	if err != nil {
		return err
	}
	next, err := bn.Add(allowance, delta)
	if err != nil {
		return reverts.New(reverts.InvalidAmount, "allowance overflow")
	}
	return l.setAllowance(owner, spender, next)
}

func (l *Ledger) DecreaseAllowance(owner, spender thor.Address, delta *big.Int) error {
	if err := validateAmount(delta); err != nil {
		return err
	}
	if spender.IsZero() {
		return reverts.New(reverts.ZeroAddress, "approve to the null account")
	}
	allowance, err := l.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(delta) < 0 {
		return reverts.New(reverts.InsufficientAllowance, "allowance %v, decrease %v", allowance, delta)
	}
	next, err := bn.Sub(allowance, delta)
	if err != nil {
		return err
	}
	return l.setAllowance(owner, spender, next)
}

// Mint creates amount new units in account. Administrator only.
func (l *Ledger) Mint(caller, account thor.Address, amount *big.Int) error {
	if err := l.authority.Require(caller); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if account.IsZero() {
		return reverts.New(reverts.ZeroAddress, "mint to the null account")
	}
	if err := l.totalSupply.Add(amount); err != nil {
		if errors.Is(err, bn.ErrOverflow) {
			return reverts.New(reverts.InvalidAmount, "total supply overflow")
		}
		return errors.Wrap(err, "failed to add total supply")
	}
	if err := l.credit(account, amount); err != nil {
		return err
	}
	l.sctx.Emit(tx.EventTransfer, amount, thor.NullAddress, account)
	return nil
}

// Burn destroys amount units of account. Administrator only.
func (l *Ledger) Burn(caller, account thor.Address, amount *big.Int) error {
	if err := l.authority.Require(caller); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := l.debit(account, amount); err != nil {
		return err
	}
	if err := l.totalSupply.Sub(amount); err != nil {
		return errors.Wrap(err, "failed to sub total supply")
	}
	l.sctx.Emit(tx.EventTransfer, amount, account, thor.NullAddress)
	return nil
}

func (l *Ledger) move(from, to thor.Address, amount *big.Int) error {
	if err := l.debit(from, amount); err != nil {
		return err
	}
	return l.credit(to, amount)
}

func (l *Ledger) debit(account thor.Address, amount *big.Int) error {
	balance, err := l.BalanceOf(account)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return reverts.New(reverts.InsufficientFunds, "balance %v, requested %v", balance, amount)
	}
	next, err := bn.Sub(balance, amount)
	if err != nil {
		return err
	}
	return errors.Wrap(l.balances.Set(account, next), "failed to set balance")
}

func (l *Ledger) credit(account thor.Address, amount *big.Int) error {
	balance, err := l.BalanceOf(account)
	if err != nil {
		return err
	}
	// bounded by total supply, which is checked on mint
	next, err := bn.Add(balance, amount)
	if err != nil {
		return err
	}
	return errors.Wrap(l.balances.Set(account, next), "failed to set balance")
}

func (l *Ledger) setAllowance(owner, spender thor.Address, amount *big.Int) error {
	if err := l.allowances.Set(allowanceKey{owner, spender}, amount); err != nil {
		return errors.Wrap(err, "failed to set allowance")
	}
	l.sctx.Emit(tx.EventApproval, amount, owner, spender)
	return nil
}

func validateAmount(amount *big.Int) error {
	if amount == nil || bn.Validate(amount) != nil {
		return reverts.New(reverts.InvalidAmount, "amount %v out of range", amount)
	}
	return nil
}
