// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind identifies why a contract call was reverted.
type Kind uint8

const (
	ZeroAddress Kind = iota + 1
	InvalidAmount
	InsufficientFunds
	InsufficientAllowance
	NothingAvailable
	DistributionClosed
	DistributionNotOver
	StakingNotStarted
	LockPeriodNotElapsed
	RewardsAlreadyClaimed
	RewardsNotClaimed
	NotAdministrator
)

var kindNames = map[Kind]string{
	ZeroAddress:           "ZeroAddress",
	InvalidAmount:         "InvalidAmount",
	InsufficientFunds:     "InsufficientFunds",
	InsufficientAllowance: "InsufficientAllowance",
	NothingAvailable:      "NothingAvailable",
	DistributionClosed:    "DistributionClosed",
	DistributionNotOver:   "DistributionNotOver",
	StakingNotStarted:     "StakingNotStarted",
	LockPeriodNotElapsed:  "LockPeriodNotElapsed",
	RewardsAlreadyClaimed: "RewardsAlreadyClaimed",
	RewardsNotClaimed:     "RewardsNotClaimed",
	NotAdministrator:      "NotAdministrator",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Category groups kinds by the nature of the failure.
type Category uint8

const (
	Validation Category = iota + 1
	Insufficient
	Temporal
	Ordering
	Authorization
)

func (c Category) String() string {
	switch c {
	case Validation:
		return "validation"
	case Insufficient:
		return "insufficient"
	case Temporal:
		return "temporal"
	case Ordering:
		return "ordering"
	case Authorization:
		return "authorization"
	}
	return "unknown"
}

func (k Kind) Category() Category {
	switch k {
	case ZeroAddress, InvalidAmount:
		return Validation
	case InsufficientFunds, InsufficientAllowance, NothingAvailable:
		return Insufficient
	case DistributionClosed, DistributionNotOver, StakingNotStarted, LockPeriodNotElapsed:
		return Temporal
	case RewardsAlreadyClaimed, RewardsNotClaimed:
		return Ordering
	case NotAdministrator:
		return Authorization
	}
	return 0
}

// Sentinels for errors.Is.
var (
	ErrZeroAddress           = &ErrRevert{kind: ZeroAddress}
	ErrInvalidAmount         = &ErrRevert{kind: InvalidAmount}
	ErrInsufficientFunds     = &ErrRevert{kind: InsufficientFunds}
	ErrInsufficientAllowance = &ErrRevert{kind: InsufficientAllowance}
	ErrNothingAvailable      = &ErrRevert{kind: NothingAvailable}
	ErrDistributionClosed    = &ErrRevert{kind: DistributionClosed}
	ErrDistributionNotOver   = &ErrRevert{kind: DistributionNotOver}
	ErrStakingNotStarted     = &ErrRevert{kind: StakingNotStarted}
	ErrLockPeriodNotElapsed  = &ErrRevert{kind: LockPeriodNotElapsed}
	ErrRewardsAlreadyClaimed = &ErrRevert{kind: RewardsAlreadyClaimed}
	ErrRewardsNotClaimed     = &ErrRevert{kind: RewardsNotClaimed}
	ErrNotAdministrator      = &ErrRevert{kind: NotAdministrator}
)

// ErrRevert is a business failure of a contract call. State changes of the call are discarded.
type ErrRevert struct {
	kind    Kind
	message string
}

// New creates a revert of the given kind with a diagnostic message.
func New(kind Kind, format string, args ...any) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
	}
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func (e *ErrRevert) Category() Category {
	return e.kind.Category()
}

func (e *ErrRevert) Message() string {
	return e.message
}

func (e *ErrRevert) Error() string {
	if e.message == "" {
		return e.kind.String()
	}
	return e.kind.String() + ": " + e.message
}

// Is matches any revert of the same kind.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.kind == e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of a revert, or zero if err is not a revert.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return 0
}
