// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/thor"
)

type Token struct {
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	Address     thor.Address          `json:"address"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

type Balance struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type Allowance struct {
	Allowance *math.HexOrDecimal256 `json:"allowance"`
}

// OpRequest carries the arguments of every write operation, each uses a subset:
//
//	transfer                            to, amount
//	approve, increase/decreaseAllowance spender, amount
//	transferFrom                        owner, to, amount
//	mint, burn                          account, amount
type OpRequest struct {
	restutil.Invocation
	To      *thor.Address         `json:"to,omitempty"`
	Spender *thor.Address         `json:"spender,omitempty"`
	Owner   *thor.Address         `json:"owner,omitempty"`
	Account *thor.Address         `json:"account,omitempty"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}
