// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/thor"
)

// AddressVar parses the named path variable as an address.
func AddressVar(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// Amount returns the big.Int form of a decoded amount, nil stays nil.
func Amount(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return nil
	}
	return (*big.Int)(v)
}

// RequireAmount checks a request amount is present.
func RequireAmount(v *math.HexOrDecimal256, name string) (*big.Int, error) {
	if v == nil {
		return nil, BadRequest(errors.New(name + ": required"))
	}
	return Amount(v), nil
}

// RequireAddress checks a request address is present.
func RequireAddress(v *thor.Address, name string) (thor.Address, error) {
	if v == nil {
		return thor.Address{}, BadRequest(errors.New(name + ": required"))
	}
	return *v, nil
}
