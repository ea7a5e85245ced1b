// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/api/events"
	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/logdb"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

// parseCriteria reads event criteria from the query string, all fields optional.
func parseCriteria(req *http.Request) (*logdb.EventCriteria, error) {
	query := req.URL.Query()
	criteria := &logdb.EventCriteria{Name: query.Get("name")}

	for _, f := range []struct {
		name string
		dst  **thor.Address
	}{
		{"address", &criteria.Address},
		{"account", &criteria.Account},
		{"caller", &criteria.Caller},
	} {
		v := query.Get(f.name)
		if v == "" {
			continue
		}
		addr, err := thor.ParseAddress(v)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, f.name))
		}
		*f.dst = &addr
	}
	return criteria, nil
}

// eventMessages converts the events of r matching criteria.
func eventMessages(r *tx.Receipt, criteria *logdb.EventCriteria) []any {
	var msgs []any
	for _, ev := range logdb.EventsOf(r) {
		if criteria.Match(ev) {
			msgs = append(msgs, events.NewFilteredEvent(ev))
		}
	}
	return msgs
}

func receiptMessages(r *tx.Receipt, _ *logdb.EventCriteria) []any {
	return []any{restutil.ConvertReceipt(r)}
}
