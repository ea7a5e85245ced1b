// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenomy/api/tokens"
	"github.com/vechain/tokenomy/genesis"
	"github.com/vechain/tokenomy/logdb"
	"github.com/vechain/tokenomy/lvldb"
	"github.com/vechain/tokenomy/metrics"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/state"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestMetricsMiddleware(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	defer logDB.Close()
	rt := runtime.New(state.NewStater(db), logDB)
	_, err = genesis.NewDevnet(1_700_000_000).Apply(context.Background(), rt)
	require.NoError(t, err)

	router := mux.NewRouter()
	tokens.New(rt).Mount(router, "/tokens")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer ts.Close()

	_, code := httpGet(t, ts.URL+"/tokens/token")
	assert.Equal(t, http.StatusOK, code)
	_, code = httpGet(t, ts.URL+"/tokens/nope")
	assert.Equal(t, http.StatusNotFound, code)

	body, _ := httpGet(t, ts.URL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	m := families["tokenomy_api_request_count"].GetMetric()
	require.Equal(t, 2, len(m), "should be 2 metric entries")

	codes := make(map[string]float64)
	for _, metric := range m {
		labels := metric.GetLabel()
		require.Equal(t, 3, len(labels))
		assert.Equal(t, "code", labels[0].GetName())
		assert.Equal(t, "method", labels[1].GetName())
		assert.Equal(t, "GET", labels[1].GetValue())
		assert.Equal(t, "name", labels[2].GetName())
		assert.Equal(t, "GET /tokens/{token}", labels[2].GetValue())
		codes[labels[0].GetValue()] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"200": 1, "404": 1}, codes)
}
