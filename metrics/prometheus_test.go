// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPromMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	InitializePrometheusMetrics()

	count1 := Counter("prom_count1")
	countVec := CounterVec("prom_countVec1", []string{"zeroOrOne"})
	gauge1 := Gauge("prom_gauge1")
	gaugeVec := GaugeVec("prom_gaugeVec1", []string{"zeroOrOne"})
	histVec := HistogramVec("prom_hist1", []string{"zeroOrOne"}, BucketOps)

	count1.Add(1)
	// same meter on lookup
	Counter("prom_count1").Add(1)

	total := 0
	for i := range rand.N(100) + 2 {
		labels := map[string]string{"zeroOrOne": strconv.Itoa(i % 2)}
		countVec.AddWithLabel(int64(i), labels)
		gaugeVec.AddWithLabel(int64(i), labels)
		histVec.ObserveWithLabels(int64(i), labels)
		total += i
	}
	gauge1.Set(42)

	families := gather(t)
	require.Equal(t, float64(2), families["tokenomy_prom_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(42), families["tokenomy_prom_gauge1"].Metric[0].GetGauge().GetValue())

	m := families["tokenomy_prom_countVec1"].Metric
	require.Equal(t, float64(total), m[0].GetCounter().GetValue()+m[1].GetCounter().GetValue())
	m = families["tokenomy_prom_gaugeVec1"].Metric
	require.Equal(t, float64(total), m[0].GetGauge().GetValue()+m[1].GetGauge().GetValue())
	m = families["tokenomy_prom_hist1"].Metric
	require.Equal(t, float64(total), m[0].GetHistogram().GetSampleSum()+m[1].GetHistogram().GetSampleSum())

	gaugeVec.SetWithLabel(7, map[string]string{"zeroOrOne": "0"})
	families = gather(t)
	for _, metric := range families["tokenomy_prom_gaugeVec1"].Metric {
		if metric.GetLabel()[0].GetValue() == "0" {
			require.Equal(t, float64(7), metric.GetGauge().GetValue())
		}
	}
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
