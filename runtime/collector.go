// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"math/big"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vechain/tokenomy/builtin"
	"github.com/vechain/tokenomy/metrics"
	"github.com/vechain/tokenomy/xenv"
)

// supplyCollector exports ledger supplies and the staked total, read from committed state on scrape.
type supplyCollector struct {
	rt *Runtime

	supplyDesc *prometheus.Desc
	stakedDesc *prometheus.Desc
	headDesc   *prometheus.Desc
}

func newSupplyCollector(rt *Runtime) *supplyCollector {
	return &supplyCollector{
		rt: rt,
		supplyDesc: prometheus.NewDesc(
			metrics.FQName("ledger", "total_supply"),
			"Total supply of a ledger, in base units.",
			[]string{"ledger"}, nil,
		),
		stakedDesc: prometheus.NewDesc(
			metrics.FQName("staking", "total_staked"),
			"Sum of open staking deposits, in base units.",
			nil, nil,
		),
		headDesc: prometheus.NewDesc(
			metrics.FQName("runtime", "head_seq"),
			"Sequence of the last committed invocation.",
			nil, nil,
		),
	}
}

// RegisterMetrics exports state gauges of rt when prometheus is enabled.
func RegisterMetrics(rt *Runtime) error {
	return metrics.RegisterCollector(newSupplyCollector(rt))
}

// Describe implements prometheus.Collector.
func (c *supplyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.supplyDesc
	ch <- c.stakedDesc
	ch <- c.headDesc
}

// Collect implements prometheus.Collector.
func (c *supplyCollector) Collect(ch chan<- prometheus.Metric) {
	err := c.rt.Call(context.Background(), func(env *xenv.Environment) error {
		for _, l := range builtin.Ledgers() {
			supply, err := l.Native(env.State()).TotalSupply()
			if err != nil {
				return err
			}
			ch <- prometheus.MustNewConstMetric(c.supplyDesc, prometheus.GaugeValue, toFloat(supply), l.Name)
		}
		if staked, err := env.Staking().TotalStaked(); err == nil {
			ch <- prometheus.MustNewConstMetric(c.stakedDesc, prometheus.GaugeValue, toFloat(staked))
		}
		ch <- prometheus.MustNewConstMetric(c.headDesc, prometheus.CounterValue, float64(env.InvocationContext().Seq))
		return nil
	})
	if err != nil {
		logger.Warn("unable to collect supply metrics", "err", err)
	}
}

func toFloat(x *big.Int) float64 {
	f, _ := new(big.Float).SetInt(x).Float64()
	return f
}
