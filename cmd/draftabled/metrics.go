// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/diffeo/go-draftable/draftable"
)

var comparisonsGauge = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "draftable",
		Subsystem: "server",
		Name:      "comparisons",
		Help:      "Number of comparisons by account and state",
	},
	[]string{
		"account",
		"state",
	},
)

func init() {
	prometheus.MustRegister(comparisonsGauge)
}

// accountView pairs an account ID with its store view for the metrics
// loop.
type accountView struct {
	id   string
	view draftable.Draftable
}

// observe periodically republishes per-account comparison counts.
func observe(accounts []accountView) {
	for range time.Tick(15 * time.Second) {
		for _, account := range accounts {
			comparisons, err := account.view.AllComparisons()
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"account": account.id,
					"err":     err,
				}).Warn("Could not count comparisons")
				continue
			}
			counts := map[string]float64{"pending": 0, "ready": 0, "failed": 0}
			for _, c := range comparisons {
				switch {
				case !c.Ready:
					counts["pending"]++
				case c.HasFailed():
					counts["failed"]++
				default:
					counts["ready"]++
				}
			}
			for state, count := range counts {
				comparisonsGauge.With(prometheus.Labels{
					"account": account.id,
					"state":   state,
				}).Set(count)
			}
		}
	}
}
