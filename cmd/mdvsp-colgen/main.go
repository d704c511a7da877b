// Command mdvsp-colgen solves Multi-Depot Vehicle Scheduling Problem
// instances with column generation followed by the truncated-CG primal
// heuristic.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("configuration error")
		os.Exit(1)
	}
}
