package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var placementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gridplace_placements_total",
		Help: "Placement attempts by outcome",
	},
	[]string{"result"},
)
