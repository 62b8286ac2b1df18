package mapcache

import (
	"github.com/prometheus/client_golang/prometheus"
)

var DecodedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "catalog",
	Subsystem: "mapcache",
	Name:      "decoded_records",
}, []string{"result"})

var Loads = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "catalog",
	Subsystem: "mapcache",
	Name:      "loads",
}, []string{"result"})

var LastUpdatedSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "catalog",
	Subsystem: "mapcache",
	Name:      "last_updated_seconds",
})

func init() {
	prometheus.MustRegister(DecodedRecords)
	prometheus.MustRegister(Loads)
	prometheus.MustRegister(LastUpdatedSeconds)
}
