// Package metrics exports hash table resize activity as prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "collections"

// TableRecorder implements primitive.Observer.
type TableRecorder struct {
	// Rehashes counts table rebuilds. Labels: reason (grow, compact).
	Rehashes *prometheus.CounterVec

	// TombstonesDiscarded counts removed-slot markers dropped by rebuilds.
	TombstonesDiscarded prometheus.Counter
}

// NewTableRecorder creates the counters and registers them with reg.
func NewTableRecorder(reg prometheus.Registerer) (*TableRecorder, error) {
	r := &TableRecorder{
		Rehashes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hashtable",
			Name:      "rehash_total",
			Help:      "Number of hash table rebuilds by reason.",
		}, []string{"reason"}),
		TombstonesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hashtable",
			Name:      "tombstones_discarded_total",
			Help:      "Number of removed-slot markers discarded by rebuilds.",
		}),
	}
	for _, c := range []prometheus.Collector{r.Rehashes, r.TombstonesDiscarded} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// OnRehash records one rebuild. A rebuild that keeps the slot count is a
// compaction.
func (r *TableRecorder) OnRehash(oldCap, newCap, live, tombstones int) {
	reason := "grow"
	if newCap == oldCap {
		reason = "compact"
	}
	r.Rehashes.WithLabelValues(reason).Inc()
	r.TombstonesDiscarded.Add(float64(tombstones))
}
