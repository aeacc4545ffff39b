// Package metrics exports volume buffer growth as Prometheus metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-theft-craft/volume/pkg/volume"
)

const namespace = "volume"

// Collector counts growth events of the buffers it observes. It implements
// volume.Observer and is safe for use by many buffers at once.
type Collector struct {
	registry   *prometheus.Registry
	grew       *prometheus.CounterVec
	promotions prometheus.Counter
	remapped   prometheus.Counter
}

var _ volume.Observer = (*Collector)(nil)

// New creates a Collector registered on its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		grew: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backing_grown_total",
			Help:      "Backings rebuilt at a wider slot size, by new width.",
		}, []string{"bits"}),
		promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "palette_promotions_total",
			Help:      "Buffers switched from a local to the global palette.",
		}),
		remapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promoted_cells_total",
			Help:      "Cells whose id was remapped by a palette promotion.",
		}),
	}
	c.registry.MustRegister(c.grew, c.promotions, c.remapped)
	return c
}

func (c *Collector) Grew(_, toBits uint8) {
	c.grew.WithLabelValues(strconv.Itoa(int(toBits))).Inc()
}

func (c *Collector) Promoted(cells int) {
	c.promotions.Inc()
	c.remapped.Add(float64(cells))
}

// Gatherer exposes the collected metrics, e.g. to promhttp.HandlerFor.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
