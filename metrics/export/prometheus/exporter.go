package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	goStats "github.com/MrEthical07/goStats"
	"github.com/MrEthical07/goStats/metrics/export/internaldefs"
)

type metricsSource interface {
	Collect() []goStats.MetricValue
}

type droppedSource interface {
	Dropped() uint64
}

type exportedMetric struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
}

// PrometheusExporter is a prometheus.Collector over a goStats registry.
type PrometheusExporter struct {
	source  metricsSource
	dropped droppedSource
	metrics map[goStats.MetricID]exportedMetric
	order   []goStats.MetricID
	drop    *prometheus.Desc
}

// NewPrometheusExporter exports reg. When rep is non-nil its dropped snapshot
// count is exported too.
func NewPrometheusExporter(reg *goStats.Registry, rep *goStats.Reporter) *PrometheusExporter {
	p := NewPrometheusExporterFromSource(reg)
	if rep != nil {
		p.dropped = rep
	}
	return p
}

// NewPrometheusExporterFromSource creates an exporter over any value that
// can list the catalog's current values.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	defs := internaldefs.Defs()
	p := &PrometheusExporter{
		source:  source,
		metrics: make(map[goStats.MetricID]exportedMetric, len(defs)),
		order:   make([]goStats.MetricID, 0, len(defs)),
		drop: prometheus.NewDesc(
			internaldefs.ReporterDropped.Name,
			internaldefs.ReporterDropped.Help,
			nil, nil,
		),
	}
	for _, def := range defs {
		vt := prometheus.CounterValue
		if def.Kind == goStats.KindRolling {
			vt = prometheus.GaugeValue
		}
		p.metrics[def.ID] = exportedMetric{
			desc:      prometheus.NewDesc(def.Name, def.Help, nil, nil),
			valueType: vt,
		}
		p.order = append(p.order, def.ID)
	}
	return p
}

// Describe implements prometheus.Collector.
func (p *PrometheusExporter) Describe(ch chan<- *prometheus.Desc) {
	for _, id := range p.order {
		ch <- p.metrics[id].desc
	}
	if p.dropped != nil {
		ch <- p.drop
	}
}

// Collect implements prometheus.Collector.
func (p *PrometheusExporter) Collect(ch chan<- prometheus.Metric) {
	if p.source == nil {
		return
	}
	for _, v := range p.source.Collect() {
		m, ok := p.metrics[v.ID]
		if !ok {
			continue
		}
		ch <- prometheus.MustNewConstMetric(m.desc, m.valueType, float64(v.Value))
	}
	if p.dropped != nil {
		ch <- prometheus.MustNewConstMetric(p.drop, prometheus.CounterValue, float64(p.dropped.Dropped()))
	}
}

// Handler serves the exporter from a private registry in the text
// exposition format.
func (p *PrometheusExporter) Handler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(p)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
