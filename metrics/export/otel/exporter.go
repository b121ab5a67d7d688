package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	goStats "github.com/MrEthical07/goStats"
	"github.com/MrEthical07/goStats/metrics/export/internaldefs"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	Collect() []goStats.MetricValue
}

type observedMetric struct {
	counter metric.Int64ObservableCounter
	gauge   metric.Int64ObservableGauge
}

type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	metrics      map[goStats.MetricID]observedMetric
}

func NewOTelExporter(meter metric.Meter, reg *goStats.Registry) (*OTelExporter, error) {
	if reg == nil {
		return nil, ErrNilSource
	}
	return NewOTelExporterFromSource(meter, reg)
}

func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	defs := internaldefs.Defs()
	exporter := &OTelExporter{
		source:  source,
		metrics: make(map[goStats.MetricID]observedMetric, len(defs)),
	}
	observables := make([]metric.Observable, 0, len(defs))

	for _, def := range defs {
		var m observedMetric
		switch def.Kind {
		case goStats.KindRolling:
			ins, err := meter.Int64ObservableGauge(def.Name, metric.WithDescription(def.Help))
			if err != nil {
				return nil, fmt.Errorf("create observable gauge %s: %w", def.Name, err)
			}
			m.gauge = ins
			observables = append(observables, ins)
		default:
			ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
			if err != nil {
				return nil, fmt.Errorf("create observable counter %s: %w", def.Name, err)
			}
			m.counter = ins
			observables = append(observables, ins)
		}
		exporter.metrics[def.ID] = m
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		for _, v := range exporter.source.Collect() {
			m, ok := exporter.metrics[v.ID]
			if !ok {
				continue
			}
			if m.gauge != nil {
				observer.ObserveInt64(m.gauge, v.Value)
			} else {
				observer.ObserveInt64(m.counter, v.Value)
			}
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	exporter.registration = registration
	return exporter, nil
}

func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
