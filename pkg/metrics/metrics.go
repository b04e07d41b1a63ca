// Package metrics counts lifecycle transitions and validation outcomes with
// Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
)

const namespace = "uicontrol"

// Validation result labels.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Observer records helper events as counters.
type Observer struct {
	transitions *prometheus.CounterVec
	validations *prometheus.CounterVec
}

// NewObserver creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lifecycle_transitions_total",
				Help:      "Count of control lifecycle transitions by control type and target phase.",
			},
			[]string{"type", "phase"},
		),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Count of control validations by control type and result.",
			},
			[]string{"type", "result"},
		),
	}
	if reg == nil {
		return o, nil
	}
	for _, c := range []prometheus.Collector{o.transitions, o.validations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ObserveTransition counts a move of c into phase.
func (o *Observer) ObserveTransition(c control.Control, phase lifecycle.Phase) {
	o.transitions.WithLabelValues(c.Core().Type, phase.String()).Inc()
}

// ObserveValidation counts a validation of c.
func (o *Observer) ObserveValidation(c control.Control, valid bool) {
	result := ResultInvalid
	if valid {
		result = ResultValid
	}
	o.validations.WithLabelValues(c.Core().Type, result).Inc()
}

// Transitions exposes the transition counter.
func (o *Observer) Transitions() *prometheus.CounterVec { return o.transitions }

// Validations exposes the validation counter.
func (o *Observer) Validations() *prometheus.CounterVec { return o.validations }
