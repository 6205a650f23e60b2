package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Sena-ops/cguard/internal/aggregate"
	"github.com/Sena-ops/cguard/internal/scoring"
)

const namespace = "cguard"

type Recorder struct {
	reg        *prometheus.Registry
	violations *prometheus.CounterVec
	findings   *prometheus.CounterVec
	available  *prometheus.GaugeVec
	score      *prometheus.GaugeVec
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "violations_total",
			Help:      "Intrinsic rule violations by severity and rule.",
		}, []string{"severity", "rule"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_findings_total",
			Help:      "External tool findings by tool and unified category.",
		}, []string{"tool", "category"}),
		available: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tool_available",
			Help:      "1 when the analyzer binary answered its version probe.",
		}, []string{"tool"}),
		score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compliance_score",
			Help:      "Last intrinsic compliance score per file.",
		}, []string{"file"}),
	}
	r.reg.MustRegister(r.violations, r.findings, r.available, r.score)
	return r
}

// ObserveCheck registra o resultado de uma verificação interna.
func (r *Recorder) ObserveCheck(file string, res scoring.Result) {
	for _, v := range res.Violations {
		r.violations.WithLabelValues(string(v.Severity), v.RuleID).Inc()
	}
	r.score.WithLabelValues(file).Set(float64(res.Score))
}

// ObserveAggregate registra disponibilidade e achados das ferramentas.
func (r *Recorder) ObserveAggregate(res aggregate.Result) {
	for _, run := range res.Runs {
		v := 0.0
		if run.Available {
			v = 1
		}
		r.available.WithLabelValues(run.Tool).Set(v)
		for _, f := range run.Results {
			r.findings.WithLabelValues(run.Tool, f.Category).Inc()
		}
	}
}

// WriteFile grava as métricas em path de forma atômica.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("escrever métricas %s: %w", path, err)
	}
	return nil
}
