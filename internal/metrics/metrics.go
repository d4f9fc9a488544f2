/**
* Name: 			metrics.go
* Description: 		시뮬레이션 재생 지표 (prometheus)
* Workflow: 		컨트롤러 Observer로 상태 전이 / stale 타이머 집계, 세션 수, 완료 점수 집계
 */

package metrics

import (
	"AwarenessSimulator_SecurityProject/internal/playback"
	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	transitions    *prometheus.CounterVec
	staleTimers    *prometheus.CounterVec
	completions    *prometheus.CounterVec
	reportFailures *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playback_transitions_total",
			Help: "Playback state transitions by scenario kind and target phase.",
		}, []string{"kind", "phase"}),
		staleTimers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playback_stale_timers_total",
			Help: "Scheduled callbacks ignored because their generation was outdated.",
		}, []string{"kind"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playback_completions_total",
			Help: "Completed scenarios reported through the completion bridge.",
		}, []string{"kind"}),
		reportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playback_report_failures_total",
			Help: "Completion reports that failed, by target.",
		}, []string{"target"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "playback_active_sessions",
			Help: "Open WebSocket playback sessions.",
		}),
	}
	reg.MustRegister(m.transitions, m.staleTimers, m.completions, m.reportFailures, m.activeSessions)
	return m
}

func (m *Metrics) Transition(kind scenario.Kind, _, to playback.Phase) {
	m.transitions.WithLabelValues(string(kind), string(to)).Inc()
}

func (m *Metrics) StaleTimer(kind scenario.Kind) {
	m.staleTimers.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) Completed(kind scenario.Kind) {
	m.completions.WithLabelValues(string(kind)).Inc()
}

// ReportFailed counts a failed completion report; target is "progress" or "lms".
func (m *Metrics) ReportFailed(target string) {
	m.reportFailures.WithLabelValues(target).Inc()
}

func (m *Metrics) SessionOpened() { m.activeSessions.Inc() }
func (m *Metrics) SessionClosed() { m.activeSessions.Dec() }
