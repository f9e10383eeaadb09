// Package metrics recolecta y expone las métricas Prometheus de la consola.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/medicare-console/internal/application/session"
	"github.com/jhoicas/medicare-console/internal/infrastructure/medapi"
)

var (
	_ session.Recorder = (*Collector)(nil)
	_ medapi.Observer  = (*Collector)(nil)
)

// Collector métricas del ciclo de sesión, de la compuerta de navegación y de la API remota.
type Collector struct {
	logins     *prometheus.CounterVec
	logouts    prometheus.Counter
	restores   *prometheus.CounterVec
	gate       *prometheus.CounterVec
	apiLatency *prometheus.HistogramVec
	liveStores prometheus.GaugeFunc
}

// NewCollector registra las métricas en reg. liveStores puede ser nil.
func NewCollector(reg prometheus.Registerer, liveStores func() int) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_logins_total",
			Help: "Intentos de login por resultado",
		}, []string{"outcome"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "console_logouts_total",
			Help: "Logouts ejecutados",
		}),
		restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_session_restores_total",
			Help: "Arranques de sesión por resultado",
		}, []string{"outcome"}),
		gate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_gate_decisions_total",
			Help: "Decisiones de la compuerta de navegación",
		}, []string{"requirement", "action"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_api_request_duration_seconds",
			Help:    "Latencia de las llamadas a la API remota",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	collectors := []prometheus.Collector{c.logins, c.logouts, c.restores, c.gate, c.apiLatency}
	if liveStores != nil {
		c.liveStores = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "console_live_stores",
			Help: "Stores de sesión en memoria",
		}, func() float64 { return float64(liveStores()) })
		collectors = append(collectors, c.liveStores)
	}
	reg.MustRegister(collectors...)
	return c
}

func (c *Collector) RecordLogin(outcome string)   { c.logins.WithLabelValues(outcome).Inc() }
func (c *Collector) RecordLogout()                { c.logouts.Inc() }
func (c *Collector) RecordRestore(outcome string) { c.restores.WithLabelValues(outcome).Inc() }

// RecordGate cuenta una decisión de la compuerta.
func (c *Collector) RecordGate(requirement, action string) {
	c.gate.WithLabelValues(requirement, action).Inc()
}

// ObserveAPICall registra la latencia; status 0 es falla de transporte.
func (c *Collector) ObserveAPICall(method, route string, status int, elapsed time.Duration) {
	c.apiLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler handler de scrape.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
