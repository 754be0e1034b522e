// Package metrics define los colectores Prometheus del servicio.
// Se registran en el registry global; GET /metrics los expone cuando
// METRICS_ENABLED está activo.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsTotal movimientos de stock aplicados, por dirección (IN/OUT).
	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocktrack_movements_total",
		Help: "Movimientos de stock aplicados, por dirección.",
	}, []string{"direction"})

	// MovementsRejectedTotal movimientos rechazados, por motivo.
	MovementsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocktrack_movements_rejected_total",
		Help: "Movimientos de stock rechazados, por motivo.",
	}, []string{"reason"})

	// HTTPRequestsTotal peticiones atendidas; path usa la ruta registrada
	// (con :id), no la URL cruda, para acotar la cardinalidad.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocktrack_http_requests_total",
		Help: "Peticiones HTTP atendidas.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration duración de las peticiones HTTP en segundos.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stocktrack_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
