package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stocktrack-api/pkg/logger"
	"github.com/invorya/stocktrack-api/pkg/metrics"
)

// AccessLog registra cada petición con método, ruta, estado y duración.
// Usa la ruta registrada (con :id) en lugar del path crudo para que los
// logs se puedan agrupar por endpoint.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Route().Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")

		return err
	}
}

// Metrics alimenta los contadores e histogramas HTTP de Prometheus.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}
