package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tekeliveli/stoktakip/pkg/logger"
)

// HeaderRequestID cabecera de correlación; si el cliente no la envía se genera un UUID.
const HeaderRequestID = "X-Request-ID"

// LocalRequestID key del request id en c.Locals.
const LocalRequestID = "request_id"

// RequestLogger asigna un request id y registra método, ruta, status y latencia de cada petición.
//
// El access log es dueño del render de errores: si la cadena devuelve error, RequestLogger
// llama al ErrorHandler de la app para que el status registrado sea el definitivo y devuelve
// nil para que fiber no vuelva a renderizar la respuesta. Debe ser el middleware más externo
// después de recover.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalRequestID, rid)
		c.Set(HeaderRequestID, rid)

		chainErr := c.Next()
		if chainErr != nil {
			// Renderizado único: el error no se propaga hacia fiber.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return nil
	}
}

// GetRequestID devuelve el request id del contexto (después de RequestLogger).
func GetRequestID(c *fiber.Ctx) string {
	v := c.Locals(LocalRequestID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
