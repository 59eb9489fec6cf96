// Package health exposes the liveness endpoint used by an external
// uptime pinger. It answers any request and never touches job state.
package health

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server is the minimal liveness listener.
type Server struct {
	app  *fiber.App
	port int
}

// NewServer builds the listener. Every request on every path gets a 200
// with a short body; the caller's address is logged. No authentication.
func NewServer(port int, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.All("/*", func(c *fiber.Ctx) error {
		log.Info("liveness probe", zap.String("addr", c.IP()))
		return c.SendString("OK")
	})
	return &Server{app: app, port: port}
}

// Listen blocks serving probes until Shutdown.
func (s *Server) Listen() error {
	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

// Shutdown stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
