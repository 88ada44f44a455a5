// Package health exposes a tiny HTTP liveness endpoint so the hosting
// platform can see the bot process is up.
package health

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server answers liveness probes.
type Server struct {
	app  *fiber.App
	port string
	log  *zap.SugaredLogger
}

// New builds the probe server.
func New(port string, log *zap.SugaredLogger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	alive := func(c *fiber.Ctx) error {
		return c.SendString("Bot is alive!")
	}
	app.Get("/", alive)
	app.Get("/health", alive)

	return &Server{app: app, port: port, log: log}
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		if err := s.app.Shutdown(); err != nil {
			s.log.Warnf("health server shutdown: %v", err)
		}
	}()

	s.log.Infof("health server listening on :%s", s.port)
	return s.app.Listen(":" + s.port)
}
