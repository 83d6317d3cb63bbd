package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Server is the browser-facing HTTP API.
type Server interface {
	// App exposes the routes, mainly for tests.
	App() *fiber.App
	// Run listens on the configured address until ctx is cancelled, then
	// shuts down gracefully.
	Run(ctx context.Context) error
}
