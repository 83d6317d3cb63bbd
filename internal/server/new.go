package server

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/internal/notes"
	"github.com/yasmineatrous/Speechscribe/internal/processor"
	"github.com/yasmineatrous/Speechscribe/internal/resolver"
	"github.com/yasmineatrous/Speechscribe/pkg/semaphore"
)

const (
	sessionCookie   = "speechscribe_session"
	shutdownTimeout = 10 * time.Second
)

// Deps are the core components the handlers call into.
type Deps struct {
	Files    processor.Processor
	Resolver resolver.Resolver
	Notes    notes.Generator
}

type implServer struct {
	cfg       *config.Config
	app       *fiber.App
	sessions  *session.Store
	files     processor.Processor
	resolver  resolver.Resolver
	notes     notes.Generator
	semaphore *semaphore.Semaphore
	logger    logger.Logger
}

// New builds the fiber app with its middleware and routes.
func New(cfg *config.Config, deps Deps, log logger.Logger) Server {
	s := &implServer{
		cfg:       cfg,
		files:     deps.Files,
		resolver:  deps.Resolver,
		notes:     deps.Notes,
		semaphore: semaphore.New(cfg.Performance.MaxConcurrent),
		logger:    log,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "Speechscribe",
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.sessions = session.New(session.Config{
		Expiration:     cfg.Server.SessionTTL,
		KeyLookup:      "cookie:" + sessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	s.app.Use(fiberrecover.New())
	s.app.Use(requestid.New())
	s.app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(cfg.Server.SessionSecret),
	}))
	s.routes()

	return s
}

func (s *implServer) routes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/healthz", s.handleHealth)
	s.app.Post("/transcribe", s.handleTranscribe)
	s.app.Post("/youtube", s.handleYouTube)
	s.app.Post("/generate-notes", s.handleGenerateNotes)
	s.app.Post("/save-transcript", s.handleSaveTranscript)
	s.app.Get("/download-pdf", s.handleDownloadPDF)
	s.app.Get("/download-docx", s.handleDownloadDOCX)
}

func (s *implServer) App() *fiber.App {
	return s.app
}

func (s *implServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening on %s", s.cfg.Server.Addr)
		errCh <- s.app.Listen(s.cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		s.logger.Info(ctx, "Shutting down HTTP server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// cookieKey derives the 32-byte AES key for cookie encryption from the
// session secret. An empty secret gets a random key, so sessions do not
// survive a restart.
func cookieKey(secret string) string {
	if secret == "" {
		return encryptcookie.GenerateKey()
	}
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
