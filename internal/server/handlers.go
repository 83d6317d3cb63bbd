package server

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/yasmineatrous/Speechscribe/internal/document"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

const (
	queueTimeout = 30 * time.Second
	docxMIME     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

//go:embed static/index.html
var indexHTML []byte

type transcriptRequest struct {
	Transcript string `json:"transcript"`
}

type youtubeRequest struct {
	URL string `json:"url"`
}

func (s *implServer) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(indexHTML)
}

func (s *implServer) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "busy": s.semaphore.InUse()})
}

// handleTranscribe accepts a recorded or uploaded file in the "audio" field.
func (s *implServer) handleTranscribe(c *fiber.Ctx) error {
	ctx := s.requestContext(c)

	fh, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No audio file provided"})
	}
	if fh.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "The uploaded file is empty"})
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := os.MkdirAll(s.cfg.Paths.Temp, 0755); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not prepare upload storage")
	}
	upload := filepath.Join(s.cfg.Paths.Temp, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveFile(fh, upload); err != nil {
		s.logger.Error(ctx, "Failed to save upload: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not store the upload")
	}
	defer s.removeTemp(ctx, upload)

	s.logger.Info(ctx, "Transcribing upload %q (%d bytes)", fh.Filename, fh.Size)
	out := s.files.Transcribe(ctx, upload)
	if !out.OK() {
		s.logger.Warn(ctx, "Transcription failed (%s): %s", out.Failure().Kind, out.Failure().Message)
		return s.failure(c, out.Failure())
	}

	if err := s.sessionSet(c, keyTranscript, out.Text(), keySource, "upload"); err != nil {
		s.logger.Warn(ctx, "Failed to store transcript in session: %v", err)
	}
	return c.JSON(fiber.Map{"transcript": out.Text()})
}

// handleYouTube resolves a video URL through the fallback chain.
func (s *implServer) handleYouTube(c *fiber.Ctx) error {
	ctx := s.requestContext(c)

	var req youtubeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.URL = strings.TrimSpace(req.URL)
	if !isHTTPURL(req.URL) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a valid video URL is required"})
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	out, source := s.resolver.ResolveWithSource(ctx, req.URL)
	if !out.OK() {
		return s.failure(c, out.Failure())
	}

	if err := s.sessionSet(c, keyTranscript, out.Text(), keySource, source); err != nil {
		s.logger.Warn(ctx, "Failed to store transcript in session: %v", err)
	}
	return c.JSON(fiber.Map{"transcript": out.Text(), "source": source})
}

// handleGenerateNotes uses the transcript from the body, falling back to
// the one stored in the session.
func (s *implServer) handleGenerateNotes(c *fiber.Ctx) error {
	ctx := s.requestContext(c)

	var req transcriptRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
	}
	text := req.Transcript
	if strings.TrimSpace(text) == "" {
		text = s.sessionGet(c, keyTranscript)
	}
	if strings.TrimSpace(text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No transcript provided"})
	}

	notes, err := s.notes.Generate(ctx, text)
	if err != nil {
		f := transcript.AsFailure(err)
		s.logger.Error(ctx, "Error generating notes: %v", err)
		status := fiber.StatusBadGateway
		if f.Kind == transcript.Empty || f.Kind == transcript.TooLarge {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{"error": transcript.UserMessage(f), "kind": f.Kind.String()})
	}

	if err := s.sessionSet(c, keyTranscript, text, keyNotes, notes); err != nil {
		s.logger.Warn(ctx, "Failed to store notes in session: %v", err)
	}
	return c.JSON(fiber.Map{"notes": notes})
}

func (s *implServer) handleSaveTranscript(c *fiber.Ctx) error {
	var req transcriptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if strings.TrimSpace(req.Transcript) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No transcript provided"})
	}

	if err := s.sessionSet(c, keyTranscript, req.Transcript); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (s *implServer) handleDownloadPDF(c *fiber.Ctx) error {
	notes := s.sessionGet(c, keyNotes)
	if notes == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No notes available to download"})
	}

	var buf bytes.Buffer
	if err := document.RenderPDF(s.cfg.Notes.Title, notes, &buf); err != nil {
		s.logger.Error(s.requestContext(c), "Error generating PDF: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not generate the PDF")
	}

	c.Attachment("structured_notes.pdf")
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(buf.Bytes())
}

func (s *implServer) handleDownloadDOCX(c *fiber.Ctx) error {
	ctx := s.requestContext(c)
	notes := s.sessionGet(c, keyNotes)
	if notes == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No notes available to download"})
	}

	if err := os.MkdirAll(s.cfg.Paths.Temp, 0755); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not prepare document storage")
	}
	path := filepath.Join(s.cfg.Paths.Temp, uuid.NewString()+".docx")
	defer s.removeTemp(ctx, path)

	if err := document.RenderDOCX(s.cfg.Notes.Title, notes, path); err != nil {
		s.logger.Error(ctx, "Error generating DOCX: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not generate the document")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not read the document")
	}

	c.Attachment("structured_notes.docx")
	c.Set(fiber.HeaderContentType, docxMIME)
	return c.Send(data)
}

func (s *implServer) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error(s.requestContext(c), "%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// failure answers 422 with a message the user can act on.
func (s *implServer) failure(c *fiber.Ctx, f *transcript.Failure) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error": transcript.UserMessage(f),
		"kind":  f.Kind.String(),
	})
}

// acquire waits for a pipeline slot and returns its release func.
func (s *implServer) acquire(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, queueTimeout)
	defer cancel()

	if err := s.semaphore.Acquire(ctx); err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "the server is busy, try again shortly")
	}
	return s.semaphore.Release, nil
}

func (s *implServer) requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		ctx = logger.WithRequestID(ctx, id)
	}
	return ctx
}

func (s *implServer) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
