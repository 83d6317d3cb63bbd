package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	keyTranscript = "transcript"
	keyNotes      = "structured_notes"
	keySource     = "source"
)

func (s *implServer) sessionGet(c *fiber.Ctx, key string) string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return ""
	}
	v, _ := sess.Get(key).(string)
	return v
}

// sessionSet stores the given key/value pairs and saves the session once.
func (s *implServer) sessionSet(c *fiber.Ctx, kv ...string) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		sess.Set(kv[i], kv[i+1])
	}
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
