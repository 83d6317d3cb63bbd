package processor

import (
	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/internal/media"
	"github.com/yasmineatrous/Speechscribe/internal/notes"
	"github.com/yasmineatrous/Speechscribe/internal/stt"
)

// Deps are the collaborators of a Processor. Notes may be nil when only
// Transcribe is used.
type Deps struct {
	Extractor media.Extractor
	Backend   stt.Backend
	Notes     notes.Generator
}

type implProcessor struct {
	cfg       *config.Config
	extractor media.Extractor
	backend   stt.Backend
	notes     notes.Generator
	logger    logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		cfg:       cfg,
		extractor: deps.Extractor,
		backend:   deps.Backend,
		notes:     deps.Notes,
		logger:    log,
	}
}
