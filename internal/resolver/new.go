package resolver

import (
	"context"

	"github.com/yasmineatrous/Speechscribe/internal/captions"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/internal/media"
	"github.com/yasmineatrous/Speechscribe/internal/reconstruct"
	"github.com/yasmineatrous/Speechscribe/internal/stt"
)

// DefaultOrder tries the cheapest source first.
var DefaultOrder = []string{StrategyCaptions, StrategyDownload, StrategyReconstruct}

// Deps are the collaborators the built-in strategies need. A nil
// collaborator disables its strategy.
type Deps struct {
	Captions      captions.Fetcher
	Acquirer      media.Acquirer
	Backend       stt.Backend
	Reconstructor reconstruct.Reconstructor
}

type implResolver struct {
	strategies []Strategy
	logger     logger.Logger
}

// New builds the built-in strategies in the given order. Unknown names and
// strategies without collaborators are skipped.
func New(order []string, deps Deps, log logger.Logger) Resolver {
	if len(order) == 0 {
		order = DefaultOrder
	}

	var strategies []Strategy
	for _, name := range order {
		switch name {
		case StrategyCaptions:
			if deps.Captions != nil {
				strategies = append(strategies, CaptionsStrategy(deps.Captions))
			}
		case StrategyDownload:
			if deps.Acquirer != nil && deps.Backend != nil {
				strategies = append(strategies, DownloadStrategy(deps.Acquirer, deps.Backend, log))
			}
		case StrategyReconstruct:
			if deps.Reconstructor != nil {
				strategies = append(strategies, ReconstructStrategy(deps.Reconstructor))
			}
		default:
			log.Warn(context.Background(), "Unknown transcript strategy %q ignored", name)
		}
	}
	return NewWithStrategies(strategies, log)
}

// NewWithStrategies uses the strategies exactly as given.
func NewWithStrategies(strategies []Strategy, log logger.Logger) Resolver {
	return &implResolver{strategies: strategies, logger: log}
}
