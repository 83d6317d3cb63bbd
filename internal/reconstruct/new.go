package reconstruct

import (
	"net/http"
	"time"

	"github.com/yasmineatrous/Speechscribe/internal/llm"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
)

const (
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	maxPageChars  = 6000
	maxPageBytes  = 4 << 20
	fetchDeadline = 20 * time.Second
)

type implReconstructor struct {
	completer llm.Completer
	client    *http.Client
	logger    logger.Logger
}

// New creates a Reconstructor. A nil client uses a client with a short
// timeout.
func New(completer llm.Completer, client *http.Client, log logger.Logger) Reconstructor {
	if client == nil {
		client = &http.Client{Timeout: fetchDeadline}
	}
	return &implReconstructor{completer: completer, client: client, logger: log}
}
