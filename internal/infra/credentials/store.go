package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"logomotion/internal/domain"
)

const envKey = "GEMINI_API_KEY"

// Store holds the process-wide credential selection state. Selection is
// re-derived on every check rather than cached: a key selected during the
// session wins, otherwise the process environment is consulted, so
// credential rotation takes effect without a restart.
type Store struct {
	mu       sync.Mutex
	selected string
	revoked  bool
	lookup   func(string) string
	logger   zerolog.Logger
}

// NewStore constructs a Store backed by the process environment.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{lookup: os.Getenv, logger: logger}
}

// Selected reports whether a usable credential is currently selected.
// A credential the remote service has rejected counts as not selected
// until the user selects again.
func (s *Store) Selected(ctx context.Context) bool {
	return s.Key(ctx) != ""
}

// Key returns the active credential, preferring the session-selected key
// over the process environment. Empty when nothing usable is configured.
func (s *Store) Key(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != "" {
		return s.selected
	}
	if s.revoked {
		return ""
	}
	return strings.TrimSpace(s.lookup(envKey))
}

// Select records an explicit user key selection. A failure to complete the
// selection flow itself (empty key here) reports an error without touching
// the current state: unlike Downgrade, it carries no evidence that the
// previously selected credential went bad.
func (s *Store) Select(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: api key is required", domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = key
	s.revoked = false
	return nil
}

// Downgrade marks the active credential as rejected by the remote service,
// so the next check re-prompts for selection instead of re-submitting with
// a known-bad key.
func (s *Store) Downgrade() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
	s.revoked = true
	s.logger.Warn().Msg("credentials: active key rejected by remote service, selection cleared")
}
