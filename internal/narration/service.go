package narration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"sentinel/internal/dispatch"
	"sentinel/internal/logging"
)

// Executor abstracts narrator process execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

// Service drives the external narrator binary for dispatch playback.
type Service struct {
	binary  string
	voices  *VoiceTable
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(executor Executor) Option {
	return func(s *Service) {
		if executor != nil {
			s.exec = executor
		}
	}
}

// NewService constructs a narration service wrapping the given binary.
func NewService(binary string, voices *VoiceTable, timeoutSeconds int, logger *slog.Logger, opts ...Option) (*Service, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("narration: binary required")
	}
	if voices == nil {
		return nil, errors.New("narration: voice table required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	svc := &Service{
		binary:  binary,
		voices:  voices,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
		logger:  logging.WithComponent(logger, "narration"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Narrate assembles the narration script for doc and hands it to the
// narrator with the parameters of the document's voice family (or the
// override when non-empty). A failing narrator run is reported to the
// caller; it is never retried.
func (s *Service) Narrate(ctx context.Context, doc dispatch.Document, voiceOverride string) error {
	family := strings.TrimSpace(voiceOverride)
	if family == "" {
		family = doc.Header.Voice
	}
	profile := s.voices.ProfileFor(family)
	script := BuildScript(doc)

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	args := []string{
		"read",
		"--voice", profile.Voice,
		"--speed", formatFloat(profile.Speed),
		"--pitch", formatFloat(profile.Pitch),
		"--text", script,
	}
	s.logger.Info("starting narration",
		logging.String("title", doc.Header.Title),
		logging.String("voice_family", family),
		logging.String("voice", profile.Voice))

	if err := s.exec.Run(runCtx, s.binary, args); err != nil {
		return fmt.Errorf("narration: %s failed: %w", s.binary, err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(output))
		if trimmed != "" {
			return fmt.Errorf("%w: %s", err, trimmed)
		}
		return err
	}
	return nil
}
