// Package activity records gateway calls to the activity store and prunes old
// entries.
package activity

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/store"
)

const (
	recordTimeout  = 2 * time.Second
	maxDetailRunes = 256
)

// Recorder writes one ActivityEntry per gateway call. A nil *Recorder is a
// valid no-op recorder.
type Recorder struct {
	repo   store.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder returns a Recorder backed by repo, or nil when repo is nil.
func NewRecorder(repo store.Repository, logger *slog.Logger) *Recorder {
	if repo == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, logger: logger, now: time.Now}
}

// Record stores the outcome of a call that started at start. Failures are
// logged and swallowed.
func (r *Recorder) Record(ctx context.Context, op domain.Operation, role domain.Role, inputChars int, start time.Time, callErr error) {
	if r == nil {
		return
	}

	now := r.now()
	entry := &domain.ActivityEntry{
		Operation:  op,
		Role:       role.String(),
		InputChars: inputChars,
		Status:     StatusOf(callErr),
		DurationMs: now.Sub(start).Milliseconds(),
		CreatedAt:  now,
	}
	if callErr != nil {
		entry.Detail = truncate(callErr.Error(), maxDetailRunes)
	}

	// The write outlives a cancelled request.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := r.repo.RecordActivity(writeCtx, entry); err != nil {
		r.logger.Warn("Failed to record activity", "error", err, "op", op)
	}
}

// StatusOf classifies a gateway error.
func StatusOf(err error) domain.ActivityStatus {
	switch {
	case err == nil:
		return domain.StatusOK
	case gateway.IsValidation(err):
		return domain.StatusValidationError
	default:
		return domain.StatusUpstreamError
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
