// Package session keeps the in-memory view of the service's generation
// history and drives every call that changes it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/lehigh-university-libraries/barcoder/internal/api"
	"github.com/lehigh-university-libraries/barcoder/internal/models"
)

// Fallback messages surfaced when the service gives no message of its own
const (
	MsgGenerateFailed = "Failed to generate code"
	MsgFetchFailed    = "Failed to fetch logs"
	MsgClearFailed    = "Failed to clear logs"
	MsgDownloadFailed = "Failed to download CSV"
)

// ErrBusy is returned when a generation is already in flight
var ErrBusy = errors.New("a generation is already in progress")

// Service is the subset of the generation API a Session depends on
type Service interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error)
	Logs(ctx context.Context) ([]models.GenerationLog, error)
	ClearLogs(ctx context.Context) error
	DownloadCSV(ctx context.Context) ([]byte, error)
}

// Error pairs the message shown to the user with the failure behind it
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// State is a read-only copy of a Session
type State struct {
	Logs   []models.GenerationLog
	Latest *models.GenerationLog
	Busy   bool
	Err    string
}

// Session holds the cached history and the latest generation
type Session struct {
	svc Service

	mu     sync.RWMutex
	logs   []models.GenerationLog
	latest *models.GenerationLog
	busy   bool
	err    string
}

func New(svc Service) *Session {
	return &Session{
		svc:  svc,
		logs: []models.GenerationLog{},
	}
}

// Start performs the initial history load
func (s *Session) Start(ctx context.Context) error {
	return s.FetchLogs(ctx)
}

// Generate sends req to the service. On success the returned log becomes the
// latest generation and the history is re-read from the service.
func (s *Session) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	resp, err := s.svc.Generate(ctx, req)
	if err != nil {
		msg := api.ServiceMessage(err)
		if msg == "" {
			msg = MsgGenerateFailed
		}
		slog.Error("Generation failed", "code_type", req.CodeType, "err", err)
		s.setError(msg)
		return nil, &Error{Message: msg, Err: err}
	}

	latest := resp.Log
	s.mu.Lock()
	s.latest = &latest
	s.mu.Unlock()
	slog.Info("Code generated", "code_type", req.CodeType, "id", latest.ID, "filename", latest.Filename)

	// The history is re-read rather than appended to so that ordering and
	// deduplication stay whatever the service decides.
	if err := s.FetchLogs(ctx); err != nil {
		slog.Warn("History refresh after generation failed", "err", err)
	}

	return resp, nil
}

// FetchLogs replaces the cached history with the service's list
func (s *Session) FetchLogs(ctx context.Context) error {
	logs, err := s.svc.Logs(ctx)
	if err != nil {
		slog.Error("Error fetching logs", "err", err)
		s.setError(MsgFetchFailed)
		return &Error{Message: MsgFetchFailed, Err: err}
	}

	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()
	slog.Debug("Logs refreshed", "count", len(logs))

	return nil
}

// ClearLogs purges the service's history and, once that succeeds, the
// local cache and latest generation.
func (s *Session) ClearLogs(ctx context.Context) error {
	if err := s.svc.ClearLogs(ctx); err != nil {
		slog.Error("Error clearing logs", "err", err)
		s.setError(MsgClearFailed)
		return &Error{Message: MsgClearFailed, Err: err}
	}

	s.mu.Lock()
	s.logs = []models.GenerationLog{}
	s.latest = nil
	s.mu.Unlock()
	slog.Info("Logs cleared")

	return nil
}

// DownloadCSV writes the service's CSV export to w
func (s *Session) DownloadCSV(ctx context.Context, w io.Writer) error {
	data, err := s.svc.DownloadCSV(ctx)
	if err == nil {
		_, err = w.Write(data)
		if err != nil {
			err = fmt.Errorf("failed to write CSV export: %w", err)
		}
	}
	if err != nil {
		slog.Error("Error downloading CSV", "err", err)
		s.setError(MsgDownloadFailed)
		return &Error{Message: MsgDownloadFailed, Err: err}
	}

	return nil
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := State{
		Logs: make([]models.GenerationLog, len(s.logs)),
		Busy: s.busy,
		Err:  s.err,
	}
	copy(state.Logs, s.logs)
	if s.latest != nil {
		latest := *s.latest
		state.Latest = &latest
	}
	return state
}

// Logs returns a copy of the cached history
func (s *Session) Logs() []models.GenerationLog {
	return s.Snapshot().Logs
}

// Latest returns the most recent successful generation, if any
func (s *Session) Latest() (models.GenerationLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return models.GenerationLog{}, false
	}
	return *s.latest, true
}

// SetError records a message for the user, such as a validation failure
func (s *Session) SetError(msg string) {
	s.setError(msg)
}

// ClearError dismisses the current message
func (s *Session) ClearError() {
	s.setError("")
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}
