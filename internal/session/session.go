// Package session owns the client side of a search: at most one run in flight, newest wins.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Vizlook/youtube-search/internal/apperr"
	"github.com/Vizlook/youtube-search/internal/core/model"
)

const (
	MessageRateLimited = "You have exceeded the rate limit. Retry later."
	MessageFailed      = "Failed to search video. Please try again."
)

type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Searcher performs one search. *Client is the HTTP implementation.
type Searcher interface {
	Search(ctx context.Context, req model.Request) (model.SearchResponse, error)
}

// Snapshot is the visible session state. Mode is the one captured when the run was submitted.
type Snapshot struct {
	Generation uint64
	State      State
	Query      string
	Mode       model.Mode
	Response   *model.SearchResponse
	Message    string
}

// Run is the handle of one submission.
type Run struct {
	generation uint64
	done       chan struct{}
	state      State
}

func (r *Run) Generation() uint64 { return r.generation }

// Done is closed once the run has settled or been superseded.
func (r *Run) Done() <-chan struct{} { return r.done }

// State is the run's own outcome. Only meaningful after Done is closed.
func (r *Run) State() State {
	<-r.done
	return r.state
}

type Session struct {
	searcher Searcher
	log      logrus.FieldLogger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	snap       Snapshot
	onChange   func(Snapshot)
	seq        uint64

	// notifyMu serializes observer calls; delivered drops notifications that lost a race.
	notifyMu  sync.Mutex
	delivered uint64
}

func New(searcher Searcher, log logrus.FieldLogger) *Session {
	return &Session{searcher: searcher, log: log}
}

// OnChange registers fn to be called after every visible state change.
// A notification overtaken by a newer one is skipped. fn must not call Submit.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Submit cancels any run in flight and starts a new one. An invalid query is rejected
// without touching the current run.
func (s *Session) Submit(ctx context.Context, query string, mode model.Mode) (*Run, error) {
	req, err := model.Request{Query: query, Mode: mode}.Normalize()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	run := &Run{generation: s.generation, done: make(chan struct{})}
	s.snap = Snapshot{Generation: run.generation, State: Pending, Query: req.Query, Mode: req.Mode}
	s.publishLocked()

	go s.execute(runCtx, run, req)
	return run, nil
}

// Cancel aborts the run in flight, if any. The session reports Cancelled without a message.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) execute(ctx context.Context, run *Run, req model.Request) {
	defer close(run.done)

	resp, err := s.searcher.Search(ctx, req)

	s.mu.Lock()
	if run.generation != s.generation {
		s.mu.Unlock()
		run.state = Cancelled
		s.log.WithField("generation", run.generation).Debug("discarding superseded run")
		return
	}

	next := s.snap
	switch {
	case err == nil:
		next.State = Succeeded
		next.Response = &resp
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		next.State = Cancelled
	default:
		next.State = Failed
		next.Message = UserMessage(err)
		s.log.WithError(err).WithField("generation", run.generation).Warn("search failed")
	}
	run.state = next.State
	s.cancel()
	s.cancel = nil
	s.snap = next
	s.publishLocked()
}

// publishLocked must be called with mu held; it releases mu before notifying.
func (s *Session) publishLocked() {
	s.seq++
	seq, snap, fn := s.seq, s.snap, s.onChange
	s.mu.Unlock()

	if fn == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if seq <= s.delivered {
		return
	}
	s.delivered = seq
	fn(snap)
}

// UserMessage maps an error to what the user is shown. Cancellation shows nothing.
func UserMessage(err error) string {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return ""
	case apperr.IsRateLimited(err):
		return MessageRateLimited
	default:
		return MessageFailed
	}
}
