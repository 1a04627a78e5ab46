package scheduler

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultMinInterval is the minimum spacing between two dispatches
const DefaultMinInterval = time.Second

// ErrEmptyEndpoint is returned for requests enqueued without an endpoint
var ErrEmptyEndpoint = errors.New("scheduler: endpoint is required")

// Dispatcher performs the network call for one queued request
type Dispatcher func(ctx context.Context, req *Request) ([]byte, error)

// Request is a single queued unit of work. Its result is delivered once
// through Done/Wait after the scheduler has dispatched it.
type Request struct {
	ID         string
	Endpoint   string
	Params     url.Values
	EnqueuedAt time.Time

	done chan struct{}
	body []byte
	err  error
}

// Done is closed once the request has been dispatched and resolved
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the request resolves or ctx is done. Cancelling ctx
// does not withdraw the request from the queue.
func (r *Request) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-r.done:
		return r.body, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Request) resolve(body []byte, err error) {
	r.body = body
	r.err = err
	close(r.done)
}

// Scheduler serializes outgoing requests into a FIFO queue and enforces a
// minimum interval between dispatches
type Scheduler struct {
	dispatch    Dispatcher
	minInterval time.Duration
	quota       *rate.Limiter
	recorder    Recorder
	now         func() time.Time
	logger      zerolog.Logger

	mu           sync.Mutex
	queue        []*Request
	draining     bool
	lastDispatch time.Time
}

// New creates a scheduler that dispatches through fn
func New(fn Dispatcher, logger zerolog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		dispatch:    fn,
		minInterval: DefaultMinInterval,
		recorder:    nopRecorder{},
		now:         time.Now,
		logger:      logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Enqueue appends a request to the tail of the queue and returns its handle
// immediately. The drain loop is started if it is not already running.
func (s *Scheduler) Enqueue(endpoint string, params url.Values) *Request {
	req := &Request{
		ID:         uuid.NewString(),
		Endpoint:   endpoint,
		Params:     params,
		EnqueuedAt: s.now(),
		done:       make(chan struct{}),
	}

	if endpoint == "" {
		req.resolve(nil, ErrEmptyEndpoint)
		return req
	}

	s.mu.Lock()
	s.queue = append(s.queue, req)
	depth := len(s.queue)
	start := !s.draining
	s.draining = true
	s.mu.Unlock()

	s.recorder.RequestEnqueued(depth)

	s.logger.Debug().
		Str("request_id", req.ID).
		Str("endpoint", endpoint).
		Int("queue_depth", depth).
		Msg("Request queued")

	if start {
		go s.drain()
	}

	return req
}

// Len returns the number of requests waiting for dispatch
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// MinInterval returns the configured spacing between dispatches
func (s *Scheduler) MinInterval() time.Duration {
	return s.minInterval
}

// drain runs until the queue is empty. Only one drain goroutine exists at a
// time; draining is cleared under the same lock that observes the empty queue.
func (s *Scheduler) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		req := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		depth := len(s.queue)
		last := s.lastDispatch
		s.mu.Unlock()

		s.recorder.QueueDepth(depth)

		if !last.IsZero() {
			if wait := s.minInterval - s.now().Sub(last); wait > 0 {
				s.logger.Debug().
					Str("request_id", req.ID).
					Dur("wait", wait).
					Msg("Waiting before next request")
				s.recorder.DispatchWaited(wait)
				time.Sleep(wait)
			}
		}

		if s.quota != nil {
			// Background context: queued requests are never cancelled
			_ = s.quota.Wait(context.Background())
		}

		started := s.now()
		body, err := s.dispatch(context.Background(), req)
		completed := s.now()

		s.mu.Lock()
		s.lastDispatch = completed
		s.mu.Unlock()

		s.recorder.RequestDispatched(req.Endpoint, completed.Sub(started), err)

		if err != nil {
			s.logger.Debug().
				Err(err).
				Str("request_id", req.ID).
				Str("endpoint", req.Endpoint).
				Msg("Request failed")
		} else {
			s.logger.Debug().
				Str("request_id", req.ID).
				Str("endpoint", req.Endpoint).
				Dur("duration", completed.Sub(started)).
				Msg("Request completed")
		}

		req.resolve(body, err)
	}
}
