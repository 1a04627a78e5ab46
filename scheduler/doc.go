// Package scheduler serializes outgoing API requests for a single client.
//
// Requests are appended to a FIFO queue by Enqueue, which never blocks. A
// single drain goroutine pops the head of the queue, waits until at least
// the minimum interval has passed since the previous dispatch completed, and
// then performs the network call through the configured Dispatcher.
//
// # Usage
//
//	s := scheduler.New(dispatch, logger, scheduler.WithMinInterval(time.Second))
//	req := s.Enqueue("/matches", url.Values{"limit": {"100"}})
//	body, err := req.Wait(ctx)
//
// # Guarantees
//
//   - Requests are dispatched in enqueue order, never reordered or coalesced
//   - Dispatch starts are spaced by at least the minimum interval
//   - A failed dispatch resolves only its own handle
//
// # Limitations
//
// Queued requests cannot be cancelled and no timeout is applied to the
// dispatch itself. A dispatcher that never returns stalls every request
// queued behind it; bound the call in the Dispatcher (for example with an
// http.Client timeout) when that matters.
package scheduler
